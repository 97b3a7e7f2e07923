package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/events"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	estadoKeyPrefix = "caja:estado:"
	estadoTTL       = 30 * time.Second
)

// EstadoCache keeps the "caja abierta" screen response per punto de venta in
// Redis and drops it whenever the event bus reports a mutation on the
// session. Lookups that miss fall through to the DB in the handler.
type EstadoCache struct {
	rdb  *redis.Client
	repo repository.CajaRepository
	sub  *events.Subscription
}

func NewEstadoCache(bus *events.Bus, rdb *redis.Client, repo repository.CajaRepository) *EstadoCache {
	c := &EstadoCache{rdb: rdb, repo: repo}
	c.sub = bus.SubscribeAll(c.onEvent)
	return c
}

// Close unregisters the bus subscription.
func (c *EstadoCache) Close() {
	c.sub.Unsubscribe()
}

func (c *EstadoCache) Get(ctx context.Context, puntoVentaID uuid.UUID) (*dto.SesionCajaResponse, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, estadoKeyPrefix+puntoVentaID.String()).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.SesionCajaResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *EstadoCache) Set(ctx context.Context, puntoVentaID uuid.UUID, resp *dto.SesionCajaResponse) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, estadoKeyPrefix+puntoVentaID.String(), raw, estadoTTL).Err(); err != nil {
		log.Debug().Err(err).Msg("estado_cache: set fallido")
	}
}

// onEvent runs on the publishing goroutine — it only resolves the session's
// punto de venta and deletes one key.
func (c *EstadoCache) onEvent(ev events.Event) {
	if c.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sesion, err := c.repo.FindSesionByID(ctx, ev.SesionCajaID)
	if err != nil {
		return
	}
	if err := c.rdb.Del(ctx, estadoKeyPrefix+sesion.PuntoVentaID.String()).Err(); err != nil {
		log.Debug().Err(err).Str("kind", string(ev.Kind)).Msg("estado_cache: invalidacion fallida")
	}
}
