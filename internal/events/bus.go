// Package events is a typed in-process publish/subscribe channel keyed by
// caja session. Consumers (estado cache, dashboards) register interest in a
// session and receive every mutation published against it; subscriptions
// have an explicit unsubscribe lifecycle instead of lingering in global maps.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Kind discriminates what changed inside a caja session.
type Kind string

const (
	CajaAbierta        Kind = "caja_abierta"
	CajaCerrada        Kind = "caja_cerrada"
	MovimientoCreado   Kind = "movimiento_creado"
	VentaRegistrada    Kind = "venta_registrada"
	VentaCancelada     Kind = "venta_cancelada"
)

// Event is published on every caja-scoped mutation.
type Event struct {
	Kind         Kind
	SesionCajaID uuid.UUID
	// ReferenciaID carries the venta/movimiento id when applicable.
	ReferenciaID *uuid.UUID
}

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine — keep them cheap (cache invalidation, channel sends).
type Handler func(Event)

// Subscription unregisters its handler when Unsubscribe is called.
type Subscription struct {
	bus    *Bus
	caja   uuid.UUID
	token  int
	global bool
}

// Unsubscribe removes the handler; safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if s.global {
		delete(s.bus.global, s.token)
	} else if subs, ok := s.bus.byCaja[s.caja]; ok {
		delete(subs, s.token)
		if len(subs) == 0 {
			delete(s.bus.byCaja, s.caja)
		}
	}
	s.bus = nil
}

// Bus routes events to per-caja subscribers plus any global subscribers.
type Bus struct {
	mu      sync.RWMutex
	next    int
	byCaja  map[uuid.UUID]map[int]Handler
	global  map[int]Handler
}

func NewBus() *Bus {
	return &Bus{
		byCaja: make(map[uuid.UUID]map[int]Handler),
		global: make(map[int]Handler),
	}
}

// Subscribe registers a handler for one caja session.
func (b *Bus) Subscribe(sesionCajaID uuid.UUID, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	if b.byCaja[sesionCajaID] == nil {
		b.byCaja[sesionCajaID] = make(map[int]Handler)
	}
	b.byCaja[sesionCajaID][b.next] = h
	return &Subscription{bus: b, caja: sesionCajaID, token: b.next}
}

// SubscribeAll registers a handler for every caja session.
func (b *Bus) SubscribeAll(h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.global[b.next] = h
	return &Subscription{bus: b, token: b.next, global: true}
}

// Publish delivers ev to the caja's subscribers and all global subscribers.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, 4)
	for _, h := range b.byCaja[ev.SesionCajaID] {
		handlers = append(handlers, h)
	}
	for _, h := range b.global {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
