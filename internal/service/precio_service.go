package service

import (
	"context"
	"strings"

	"github.com/MateoRicci/gestion-cec-sub000/internal/carrito"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Seed price lists. Convenios reference these by id; the fallback below only
// fires for convenios created before lista_precio_id became mandatory.
const (
	ListaSocios          = 1
	ListaSociosEmpleados = 2
	ListaNoSocios        = 3
)

// Entry products are looked up by catalog name.
const (
	ProductoEntradaMayor   = "Entrada Mayor"
	ProductoEntradaMenor   = "Entrada Menor"
	ProductoEntradaGeneral = "Entrada"
)

type PrecioService interface {
	// ListaParaConvenio resolves the price list for a convenio. Nil convenio
	// (walk-in) maps to No Socios.
	ListaParaConvenio(convenio *model.Convenio) int
	// PreciosEntrada resolves the three entry prices the cart derives lines
	// from. Missing prices come back nil — the cart renders them at $0
	// instead of blocking the sale.
	PreciosEntrada(ctx context.Context, listaID int) carrito.PreciosEntrada
	// PrecioDe looks up a (producto, lista) unit price. Second return is
	// false when the list has no entry for the product.
	PrecioDe(ctx context.Context, productoID uuid.UUID, listaID int) (decimal.Decimal, bool)
}

type precioService struct {
	productos repository.ProductoRepository
}

func NewPrecioService(productos repository.ProductoRepository) PrecioService {
	return &precioService{productos: productos}
}

func (s *precioService) ListaParaConvenio(convenio *model.Convenio) int {
	if convenio == nil || convenio.Nombre == model.NombreConsumidorFinal {
		return ListaNoSocios
	}
	if convenio.ListaPrecioID != nil {
		return *convenio.ListaPrecioID
	}
	// Convenio sin lista asignada: legacy data, resolved by name the way the
	// old dashboard did it.
	if strings.Contains(strings.ToLower(convenio.Nombre), "empleado") {
		log.Warn().
			Str("convenio", convenio.Nombre).
			Msg("convenio sin lista_precio_id, usando lista Socios Empleados por nombre")
		return ListaSociosEmpleados
	}
	log.Warn().
		Str("convenio", convenio.Nombre).
		Msg("convenio sin lista_precio_id, usando lista Socios")
	return ListaSocios
}

func (s *precioService) PreciosEntrada(ctx context.Context, listaID int) carrito.PreciosEntrada {
	return carrito.PreciosEntrada{
		Mayor:   s.resolver(ctx, ProductoEntradaMayor, listaID),
		Menor:   s.resolver(ctx, ProductoEntradaMenor, listaID),
		NoSocio: s.resolver(ctx, ProductoEntradaGeneral, ListaNoSocios),
	}
}

func (s *precioService) PrecioDe(ctx context.Context, productoID uuid.UUID, listaID int) (decimal.Decimal, bool) {
	precios, err := s.productos.ListPrecios(ctx, productoID)
	if err != nil {
		return decimal.Zero, false
	}
	for _, p := range precios {
		if p.ListaPrecioID == listaID {
			return p.PrecioUnitario, true
		}
	}
	return decimal.Zero, false
}

// resolver finds a named entry product and its price on one list. Any miss
// logs a warning and returns nil so the cart can degrade to $0.
func (s *precioService) resolver(ctx context.Context, nombre string, listaID int) *carrito.PrecioResuelto {
	producto, err := s.productos.FindByNombre(ctx, nombre)
	if err != nil {
		log.Warn().Str("producto", nombre).Msg("producto de entrada no encontrado en catalogo")
		return nil
	}
	for _, p := range producto.Precios {
		if p.ListaPrecioID == listaID {
			return &carrito.PrecioResuelto{
				ProductoID:     producto.ID,
				NombreProducto: producto.Nombre,
				ListaPrecioID:  listaID,
				PrecioUnitario: p.PrecioUnitario,
			}
		}
	}
	log.Warn().
		Str("producto", nombre).
		Int("lista_precio_id", listaID).
		Msg("producto sin precio en la lista, la linea se deriva en $0")
	return nil
}
