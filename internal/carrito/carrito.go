// Package carrito builds sale line items from an affiliate lookup and a
// person selection, and turns the finished cart into venta detail rows.
//
// Entry lines are derived, never stored: DerivarEntradas is a pure function
// of (afiliado, seleccion, precios) and fully owns every line whose ID starts
// with PrefijoEntradaSocio. Manually added product lines live outside this
// package and are only ever appended to the derived set.
package carrito

import (
	"strings"

	"github.com/MateoRicci/gestion-cec-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrefijoEntradaSocio tags derived entry lines. One line exists per selected
// person and is replaced wholesale on every selection change.
const PrefijoEntradaSocio = "entrada-socio-"

// Selection keys follow the UI convention: titular-<dni> / familiar-<dni>.
func KeyTitular(documento string) string  { return "titular-" + documento }
func KeyFamiliar(documento string) string { return "familiar-" + documento }

// PrecioResuelto is the outcome of a price lookup for one entry product.
// A nil PrecioResuelto downstream means the price list had no entry: the
// line renders at $0 instead of blocking the sale (fail-soft).
type PrecioResuelto struct {
	ProductoID     uuid.UUID
	NombreProducto string
	ListaPrecioID  int
	PrecioUnitario decimal.Decimal
}

// PreciosEntrada carries the three resolved entry prices the cart needs.
type PreciosEntrada struct {
	Mayor   *PrecioResuelto // "Entrada Mayor" at the afiliado's list
	Menor   *PrecioResuelto // "Entrada Menor" at the afiliado's list
	NoSocio *PrecioResuelto // walk-in entry at the "No Socios" list
}

// Linea is one cart line: either a derived entry line or a manual product.
type Linea struct {
	ID             string
	ProductoID     uuid.UUID
	Nombre         string
	Cantidad       int
	ListaPrecioID  int
	PrecioUnitario decimal.Decimal
	AfiliadoID     *uuid.UUID
	FamiliarID     *uuid.UUID
	EsTitular      bool
	EsEntrada      bool
}

// Subtotal returns cantidad × precio unitario.
func (l Linea) Subtotal() decimal.Decimal {
	return l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// EsEntradaSocio reports whether the line is a derived membership entry.
func (l Linea) EsEntradaSocio() bool {
	return strings.HasPrefix(l.ID, PrefijoEntradaSocio)
}

// DerivarEntradas synthesizes one entry line per selected person.
//
// A nil afiliado yields no lines (the caller drops all entrada-socio-* lines).
// Under the "Consumidor Final" sentinel every selected person gets the
// walk-in entry with a nil afiliado reference. Otherwise the person's age
// category picks Entrada Mayor or Entrada Menor, the line carries the
// titular's (or matching familiar's) id, and EsTitular is true only for the
// titular. Quantity is always 1: one line, one person.
func DerivarEntradas(afiliado *model.Afiliado, seleccion map[string]bool, precios PreciosEntrada) []Linea {
	if afiliado == nil {
		return nil
	}

	esCF := afiliado.Convenio != nil && afiliado.Convenio.Nombre == model.NombreConsumidorFinal

	type persona struct {
		documento  string
		nombre     string
		categoria  string
		familiarID *uuid.UUID
		esTitular  bool
	}

	personas := make([]persona, 0, 1+len(afiliado.Familiares))
	if seleccion[KeyTitular(afiliado.Documento)] {
		personas = append(personas, persona{
			documento: afiliado.Documento,
			nombre:    afiliado.Nombre + " " + afiliado.Apellido,
			categoria: "mayor",
			esTitular: true,
		})
	}
	for i := range afiliado.Familiares {
		f := afiliado.Familiares[i]
		if !seleccion[KeyFamiliar(f.Documento)] {
			continue
		}
		fid := f.ID
		personas = append(personas, persona{
			documento:  f.Documento,
			nombre:     f.Nombre + " " + f.Apellido,
			categoria:  f.Categoria,
			familiarID: &fid,
		})
	}

	lineas := make([]Linea, 0, len(personas))
	for _, p := range personas {
		var precio *PrecioResuelto
		switch {
		case esCF:
			precio = precios.NoSocio
		case p.categoria == "menor":
			precio = precios.Menor
		default:
			precio = precios.Mayor
		}

		linea := Linea{
			ID:        PrefijoEntradaSocio + p.documento,
			Nombre:    "Entrada — " + p.nombre,
			Cantidad:  1,
			EsEntrada: true,
		}
		if precio != nil {
			linea.ProductoID = precio.ProductoID
			linea.ListaPrecioID = precio.ListaPrecioID
			linea.PrecioUnitario = precio.PrecioUnitario
		}
		if !esCF {
			aid := afiliado.ID
			linea.AfiliadoID = &aid
			linea.FamiliarID = p.familiarID
			linea.EsTitular = p.esTitular
		}
		lineas = append(lineas, linea)
	}
	return lineas
}

// FusionarLineas replaces the previous derived set with the new one, leaving
// manual lines untouched and in their original order.
func FusionarLineas(anteriores, entradas []Linea) []Linea {
	resultado := make([]Linea, 0, len(anteriores)+len(entradas))
	resultado = append(resultado, entradas...)
	for _, l := range anteriores {
		if !l.EsEntradaSocio() {
			resultado = append(resultado, l)
		}
	}
	return resultado
}

// Total sums subtotals across the cart.
func Total(lineas []Linea) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lineas {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ConstruirDetalles turns cart lines into venta detail rows.
//
// Partition rule: a line is a membership entry iff the sale is not
// consumidor-final, the line is a derived entrada-socio-* line AND it carries
// an afiliado reference. Membership rows map 1:1 (cantidad 1, afiliado and
// es_titular preserved).
//
// Every other line is "extra". Extra entry-type lines explode into N rows of
// cantidad 1 each — an entry row always represents exactly one physical
// person, which is what the per-convenio attendance report counts. Non-entry
// extras aggregate by (producto, lista) summing cantidad and total.
func ConstruirDetalles(lineas []Linea, esConsumidorFinal bool) []model.DetalleVenta {
	type claveExtra struct {
		producto uuid.UUID
		lista    int
	}

	detalles := make([]model.DetalleVenta, 0, len(lineas))
	agregados := make(map[claveExtra]*model.DetalleVenta)
	ordenClaves := make([]claveExtra, 0)

	for _, l := range lineas {
		esMembresia := !esConsumidorFinal && l.EsEntradaSocio() && l.AfiliadoID != nil

		switch {
		case esMembresia:
			detalles = append(detalles, model.DetalleVenta{
				ProductoID:     l.ProductoID,
				ListaPrecioID:  l.ListaPrecioID,
				Cantidad:       1,
				PrecioUnitario: l.PrecioUnitario,
				PrecioTotal:    l.PrecioUnitario,
				AfiliadoID:     l.AfiliadoID,
				FamiliarID:     l.FamiliarID,
				EsTitular:      l.EsTitular,
				EsEntrada:      true,
			})

		case l.EsEntrada:
			// Walk-in or affiliate-less entry: one row per unit.
			for i := 0; i < l.Cantidad; i++ {
				detalles = append(detalles, model.DetalleVenta{
					ProductoID:     l.ProductoID,
					ListaPrecioID:  l.ListaPrecioID,
					Cantidad:       1,
					PrecioUnitario: l.PrecioUnitario,
					PrecioTotal:    l.PrecioUnitario,
					EsEntrada:      true,
				})
			}

		default:
			clave := claveExtra{producto: l.ProductoID, lista: l.ListaPrecioID}
			if d, ok := agregados[clave]; ok {
				d.Cantidad += l.Cantidad
				d.PrecioTotal = d.PrecioTotal.Add(l.Subtotal())
				continue
			}
			agregados[clave] = &model.DetalleVenta{
				ProductoID:     l.ProductoID,
				ListaPrecioID:  l.ListaPrecioID,
				Cantidad:       l.Cantidad,
				PrecioUnitario: l.PrecioUnitario,
				PrecioTotal:    l.Subtotal(),
			}
			ordenClaves = append(ordenClaves, clave)
		}
	}

	// Aggregated extras keep first-seen order for deterministic payloads.
	for _, clave := range ordenClaves {
		detalles = append(detalles, *agregados[clave])
	}
	return detalles
}
