package dto

import "github.com/shopspring/decimal"

// IngresoPorConvenio is one row of the income-by-agreement report:
// money and head count per convenio over a date range.
type IngresoPorConvenio struct {
	Convenio string          `json:"convenio"`
	Ventas   int             `json:"ventas"`
	Personas int             `json:"personas"`
	Total    decimal.Decimal `json:"total"`
}

type ReporteIngresosResponse struct {
	Desde string               `json:"desde"`
	Hasta string               `json:"hasta"`
	Filas []IngresoPorConvenio `json:"filas"`
	Total decimal.Decimal      `json:"total"`
}

// ─── Convenios (catálogo) ────────────────────────────────────────────────────

type CrearConvenioRequest struct {
	Nombre        string  `json:"nombre"          validate:"required,min=2"`
	Descripcion   *string `json:"descripcion"`
	ListaPrecioID *int    `json:"lista_precio_id" validate:"omitempty,min=1"`
}

type ConvenioResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	Descripcion   *string `json:"descripcion"`
	ListaPrecioID *int    `json:"lista_precio_id"`
}

type MedioPagoResponse struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	EsEfectivo bool   `json:"es_efectivo"`
}

type PuntoVentaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
