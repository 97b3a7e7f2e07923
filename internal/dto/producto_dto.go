package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre        string  `json:"nombre" validate:"required,min=2"`
	Descripcion   *string `json:"descripcion"`
	EsEntrada     bool    `json:"es_entrada"`
	ControlaStock bool    `json:"controla_stock"`
	Stock         int     `json:"stock" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre        *string `json:"nombre" validate:"omitempty,min=2"`
	Descripcion   *string `json:"descripcion"`
	EsEntrada     *bool   `json:"es_entrada"`
	ControlaStock *bool   `json:"controla_stock"`
	Stock         *int    `json:"stock" validate:"omitempty,min=0"`
	Activo        *bool   `json:"activo"`
}

type ActualizarPrecioRequest struct {
	ListaPrecioID  int             `json:"lista_precio_id" validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

// PrecioProductoResponse is one row of GET /v1/productos/:id/precios.
type PrecioProductoResponse struct {
	ListaPrecioID  int             `json:"lista_precio_id"`
	NombreLista    string          `json:"nombre_lista"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type PreciosProductoResponse struct {
	ProductoID string                   `json:"producto_id"`
	Precios    []PrecioProductoResponse `json:"precios"`
}

type ProductoResponse struct {
	ID            string                   `json:"id"`
	Nombre        string                   `json:"nombre"`
	Descripcion   *string                  `json:"descripcion"`
	EsEntrada     bool                     `json:"es_entrada"`
	ControlaStock bool                     `json:"controla_stock"`
	Stock         int                      `json:"stock"`
	Activo        bool                     `json:"activo"`
	Precios       []PrecioProductoResponse `json:"precios"`
}

type ListaPrecioResponse struct {
	ID          int     `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}
