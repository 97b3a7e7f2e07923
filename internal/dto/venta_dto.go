package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LineaVentaRequest mirrors one cart line as the venta screen holds it.
// Derived entry lines keep their entrada-socio-<dni> id; manual lines send
// any other id. The backend re-partitions — it never trusts client flags.
type LineaVentaRequest struct {
	ID             string          `json:"id"              validate:"required"`
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	ListaPrecioID  int             `json:"lista_precio_id" validate:"min=0"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	AfiliadoID     *string         `json:"afiliado_id"     validate:"omitempty,uuid"`
	FamiliarID     *string         `json:"familiar_id"     validate:"omitempty,uuid"`
	EsTitular      bool            `json:"es_titular"`
}

type RegistrarVentaRequest struct {
	SesionCajaID string              `json:"sesion_caja_id" validate:"required,uuid"`
	PuntoVentaID string              `json:"punto_venta_id" validate:"required,uuid"`
	MedioPagoID  string              `json:"medio_pago_id"  validate:"required,uuid"`
	AfiliadoID   *string             `json:"afiliado_id"    validate:"omitempty,uuid"`
	// ClienteEmail: when present the comprobante worker mails the PDF.
	ClienteEmail *string             `json:"cliente_email"  validate:"omitempty,email"`
	Items        []LineaVentaRequest `json:"items"          validate:"required,min=1,dive"`
}

type CancelarVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	ListaPrecioID  int             `json:"lista_precio_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
	AfiliadoID     *string         `json:"afiliado_id"`
	EsTitular      bool            `json:"es_titular"`
	EsEntrada      bool            `json:"es_entrada"`
}

type VentaResponse struct {
	ID           string                 `json:"id"`
	SesionCajaID string                 `json:"sesion_caja_id"`
	MedioPago    string                 `json:"medio_pago"`
	Convenio     *string                `json:"convenio"`
	Total        decimal.Decimal        `json:"total"`
	Estado       string                 `json:"estado"`
	Detalles     []DetalleVentaResponse `json:"detalles"`
	CreatedAt    string                 `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int             `json:"total"`
}
