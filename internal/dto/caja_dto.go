package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	PuntoVentaID string          `json:"punto_venta_id" validate:"required,uuid"`
	MontoInicial decimal.Decimal `json:"monto_inicial"  validate:"min=0"`
}

type MovimientoManualRequest struct {
	SesionCajaID string          `json:"sesion_caja_id" validate:"required,uuid"`
	Monto        decimal.Decimal `json:"monto"          validate:"required,gt=0"`
	Descripcion  string          `json:"descripcion"    validate:"required,min=3"`
}

type CerrarCajaRequest struct {
	Observaciones *string `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID           string          `json:"id"`
	Tipo         string          `json:"tipo"` // ingreso_manual | egreso_manual | venta | anulacion
	Monto        decimal.Decimal `json:"monto"`
	Descripcion  string          `json:"descripcion"`
	ReferenciaID *string         `json:"referencia_id"`
	CreatedAt    string          `json:"created_at"`
}

type SesionCajaResponse struct {
	ID           string          `json:"id"`
	PuntoVentaID string          `json:"punto_venta_id"`
	PuntoVenta   string          `json:"punto_venta"`
	MontoInicial decimal.Decimal `json:"monto_inicial"`
	Estado       string          `json:"estado"`
	OpenedAt     string          `json:"opened_at"`
	ClosedAt     *string         `json:"closed_at"`
}

// BalancePorMedio is one row of the per-payment-method breakdown on close.
// Only non-cancelled ventas contribute.
type BalancePorMedio struct {
	MedioPago string          `json:"medio_pago"`
	Total     decimal.Decimal `json:"total"`
}

// AsistenciaPorConvenio is the head-count report: entry rows grouped by the
// sale's convenio; affiliate-less entries land in "No Afiliados".
type AsistenciaPorConvenio struct {
	Convenio string `json:"convenio"`
	Personas int    `json:"personas"`
}

// CierreCajaResponse carries the reconciled closing figures.
type CierreCajaResponse struct {
	SesionCajaID             string                  `json:"sesion_caja_id"`
	PuntoVenta               string                  `json:"punto_venta"`
	MontoInicial             decimal.Decimal         `json:"monto_inicial"`
	IngresosManuales         decimal.Decimal         `json:"ingresos_manuales"`
	EgresosManuales          decimal.Decimal         `json:"egresos_manuales"`
	VentasEfectivo           decimal.Decimal         `json:"ventas_efectivo"`
	VentasEfectivoCanceladas decimal.Decimal         `json:"ventas_efectivo_canceladas"`
	SaldoEfectivo            decimal.Decimal         `json:"saldo_efectivo"`
	BalancePorMedio          []BalancePorMedio       `json:"balance_por_medio"`
	Asistencia               []AsistenciaPorConvenio `json:"asistencia"`
	Estado                   string                  `json:"estado"`
	OpenedAt                 string                  `json:"opened_at"`
	ClosedAt                 string                  `json:"closed_at"`
	TicketPath               *string                 `json:"ticket_path"`
}
