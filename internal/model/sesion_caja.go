package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SesionCaja represents the lifecycle of a cash register session.
// Estado: "abierta" | "cerrada". Once cerrada the row is never mutated again;
// the reconciled closing figures are persisted alongside it.
type SesionCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PuntoVentaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	MontoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'abierta'"`

	// Closing figures — nil while abierta.
	IngresosManuales *decimal.Decimal `gorm:"type:decimal(12,2)"`
	EgresosManuales  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	VentasEfectivo   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// VentasEfectivoCanceladas is reported on the ticket but never adds to
	// the drawer balance — a voided sale is not a cash inflow.
	VentasEfectivoCanceladas *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SaldoEfectivo            *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Observaciones *string
	OpenedAt      time.Time
	ClosedAt      *time.Time

	PuntoVenta  *PuntoVenta      `gorm:"foreignKey:PuntoVentaID"`
	Movimientos []MovimientoCaja `gorm:"foreignKey:SesionCajaID"`
}

// Movement type discriminators. The reconciler keys on these — there is no
// name matching anywhere in the classification path.
const (
	MovIngresoManual = "ingreso_manual"
	MovEgresoManual  = "egreso_manual"
	MovVenta         = "venta"
	MovAnulacion     = "anulacion"
)

// MovimientoCaja is an immutable event in the cash register ledger.
// Movements are NEVER modified or deleted — cancellations create inverse
// "anulacion" entries referencing the original venta.
type MovimientoCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionCajaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo         string          `gorm:"type:varchar(20);not null"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion  string          `gorm:"not null"`
	// ReferenciaID links to the originating Venta for venta/anulacion rows.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

// EsManual reports whether the movement was entered by hand at the register,
// as opposed to being generated by a sale or a cancellation.
func (m *MovimientoCaja) EsManual() bool {
	return m.Tipo == MovIngresoManual || m.Tipo == MovEgresoManual
}
