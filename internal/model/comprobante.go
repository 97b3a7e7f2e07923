package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comprobante tracks the PDF receipt generated for a venta.
// Tipo: "recibo_venta" | "ticket_cierre"
// Estado: "pendiente" | "emitido" | "error"
// Generation is advisory: a venta is valid without its comprobante, and the
// retry cron re-attempts failed renders until MaxRetries.
type Comprobante struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo       string    `gorm:"type:varchar(30);not null;default:'recibo_venta'"`
	MontoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado     string    `gorm:"type:varchar(20);not null;default:'pendiente'"`
	// PDFPath is relative to PDF_STORAGE_PATH.
	PDFPath *string `gorm:"column:pdf_path"`
	// Retry fields — used by retry_cron to re-attempt failed renders/sends.
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
