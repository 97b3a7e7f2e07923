package model

import (
	"time"

	"github.com/google/uuid"
)

// PuntoVenta is a physical sales point (pileta, buffet, secretaría).
type PuntoVenta struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// MedioPago is the payment-method catalog. EsEfectivo is an explicit flag —
// cash reconciliation never matches on the name.
type MedioPago struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string    `gorm:"uniqueIndex;not null"`
	EsEfectivo bool      `gorm:"not null;default:false"`
	Activo     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
}
