package model

import (
	"time"

	"github.com/google/uuid"
)

// NombreConsumidorFinal is the sentinel convenio for walk-in clients.
// Ventas under this convenio never carry afiliado references.
const NombreConsumidorFinal = "Consumidor Final"

// Convenio is a membership agreement tier (e.g. "Empleados CEC", "Estandar").
// ListaPrecioID is the explicit tier → price list mapping; pricing never
// infers the list from the tier name when this field is set.
type Convenio struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"uniqueIndex;not null"`
	Descripcion   *string
	ListaPrecioID *int `gorm:"index"`
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
