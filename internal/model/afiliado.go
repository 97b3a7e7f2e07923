package model

import (
	"time"

	"github.com/google/uuid"
)

// Afiliado is the titular of a membership. Familiares hang off the titular
// and only exist while the afiliado record does.
type Afiliado struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Documento  string    `gorm:"uniqueIndex;not null"`
	Nombre     string    `gorm:"not null"`
	Apellido   string    `gorm:"not null"`
	Email      *string
	Telefono   *string
	ConvenioID uuid.UUID `gorm:"type:uuid;not null;index"`
	Activo     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Convenio   *Convenio  `gorm:"foreignKey:ConvenioID"`
	Familiares []Familiar `gorm:"foreignKey:AfiliadoID"`
}

// Familiar is a dependent of an Afiliado.
// Categoria: "mayor" | "menor" — selects the entry product on sale.
type Familiar struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AfiliadoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Documento  string    `gorm:"uniqueIndex;not null"`
	Nombre     string    `gorm:"not null"`
	Apellido   string    `gorm:"not null"`
	Parentesco string    `gorm:"not null"`
	Categoria  string    `gorm:"type:varchar(10);not null"`
	Activo     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
