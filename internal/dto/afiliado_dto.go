package dto

// ─── Lookup (venta screen) ───────────────────────────────────────────────────

// ConsumidorFinalID is returned as id_afiliado for walk-in lookups so the
// venta screen can branch without a separate flag.
const ConsumidorFinalID = "CF"

// FamiliarLookup is one dependent inside a lookup response.
type FamiliarLookup struct {
	ID         string `json:"id"`
	Documento  string `json:"documento"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Parentesco string `json:"parentesco"`
	Categoria  string `json:"categoria"` // mayor | menor
	ComproHoy  bool   `json:"compro_hoy"`
}

// AfiliadoLookupResponse answers GET /v1/afiliados/buscar-por-documento/:dni.
type AfiliadoLookupResponse struct {
	IDAfiliado    string           `json:"id_afiliado"`
	Documento     string           `json:"documento"`
	Nombre        string           `json:"nombre"`
	Apellido      string           `json:"apellido"`
	Convenio      string           `json:"convenio"`
	ConvenioID    *string          `json:"convenio_id"`
	ListaPrecioID int              `json:"lista_precio_id"`
	ComproHoy     bool             `json:"compro_hoy"`
	Familiares    []FamiliarLookup `json:"familiares"`
}

// ─── Administración ──────────────────────────────────────────────────────────

type CrearAfiliadoRequest struct {
	Documento  string  `json:"documento"   validate:"required,min=6"`
	Nombre     string  `json:"nombre"      validate:"required"`
	Apellido   string  `json:"apellido"    validate:"required"`
	Email      *string `json:"email"       validate:"omitempty,email"`
	Telefono   *string `json:"telefono"`
	ConvenioID string  `json:"convenio_id" validate:"required,uuid"`
}

type ActualizarAfiliadoRequest struct {
	Nombre     *string `json:"nombre"`
	Apellido   *string `json:"apellido"`
	Email      *string `json:"email"       validate:"omitempty,email"`
	Telefono   *string `json:"telefono"`
	ConvenioID *string `json:"convenio_id" validate:"omitempty,uuid"`
	Activo     *bool   `json:"activo"`
}

type CrearFamiliarRequest struct {
	Documento  string `json:"documento"  validate:"required,min=6"`
	Nombre     string `json:"nombre"     validate:"required"`
	Apellido   string `json:"apellido"   validate:"required"`
	Parentesco string `json:"parentesco" validate:"required"`
	Categoria  string `json:"categoria"  validate:"required,oneof=mayor menor"`
}

type AfiliadoResponse struct {
	ID        string  `json:"id"`
	Documento string  `json:"documento"`
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Email     *string `json:"email"`
	Telefono  *string `json:"telefono"`
	Convenio  string  `json:"convenio"`
	Activo    bool    `json:"activo"`
}
