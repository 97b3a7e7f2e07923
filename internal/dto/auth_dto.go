package dto

// ─── Auth ────────────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

// ─── Usuarios (empleados) ────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Username     string  `json:"username"       validate:"required,min=3"`
	Password     string  `json:"password"       validate:"required,min=6"`
	Nombre       string  `json:"nombre"         validate:"required"`
	Apellido     string  `json:"apellido"       validate:"required"`
	Email        *string `json:"email"          validate:"omitempty,email"`
	Rol          string  `json:"rol"            validate:"required,oneof=cajero supervisor administrador"`
	PuntoVentaID *string `json:"punto_venta_id" validate:"omitempty,uuid"`
}

type ActualizarUsuarioRequest struct {
	Nombre       *string `json:"nombre"`
	Apellido     *string `json:"apellido"`
	Email        *string `json:"email"          validate:"omitempty,email"`
	Password     *string `json:"password"       validate:"omitempty,min=6"`
	Rol          *string `json:"rol"            validate:"omitempty,oneof=cajero supervisor administrador"`
	PuntoVentaID *string `json:"punto_venta_id" validate:"omitempty,uuid"`
}

type UsuarioResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Nombre       string  `json:"nombre"`
	Apellido     string  `json:"apellido"`
	Email        *string `json:"email"`
	Rol          string  `json:"rol"`
	PuntoVentaID *string `json:"punto_venta_id"`
	Activo       bool    `json:"activo"`
}
