package dto

// ─── Auth ────────────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Cliente     ClienteResponse `json:"cliente"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarClienteRequest struct {
	Nombres         *string `json:"nombres"          validate:"omitempty,min=2"`
	Apellidos       *string `json:"apellidos"        validate:"omitempty,min=2"`
	RazonSocial     *string `json:"razon_social"     validate:"omitempty,min=2"`
	NumeroDocumento string  `json:"numero_documento" validate:"required,min=8,max=11"`
	Email           string  `json:"email"            validate:"required,email"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
	IDDistrito      *int64  `json:"id_distrito"`
	TipoCliente     string  `json:"tipo_cliente"     validate:"required,oneof=Natural Jurídica"`
	Contrasena      string  `json:"contrasena"       validate:"required,min=8"`
}

type ActualizarClienteRequest struct {
	Nombres     *string `json:"nombres"`
	Apellidos   *string `json:"apellidos"`
	RazonSocial *string `json:"razon_social"`
	Telefono    *string `json:"telefono"`
	Direccion   *string `json:"direccion"`
	IDDistrito  *int64  `json:"id_distrito"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	IDCliente       int64   `json:"id_cliente"`
	Nombre          string  `json:"nombre"`
	NumeroDocumento string  `json:"numero_documento"`
	Email           string  `json:"email"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
	TipoCliente     string  `json:"tipo_cliente"`
}
