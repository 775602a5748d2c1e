package dto

type CrearClienteRequest struct {
	TipoDocumento   string  `json:"tipo_documento"   validate:"required,oneof=DNI CUIT PASAPORTE"`
	NumeroDocumento string  `json:"numero_documento" validate:"required,min=6,max=20"`
	RazonSocial     string  `json:"razon_social"     validate:"required,min=2,max=150"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	RazonSocial *string `json:"razon_social" validate:"omitempty,min=2,max=150"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`
}

type ClienteResponse struct {
	ID              string  `json:"id"`
	TipoDocumento   string  `json:"tipo_documento"`
	NumeroDocumento string  `json:"numero_documento"`
	RazonSocial     string  `json:"razon_social"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"`
	Direccion       *string `json:"direccion"`
}
