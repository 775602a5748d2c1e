package dto

type CrearTecnicoRequest struct {
	Cedula       string  `json:"cedula"       validate:"required,min=6,max=20"`
	Nombre       string  `json:"nombre"       validate:"required,min=2,max=80"`
	Apellido     string  `json:"apellido"     validate:"required,min=2,max=80"`
	Telefono     *string `json:"telefono"`
	Email        *string `json:"email"        validate:"omitempty,email"`
	Especialidad *string `json:"especialidad"`
}

type ActualizarTecnicoRequest struct {
	Nombre       *string `json:"nombre"       validate:"omitempty,min=2,max=80"`
	Apellido     *string `json:"apellido"     validate:"omitempty,min=2,max=80"`
	Telefono     *string `json:"telefono"`
	Email        *string `json:"email"        validate:"omitempty,email"`
	Especialidad *string `json:"especialidad"`
}

type TecnicoResponse struct {
	ID           string  `json:"id"`
	Cedula       string  `json:"cedula"`
	Nombre       string  `json:"nombre"`
	Apellido     string  `json:"apellido"`
	Telefono     *string `json:"telefono"`
	Email        *string `json:"email"`
	Especialidad *string `json:"especialidad"`
	Activo       bool    `json:"activo"`
}
