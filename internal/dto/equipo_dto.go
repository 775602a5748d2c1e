package dto

type CrearEquipoRequest struct {
	ClienteID     string  `json:"cliente_id" validate:"required,uuid"`
	Marca         string  `json:"marca"      validate:"required,min=2,max=60"`
	Modelo        string  `json:"modelo"     validate:"required,min=1,max=60"`
	IMEI          *string `json:"imei"       validate:"omitempty,min=14,max=17"`
	Color         *string `json:"color"`
	Observaciones *string `json:"observaciones"`
}

type ActualizarEquipoRequest struct {
	Marca         *string `json:"marca"  validate:"omitempty,min=2,max=60"`
	Modelo        *string `json:"modelo" validate:"omitempty,min=1,max=60"`
	IMEI          *string `json:"imei"   validate:"omitempty,min=14,max=17"`
	Color         *string `json:"color"`
	Observaciones *string `json:"observaciones"`
}

type EquipoResponse struct {
	ID            string  `json:"id"`
	ClienteID     string  `json:"cliente_id"`
	Marca         string  `json:"marca"`
	Modelo        string  `json:"modelo"`
	IMEI          *string `json:"imei"`
	Color         *string `json:"color"`
	Observaciones *string `json:"observaciones"`
}
