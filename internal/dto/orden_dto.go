package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearOrdenRequest struct {
	ClienteID         string           `json:"cliente_id"         validate:"required,uuid"`
	EquipoID          string           `json:"equipo_id"          validate:"required,uuid"`
	ProblemaReportado string           `json:"problema_reportado" validate:"required,min=5"`
	TecnicoID         *string          `json:"tecnico_id"         validate:"omitempty,uuid"`
	CostoEstimado     *decimal.Decimal `json:"costo_estimado"     validate:"omitempty,min=0"`
}

type ActualizarOrdenRequest struct {
	ProblemaReportado *string          `json:"problema_reportado" validate:"omitempty,min=5"`
	Diagnostico       *string          `json:"diagnostico"`
	SolucionAplicada  *string          `json:"solucion_aplicada"`
	CostoEstimado     *decimal.Decimal `json:"costo_estimado"`
	CostoFinal        *decimal.Decimal `json:"costo_final"`
	Observaciones     *string          `json:"observaciones"`
}

type RegistrarDiagnosticoRequest struct {
	Diagnostico   string          `json:"diagnostico"    validate:"required,min=5"`
	CostoEstimado decimal.Decimal `json:"costo_estimado" validate:"min=0"`
}

type AsignarTecnicoRequest struct {
	TecnicoID string `json:"tecnico_id" validate:"required,uuid"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type OrdenFilter struct {
	Estado    string `form:"estado"`
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	TecnicoID string `form:"tecnico_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrdenResponse struct {
	ID                string           `json:"id"`
	CodigoSeguimiento string           `json:"codigo_seguimiento"`
	ClienteID         string           `json:"cliente_id"`
	Cliente           *ClienteResponse `json:"cliente,omitempty"`
	EquipoID          string           `json:"equipo_id"`
	Equipo            *EquipoResponse  `json:"equipo,omitempty"`
	TecnicoID         *string          `json:"tecnico_id"`
	Tecnico           *TecnicoResponse `json:"tecnico,omitempty"`
	ProblemaReportado string           `json:"problema_reportado"`
	Diagnostico       *string          `json:"diagnostico"`
	SolucionAplicada  *string          `json:"solucion_aplicada"`
	Estado            string           `json:"estado"`
	EstadoDescripcion string           `json:"estado_descripcion"`
	EstadoColor       string           `json:"estado_color"`
	CostoEstimado     *decimal.Decimal `json:"costo_estimado"`
	CostoFinal        *decimal.Decimal `json:"costo_final"`
	Autorizado        bool             `json:"autorizado"`
	FechaAutorizacion *string          `json:"fecha_autorizacion"`
	FechaEntrega      *string          `json:"fecha_entrega"`
	Observaciones     *string          `json:"observaciones"`
	Detalles          []DetalleOrdenResponse `json:"detalles,omitempty"`
	CreatedAt         string           `json:"created_at"`
}

type OrdenListResponse struct {
	Data  []OrdenResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
