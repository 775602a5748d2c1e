package dto

import "github.com/shopspring/decimal"

// DTOs for the public (unauthenticated) status surface: lookup by tracking
// code, client authorization, and history by document number.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ConsultarEstadoRequest struct {
	CodigoSeguimiento string `json:"codigo_seguimiento" form:"codigo_seguimiento" validate:"required"`
}

type AutorizarRequest struct {
	CodigoSeguimiento     string  `json:"codigo_seguimiento" validate:"required"`
	NumeroDocumento       string  `json:"numero_documento"   validate:"required"`
	Autorizar             *bool   `json:"autorizar"          validate:"required"`
	ObservacionesCliente  *string `json:"observaciones_cliente"`
}

type HistorialClienteRequest struct {
	NumeroDocumento string `json:"numero_documento" form:"numero_documento" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TimelineEntry is one step in the public order timeline.
type TimelineEntry struct {
	Estado      string  `json:"estado"`
	Descripcion string  `json:"descripcion"`
	Fecha       *string `json:"fecha"`
	Completado  bool    `json:"completado"`
	Actual      bool    `json:"actual"`
}

type EquipoResumen struct {
	Marca  string  `json:"marca"`
	Modelo string  `json:"modelo"`
	Color  *string `json:"color"`
}

type RepuestoUtilizado struct {
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ConsultaOrdenView is the public-safe projection of an order.
type ConsultaOrdenView struct {
	CodigoSeguimiento     string              `json:"codigo_seguimiento"`
	Estado                string              `json:"estado"`
	EstadoDescripcion     string              `json:"estado_descripcion"`
	EstadoColor           string              `json:"estado_color"`
	Equipo                EquipoResumen       `json:"equipo"`
	ProblemaReportado     string              `json:"problema_reportado"`
	Diagnostico           *string             `json:"diagnostico"`
	CostoEstimado         *decimal.Decimal    `json:"costo_estimado"`
	CostoFinal            *decimal.Decimal    `json:"costo_final"`
	Autorizado            bool                `json:"autorizado"`
	FechaAutorizacion     *string             `json:"fecha_autorizacion"`
	FechaRecepcion        string              `json:"fecha_recepcion"`
	FechaEntrega          *string             `json:"fecha_entrega"`
	TecnicoAsignado       *string             `json:"tecnico_asignado"`
	RequiereAutorizacion  bool                `json:"requiere_autorizacion"`
	RepuestosUtilizados   []RepuestoUtilizado `json:"repuestos_utilizados"`
	Observaciones         *string             `json:"observaciones"`
}

type ConsultaEstadoResponse struct {
	Encontrado bool               `json:"encontrado"`
	Orden      *ConsultaOrdenView `json:"orden,omitempty"`
	Timeline   []TimelineEntry    `json:"timeline,omitempty"`
}

type AutorizacionOrdenView struct {
	CodigoSeguimiento string  `json:"codigo_seguimiento"`
	Estado            string  `json:"estado"`
	Autorizado        bool    `json:"autorizado"`
	FechaAutorizacion *string `json:"fecha_autorizacion"`
}

type AutorizarResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Orden   AutorizacionOrdenView `json:"orden"`
}

type HistorialOrdenItem struct {
	CodigoSeguimiento string           `json:"codigo_seguimiento"`
	Equipo            string           `json:"equipo"`
	Estado            string           `json:"estado"`
	EstadoDescripcion string           `json:"estado_descripcion"`
	EstadoColor       string           `json:"estado_color"`
	FechaRecepcion    string           `json:"fecha_recepcion"`
	FechaEntrega      *string          `json:"fecha_entrega"`
	CostoFinal        *decimal.Decimal `json:"costo_final"`
}

type HistorialClienteResponse struct {
	Ordenes []HistorialOrdenItem `json:"ordenes"`
}
