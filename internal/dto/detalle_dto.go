package dto

import "github.com/shopspring/decimal"

// AgregarDetalleRequest attaches a spare part to a repair order, reserving stock.
type AgregarDetalleRequest struct {
	OrdenReparacionID string `json:"orden_reparacion_id" validate:"required,uuid"`
	RepuestoID        string `json:"repuesto_id"         validate:"required,uuid"`
	Cantidad          int    `json:"cantidad"            validate:"required,min=1"`
}

type DetalleOrdenResponse struct {
	ID                string          `json:"id"`
	OrdenReparacionID string          `json:"orden_reparacion_id"`
	RepuestoID        string          `json:"repuesto_id"`
	Repuesto          string          `json:"repuesto,omitempty"`
	Cantidad          int             `json:"cantidad"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	Subtotal          decimal.Decimal `json:"subtotal"`
}
