package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetalleOrdenRepuesto links one repair order to one spare part, snapshotting
// the part's sale price at attachment time. Creating a detalle reserves stock;
// deleting it returns stock.
type DetalleOrdenRepuesto struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenReparacionID uuid.UUID `gorm:"type:uuid;not null;index"`
	RepuestoID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Cantidad          int       `gorm:"not null"`
	PrecioUnitario    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Repuesto *Repuesto `gorm:"foreignKey:RepuestoID"`
}

// TableName overrides GORM's default pluralization.
func (DetalleOrdenRepuesto) TableName() string { return "detalles_orden_repuesto" }

// CalcularSubtotal derives the line subtotal. The subtotal column is never
// settable independently — it is always recomputed from cantidad × precio.
func CalcularSubtotal(cantidad int, precioUnitario decimal.Decimal) decimal.Decimal {
	return precioUnitario.Mul(decimal.NewFromInt(int64(cantidad)))
}
