package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repuesto is a spare part in inventory. Stock is mutated ONLY through the
// inventory service (reserva/devolución/ajuste) so every change leaves a
// MovimientoStock audit row — never through a direct model save.
type Repuesto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo        string    `gorm:"uniqueIndex;not null"`
	Nombre        string    `gorm:"index;not null"`
	Descripcion   *string
	Marca         string `gorm:"index"`
	Modelo        string `gorm:"index"`
	Stock         int    `gorm:"not null;default:0"`
	StockMinimo   int    `gorm:"not null;default:5"`
	PrecioCompra  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioVenta   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TieneStockBajo reports whether stock is at or below the reorder threshold.
func (r *Repuesto) TieneStockBajo() bool { return r.Stock <= r.StockMinimo }

// HayDisponibilidad reports whether cantidad units can be reserved.
func (r *Repuesto) HayDisponibilidad(cantidad int) bool { return r.Stock >= cantidad }
