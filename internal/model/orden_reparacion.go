package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrdenReparacion is the central workflow entity: one device in the shop.
// Cliente and Equipo are fixed at creation; Tecnico can be reassigned.
type OrdenReparacion struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoSeguimiento string    `gorm:"uniqueIndex;not null"`
	ClienteID         uuid.UUID `gorm:"type:uuid;not null;index"`
	EquipoID          uuid.UUID `gorm:"type:uuid;not null;index"`
	TecnicoID         *uuid.UUID `gorm:"type:uuid;index"`
	ProblemaReportado string    `gorm:"not null"`
	Diagnostico       *string
	SolucionAplicada  *string
	Estado            Estado `gorm:"type:varchar(30);not null;index"`
	CostoEstimado     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CostoFinal        *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Autorizado        bool             `gorm:"not null;default:false"`
	FechaAutorizacion *time.Time
	FechaEntrega      *time.Time
	// Observaciones is append-only free text; public authorization responses
	// are added with a "[CLIENTE]:" prefix.
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente  *Cliente                `gorm:"foreignKey:ClienteID"`
	Equipo   *Equipo                 `gorm:"foreignKey:EquipoID"`
	Tecnico  *Tecnico                `gorm:"foreignKey:TecnicoID"`
	Detalles []DetalleOrdenRepuesto  `gorm:"foreignKey:OrdenReparacionID"`
}

// TableName overrides GORM's default pluralization.
func (OrdenReparacion) TableName() string { return "ordenes_reparacion" }
