package model

import (
	"time"

	"github.com/google/uuid"
)

// Equipo is a registered device (phone) belonging to a client.
type Equipo struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Marca         string    `gorm:"not null"`
	Modelo        string    `gorm:"not null"`
	IMEI          *string   `gorm:"column:imei;uniqueIndex"`
	Color         *string
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}
