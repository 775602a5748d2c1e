package model

import (
	"time"

	"github.com/google/uuid"
)

// Tecnico is a shop technician who can be assigned to repair orders.
type Tecnico struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Cedula       string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Apellido     string    `gorm:"not null"`
	Telefono     *string
	Email        *string
	Especialidad *string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NombreCompleto is the display name used by the public status view.
func (t *Tecnico) NombreCompleto() string { return t.Nombre + " " + t.Apellido }
