package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is the device owner. NumeroDocumento doubles as the credential for
// the public status/authorization endpoints, so it is unique and immutable
// from the public surface.
type Cliente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoDocumento   string    `gorm:"type:varchar(10);not null"` // "DNI" | "CUIT" | "PASAPORTE"
	NumeroDocumento string    `gorm:"uniqueIndex;not null"`
	RazonSocial     string    `gorm:"index;not null"`
	Telefono        *string
	Email           *string
	Direccion       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
