package model

import (
	"time"

	"github.com/google/uuid"
)

type Cliente struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre   string    `gorm:"index;not null"`
	Apellido string
	Telefono *string
	Email    *string
	Dni      *string `gorm:"uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
