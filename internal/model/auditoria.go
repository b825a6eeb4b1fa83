package model

import (
	"time"

	"github.com/google/uuid"
)

// Auditoria is an append-only audit-log event. Rows are written by the async
// audit worker, never from request handlers directly.
type Auditoria struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioNombre string
	Accion        string     `gorm:"not null"` // "venta" | "ajuste_stock" | "alta_producto" | ...
	Tabla         string     `gorm:"not null"`
	RegistroID    *uuid.UUID `gorm:"type:uuid"`
	Detalle       string
	CreatedAt     time.Time
}

func (Auditoria) TableName() string { return "auditoria" }
