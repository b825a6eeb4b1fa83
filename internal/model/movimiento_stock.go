package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimientoStock registra cada cambio de stock sobre cualquier familia de
// producto. Se crea automáticamente al vender o ajustar manualmente.
type MovimientoStock struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoProducto string    `gorm:"type:varchar(20);not null"` // computadora | celular | otro
	ProductoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo         string    `gorm:"not null"` // "venta" | "ajuste_manual" | "alta"
	Cantidad     int       `gorm:"not null"` // positive = entrada, negative = salida
	Sucursal     *string   `gorm:"type:varchar(20)"`
	Detalle      string
	ReferenciaID *uuid.UUID `gorm:"type:uuid"` // venta_id when Tipo == "venta"
	CreatedAt    time.Time
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }
