package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Celular is a unique-unit phone identified by its serial (IMEI).
// Same sale semantics as Computadora: Disponible=false on sale, never deleted.
type Celular struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Serial string    `gorm:"uniqueIndex;not null"`
	Modelo string    `gorm:"index;not null"`
	Marca  string    `gorm:"not null"`

	Capacidad  string
	Color      string
	BateriaPct *int
	Estado     string `gorm:"type:varchar(20);not null;default:'usado'"` // nuevo | usado

	PrecioCosto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostosAdicionales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioCostoTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Sucursal   string `gorm:"type:varchar(20);not null;default:'la_plata'"`
	Disponible bool   `gorm:"not null;default:true;index"`
	FotoURL    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Celular) TableName() string { return "celulares" }

func (c *Celular) BeforeSave(_ *gorm.DB) error {
	c.PrecioCostoTotal = c.PrecioCosto.Add(c.CostosAdicionales)
	return nil
}
