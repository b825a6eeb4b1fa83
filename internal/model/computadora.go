package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Computadora is a unique-unit notebook identified by its serial number.
// Quantity is implicitly 1: selling it flags Disponible=false (soft-remove
// from the sellable pool), the row is never deleted.
type Computadora struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Serial string    `gorm:"uniqueIndex;not null"`
	Modelo string    `gorm:"index;not null"`

	Procesador string
	RAM        string
	SSD        string
	Pantalla   string
	Idioma     string
	Color      string

	PrecioCosto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostosAdicionales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// PrecioCostoTotal = PrecioCosto + CostosAdicionales. Derived by the
	// BeforeSave hook — never written by callers.
	PrecioCostoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta      decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Sucursal   string `gorm:"type:varchar(20);not null;default:'la_plata'"`
	Disponible bool   `gorm:"not null;default:true;index"`
	FotoURL    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Computadora) TableName() string { return "computadoras" }

// BeforeSave keeps the cost basis consistent: shipping/repair surcharges are
// folded into a single per-unit total used by margin calculations.
func (c *Computadora) BeforeSave(_ *gorm.DB) error {
	c.PrecioCostoTotal = c.PrecioCosto.Add(c.CostosAdicionales)
	return nil
}
