package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sucursales físicas. El stock de accesorios se lleva por sucursal.
const (
	SucursalLaPlata = "la_plata"
	SucursalMitre   = "mitre"
)

// OtraSucursal returns the branch that is not s.
func OtraSucursal(s string) string {
	if s == SucursalLaPlata {
		return SucursalMitre
	}
	return SucursalLaPlata
}

// Otro is a split-stock accessory product: quantity is the sum of the two
// branch counters. Both counters are never negative. When the total reaches
// zero after a sale the row is hard-deleted from the catalog.
type Otro struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Categoria string    `gorm:"index;not null"`
	// Serial only carries meaning when the total quantity is 1.
	Serial *string

	PrecioCosto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostosAdicionales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioVenta       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	StockLaPlata int `gorm:"not null;default:0"`
	StockMitre   int `gorm:"not null;default:0"`

	FotoURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Otro) TableName() string { return "otros" }

// StockTotal is the sellable quantity across both branches.
func (o *Otro) StockTotal() int { return o.StockLaPlata + o.StockMitre }

// StockEn returns the counter for one branch.
func (o *Otro) StockEn(sucursal string) int {
	if sucursal == SucursalMitre {
		return o.StockMitre
	}
	return o.StockLaPlata
}
