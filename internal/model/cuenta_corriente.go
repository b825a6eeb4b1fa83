package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoCuenta is an append-only cuenta corriente entry: the customer
// owes money against a sale. Settlement changes Estado later; the entry
// itself is never netted or merged at post time.
// Tipo: "debe" | "haber". Estado: "pendiente" | "pagado".
type MovimientoCuenta struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID  `gorm:"type:uuid;index;not null"`
	VentaID   *uuid.UUID `gorm:"type:uuid;index"`

	Tipo     string          `gorm:"type:varchar(10);not null"`
	Monto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Concepto string          `gorm:"not null"`
	Estado   string          `gorm:"type:varchar(20);not null;default:'pendiente'"`

	FechaOperacion time.Time `gorm:"not null"`
	CreatedAt      time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (MovimientoCuenta) TableName() string { return "movimientos_cuenta" }
