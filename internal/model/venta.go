package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Familias de producto. Las tres comparten el flujo de venta pero difieren
// en cómo se almacena su stock.
const (
	TipoComputadora = "computadora"
	TipoCelular     = "celular"
	TipoOtro        = "otro"
)

// Métodos de pago aceptados. "cuenta_corriente" genera un MovimientoCuenta.
const (
	PagoEfectivo        = "efectivo"
	PagoTransferencia   = "transferencia"
	PagoTarjeta         = "tarjeta"
	PagoDolares         = "dolares"
	PagoCuentaCorriente = "cuenta_corriente"
)

// Venta is the immutable transaction header. Created atomically with its
// items; there is no update or delete path.
type Venta struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Numero is human readable: a time-based component plus a short random
	// suffix. Unique — a collision aborts the checkout.
	Numero string `gorm:"uniqueIndex;not null"`

	ClienteID *uuid.UUID `gorm:"type:uuid;index"`
	// ClienteNombre is a point-in-time snapshot; "Consumidor Final" for walk-ins.
	ClienteNombre string `gorm:"not null"`

	Sucursal       string    `gorm:"type:varchar(20);not null"`
	VendedorID     uuid.UUID `gorm:"type:uuid;not null"`
	VendedorNombre string    `gorm:"not null"`

	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCosto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalGanancia decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Observaciones *string
	CreatedAt     time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID"`
	Pagos []VentaPago `gorm:"foreignKey:VentaID"`

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

// VentaItem is the persisted form of a cart line item. Cost and margin are
// frozen at checkout time — later catalog edits never touch them.
type VentaItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID `gorm:"type:uuid;index;not null"`

	TipoProducto string    `gorm:"type:varchar(20);not null"` // computadora | celular | otro
	ProductoID   uuid.UUID `gorm:"type:uuid;not null"`
	Serial       *string
	// Descripcion is the frozen human-readable copy of the product at sale time.
	Descripcion string `gorm:"not null"`
	Categoria   *string

	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Ganancia       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (VentaItem) TableName() string { return "venta_items" }

// VentaPago is one of the one or two payment-method/amount pairs of a sale.
type VentaPago struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Metodo  string          `gorm:"type:varchar(20);not null"`
	Monto   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (VentaPago) TableName() string { return "venta_pagos" }
