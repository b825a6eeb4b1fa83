package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha    string `form:"fecha"`    // YYYY-MM-DD; empty = today
	Sucursal string `form:"sucursal"` // la_plata | mitre | empty = both
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductoPersonalizadoRequest describes a custom off-stock item: a new
// split-stock product row is inserted before it becomes a line item.
type ProductoPersonalizadoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2"`
	Categoria   string          `json:"categoria"    validate:"required"`
	PrecioCosto decimal.Decimal `json:"precio_costo" validate:"min=0"`
}

// ItemVentaRequest is one cart line. For computadora/celular the quantity is
// pinned to 1; anything else is rejected before it reaches checkout.
type ItemVentaRequest struct {
	TipoProducto   string          `json:"tipo_producto"   validate:"required,oneof=computadora celular otro"`
	ProductoID     string          `json:"producto_id"     validate:"omitempty,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	// Descripcion overrides the generated listing copy when present.
	Descripcion *string `json:"descripcion"`
	// Personalizado creates the product inside the checkout transaction.
	// Mutually exclusive with ProductoID; only valid for tipo "otro".
	Personalizado *ProductoPersonalizadoRequest `json:"personalizado"`
}

type PagoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo transferencia tarjeta dolares cuenta_corriente"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
}

type RegistrarVentaRequest struct {
	Items []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
	// One or two payment pairs; their sum must equal the sale total.
	Pagos []PagoRequest `json:"pagos" validate:"required,min=1,max=2,dive"`
	// ClienteID or ConsumidorFinal=true — never neither.
	ClienteID       *string `json:"cliente_id"       validate:"omitempty,uuid"`
	ConsumidorFinal bool    `json:"consumidor_final"`
	Sucursal        string  `json:"sucursal"         validate:"required,oneof=la_plata mitre"`
	Observaciones   *string `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	TipoProducto   string          `json:"tipo_producto"`
	ProductoID     string          `json:"producto_id"`
	Serial         *string         `json:"serial,omitempty"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Ganancia       decimal.Decimal `json:"ganancia"`
}

// PrestamoSucursal informs the UI that part of an item's quantity was taken
// from the non-preferred branch.
type PrestamoSucursal struct {
	Descripcion string `json:"descripcion"`
	Sucursal    string `json:"sucursal"`
	Cantidad    int    `json:"cantidad"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	Numero        string              `json:"numero"`
	Cliente       string              `json:"cliente"`
	Sucursal      string              `json:"sucursal"`
	Vendedor      string              `json:"vendedor"`
	Items         []ItemVentaResponse `json:"items"`
	Pagos         []PagoRequest       `json:"pagos"`
	Total         decimal.Decimal     `json:"total"`
	TotalCosto    decimal.Decimal     `json:"total_costo"`
	TotalGanancia decimal.Decimal     `json:"total_ganancia"`
	Prestamos     []PrestamoSucursal  `json:"prestamos,omitempty"`
	// Advertencia is set when the sale committed but a secondary step
	// (cuenta corriente posting) failed.
	Advertencia *string `json:"advertencia,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
