package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=100"`
	Apellido string  `json:"apellido" validate:"omitempty,max=100"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Dni      *string `json:"dni"`
}

type ActualizarClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Apellido *string `json:"apellido"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Dni      *string `json:"dni"`
}

type ClienteResponse struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	Apellido string  `json:"apellido"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"`
	Dni      *string `json:"dni"`
}

// ─── Cuenta corriente ────────────────────────────────────────────────────────

type MovimientoCuentaResponse struct {
	ID             string          `json:"id"`
	ClienteID      string          `json:"cliente_id"`
	VentaID        *string         `json:"venta_id,omitempty"`
	Tipo           string          `json:"tipo"`
	Monto          decimal.Decimal `json:"monto"`
	Concepto       string          `json:"concepto"`
	Estado         string          `json:"estado"`
	FechaOperacion string          `json:"fecha_operacion"`
}

type SaldoClienteResponse struct {
	ClienteID   string                     `json:"cliente_id"`
	Cliente     string                     `json:"cliente"`
	Saldo       decimal.Decimal            `json:"saldo"`
	Movimientos []MovimientoCuentaResponse `json:"movimientos"`
}
