package service

import (
	"errors"
	"fmt"
)

// Validation failures: surfaced before any persistence call, nothing committed.
var (
	ErrCarritoVacio        = errors.New("el carrito no tiene items")
	ErrClienteRequerido    = errors.New("debe seleccionar un cliente o marcar consumidor final")
	ErrCantidadInvalida    = errors.New("computadoras y celulares se venden de a una unidad")
	ErrPrecioNegativo      = errors.New("el precio unitario no puede ser negativo")
	ErrPagosNoCoinciden    = errors.New("la suma de los pagos no coincide con el total de la venta")
	ErrCuentaSinCliente    = errors.New("el pago en cuenta corriente requiere un cliente")
	ErrProductoInvalido    = errors.New("el item debe referenciar un producto o definir uno personalizado")
	ErrVentaNoEncontrada   = errors.New("venta no encontrada")
	ErrClienteNoEncontrado = errors.New("cliente no encontrado")
)

// StockInsuficienteError is a hard stop for a line item: neither branch (nor
// both combined) can satisfy the requested quantity. The enclosing checkout
// transaction rolls back, reverting any prior line items' decrements.
type StockInsuficienteError struct {
	TipoProducto string
	Producto     string
	Solicitado   int
	Disponible   int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s %q: solicitado %d, disponible %d (faltan %d)",
		e.TipoProducto, e.Producto, e.Solicitado, e.Disponible, e.Faltante())
}

// Faltante is the combined shortfall across both branches.
func (e *StockInsuficienteError) Faltante() int { return e.Solicitado - e.Disponible }

// PersistenceError wraps a failed write, including a transaction-number
// uniqueness collision. It is never retried automatically.
type PersistenceError struct {
	Paso string // "numero" | "venta" | "stock" | "cuenta_corriente"
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("error de persistencia en %s: %v", e.Paso, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
