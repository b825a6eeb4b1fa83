// Package pricing holds the side-effect-free cost and margin arithmetic used
// both at checkout time (to freeze cost/margin into sale items) and by the
// reporting views.
package pricing

import (
	"github.com/shopspring/decimal"

	"updatepos/internal/model"
)

var cien = decimal.NewFromInt(100)

// Margen is the result of MargenLinea for one cart line.
type Margen struct {
	Total       decimal.Decimal
	Ganancia    decimal.Decimal
	GananciaPct decimal.Decimal
}

// CostoComputadora returns the frozen per-unit cost basis of a notebook.
// Unique units carry the pre-aggregated PrecioCostoTotal.
func CostoComputadora(c *model.Computadora) decimal.Decimal {
	return c.PrecioCostoTotal
}

// CostoCelular returns the frozen per-unit cost basis of a phone.
func CostoCelular(c *model.Celular) decimal.Decimal {
	return c.PrecioCostoTotal
}

// CostoOtro returns the per-unit cost basis of a split-stock accessory:
// purchase price plus additional costs.
func CostoOtro(o *model.Otro) decimal.Decimal {
	return o.PrecioCosto.Add(o.CostosAdicionales)
}

// MargenLinea computes total, margin and margin percentage for one line.
// A zero (or negative) cost basis reports 0% — never a division by zero.
func MargenLinea(precioUnitario, costoUnitario decimal.Decimal, cantidad int) Margen {
	qty := decimal.NewFromInt(int64(cantidad))
	total := precioUnitario.Mul(qty)
	costoTotal := costoUnitario.Mul(qty)
	ganancia := total.Sub(costoTotal)

	pct := decimal.Zero
	if costoTotal.IsPositive() {
		pct = ganancia.Div(costoTotal).Mul(cien)
	}
	return Margen{Total: total, Ganancia: ganancia, GananciaPct: pct}
}
