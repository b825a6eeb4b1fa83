package pricing

import (
	"testing"

	"updatepos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMargenLinea(t *testing.T) {
	m := MargenLinea(decimal.NewFromInt(100), decimal.NewFromInt(60), 2)
	assert.True(t, m.Total.Equal(decimal.NewFromInt(200)))
	assert.True(t, m.Ganancia.Equal(decimal.NewFromInt(80)))
	// 80 / 120 * 100
	assert.True(t, m.GananciaPct.Round(2).Equal(decimal.NewFromFloat(66.67)), "pct %s", m.GananciaPct)
}

func TestMargenLineaCostoCero(t *testing.T) {
	// Zero cost basis reports 0%, never a division by zero.
	m := MargenLinea(decimal.NewFromInt(50), decimal.Zero, 3)
	assert.True(t, m.Total.Equal(decimal.NewFromInt(150)))
	assert.True(t, m.Ganancia.Equal(decimal.NewFromInt(150)))
	assert.True(t, m.GananciaPct.IsZero())
}

func TestMargenLineaVentaBajoCosto(t *testing.T) {
	m := MargenLinea(decimal.NewFromInt(40), decimal.NewFromInt(50), 1)
	assert.True(t, m.Ganancia.Equal(decimal.NewFromInt(-10)))
	assert.True(t, m.GananciaPct.IsNegative())
}

func TestCostoOtroSumaAdicionales(t *testing.T) {
	o := &model.Otro{
		PrecioCosto:       decimal.NewFromInt(10),
		CostosAdicionales: decimal.NewFromFloat(2.5),
	}
	assert.True(t, CostoOtro(o).Equal(decimal.NewFromFloat(12.5)))
}

func TestCostoComputadoraUsaCostoTotal(t *testing.T) {
	c := &model.Computadora{
		PrecioCosto:       decimal.NewFromInt(500),
		CostosAdicionales: decimal.NewFromInt(20),
		PrecioCostoTotal:  decimal.NewFromInt(520),
	}
	assert.True(t, CostoComputadora(c).Equal(decimal.NewFromInt(520)))
}
