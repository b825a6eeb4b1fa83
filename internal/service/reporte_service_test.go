package service

import (
	"context"
	"testing"

	"updatepos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumenDiario(t *testing.T) {
	ventas := &stubVentaRepo{}
	ventas.ventas = append(ventas.ventas,
		&model.Venta{
			Total:         decimal.NewFromInt(836),
			TotalCosto:    decimal.NewFromInt(540),
			TotalGanancia: decimal.NewFromInt(296),
			Pagos: []model.VentaPago{
				{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(500)},
				{Metodo: model.PagoCuentaCorriente, Monto: decimal.NewFromInt(336)},
			},
		},
		&model.Venta{
			Total:         decimal.NewFromInt(100),
			TotalCosto:    decimal.NewFromInt(60),
			TotalGanancia: decimal.NewFromInt(40),
			Pagos: []model.VentaPago{
				{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(100)},
			},
		},
	)
	svc := NewReporteService(ventas)

	resumen, err := svc.ResumenDiario(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 2, resumen.CantidadVentas)
	assert.True(t, resumen.TotalVendido.Equal(decimal.NewFromInt(936)))
	assert.True(t, resumen.TotalGanancia.Equal(decimal.NewFromInt(336)))
	assert.True(t, resumen.PorMetodo[model.PagoEfectivo].Equal(decimal.NewFromInt(600)))
	assert.True(t, resumen.PorMetodo[model.PagoCuentaCorriente].Equal(decimal.NewFromInt(336)))
}

func TestResumenDiarioSinVentas(t *testing.T) {
	svc := NewReporteService(&stubVentaRepo{})
	resumen, err := svc.ResumenDiario(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 0, resumen.CantidadVentas)
	assert.True(t, resumen.TotalVendido.IsZero())
}
