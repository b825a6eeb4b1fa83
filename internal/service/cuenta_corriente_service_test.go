package service

import (
	"context"
	"testing"

	"updatepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrarDeudaCreaMovimientoPendiente(t *testing.T) {
	clientes := newStubClienteRepo()
	cuenta := &stubCuentaRepo{}
	svc := NewCuentaCorrienteService(cuenta, clientes)

	cliente := &model.Cliente{Nombre: "Marcos", Apellido: "Ruiz"}
	require.NoError(t, clientes.Create(context.Background(), cliente))

	ventaID := uuid.New()
	mov, err := svc.RegistrarDeuda(context.Background(), cliente.ID, ventaID, decimal.NewFromInt(300), "Venta V-20260901-120000-AB12")
	require.NoError(t, err)
	assert.Equal(t, "debe", mov.Tipo)
	assert.Equal(t, "pendiente", mov.Estado)
	require.NotNil(t, mov.VentaID)
	assert.Equal(t, ventaID.String(), *mov.VentaID)
}

func TestSaldoClienteAgregaPendientes(t *testing.T) {
	clientes := newStubClienteRepo()
	cuenta := &stubCuentaRepo{}
	svc := NewCuentaCorrienteService(cuenta, clientes)

	cliente := &model.Cliente{Nombre: "Marcos", Apellido: "Ruiz"}
	require.NoError(t, clientes.Create(context.Background(), cliente))

	_, err := svc.RegistrarDeuda(context.Background(), cliente.ID, uuid.New(), decimal.NewFromInt(300), "Venta A")
	require.NoError(t, err)
	_, err = svc.RegistrarDeuda(context.Background(), cliente.ID, uuid.New(), decimal.NewFromInt(150), "Venta B")
	require.NoError(t, err)

	// A settled entry no longer counts toward the balance.
	cuenta.movimientos[1].Estado = "pagado"

	saldo, err := svc.SaldoCliente(context.Background(), cliente.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Saldo.Equal(decimal.NewFromInt(300)), "saldo %s", saldo.Saldo)
	assert.Len(t, saldo.Movimientos, 2)
	assert.Equal(t, "Marcos Ruiz", saldo.Cliente)
}

func TestSaldoClienteInexistente(t *testing.T) {
	svc := NewCuentaCorrienteService(&stubCuentaRepo{}, newStubClienteRepo())
	_, err := svc.SaldoCliente(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrClienteNoEncontrado)
}
