package service

import (
	"context"
	"errors"
	"testing"

	"updatepos/internal/dto"
	"updatepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaFixture struct {
	compus   *stubComputadoraRepo
	celus    *stubCelularRepo
	otros    *stubOtroRepo
	movs     *stubMovimientoStockRepo
	ventas   *stubVentaRepo
	clientes *stubClienteRepo
	cuenta   *stubCuentaRepo
	svc      VentaService
}

func newVentaFixture() *ventaFixture {
	f := &ventaFixture{
		compus:   newStubComputadoraRepo(),
		celus:    newStubCelularRepo(),
		otros:    newStubOtroRepo(),
		movs:     &stubMovimientoStockRepo{},
		ventas:   &stubVentaRepo{},
		clientes: newStubClienteRepo(),
		cuenta:   &stubCuentaRepo{},
	}
	stock := NewStockService(f.compus, f.celus, f.otros, f.movs, nil)
	cuentaSvc := NewCuentaCorrienteService(f.cuenta, f.clientes)
	f.svc = NewVentaService(f.ventas, stock, cuentaSvc, f.compus, f.celus, f.otros, f.clientes, nil)
	return f
}

func (f *ventaFixture) conCliente(t *testing.T) *model.Cliente {
	t.Helper()
	c := &model.Cliente{Nombre: "Julieta", Apellido: "Paz"}
	require.NoError(t, f.clientes.Create(context.Background(), c))
	return c
}

func strPtr(s string) *string { return &s }

func TestRegistrarVentaMixtaConCuentaCorriente(t *testing.T) {
	f := newVentaFixture()
	cliente := f.conCliente(t)
	compu := nuevaComputadora(f.compus)
	otro := nuevoOtro(f.otros, 5, 0)

	clienteID := cliente.ID.String()
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoComputadora, ProductoID: compu.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(800)},
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 2, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos: []dto.PagoRequest{
			{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(500)},
			{Metodo: model.PagoCuentaCorriente, Monto: decimal.NewFromInt(336)},
		},
		ClienteID: &clienteID,
		Sucursal:  model.SucursalLaPlata,
	}

	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "Vendedor Uno", req)
	require.NoError(t, err)

	// Totals: 800 + 2*18 = 836; costs: 520 + 2*10 = 540; margin 296.
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(836)), "total %s", resp.Total)
	assert.True(t, resp.TotalCosto.Equal(decimal.NewFromInt(540)))
	assert.True(t, resp.TotalGanancia.Equal(decimal.NewFromInt(296)))
	assert.Equal(t, "Julieta Paz", resp.Cliente)
	assert.NotEmpty(t, resp.Numero)
	assert.Nil(t, resp.Advertencia)
	require.Len(t, resp.Items, 2)
	assert.Contains(t, resp.Items[0].Descripcion, "ThinkPad")

	// Stock side effects
	guardada, _ := f.compus.FindByID(context.Background(), compu.ID)
	assert.False(t, guardada.Disponible)
	guardado, _ := f.otros.FindByID(context.Background(), otro.ID)
	assert.Equal(t, 3, guardado.StockLaPlata)

	// Store-credit portion posted as pending debt
	saldo, _ := f.cuenta.SaldoCliente(context.Background(), cliente.ID)
	assert.True(t, saldo.Equal(decimal.NewFromInt(336)))
	require.Len(t, f.cuenta.movimientos, 1)
	assert.Equal(t, "debe", f.cuenta.movimientos[0].Tipo)
	assert.Equal(t, "pendiente", f.cuenta.movimientos[0].Estado)
}

func TestRegistrarVentaConsumidorFinal(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 3, 0)

	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(18)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "Vendedor Uno", req)
	require.NoError(t, err)
	assert.Equal(t, "Consumidor Final", resp.Cliente)
}

func TestRegistrarVentaCarritoVacio(t *testing.T) {
	f := newVentaFixture()
	req := dto.RegistrarVentaRequest{
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.Zero}},
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	assert.ErrorIs(t, err, ErrCarritoVacio)
}

func TestRegistrarVentaSinClienteNiConsumidorFinal(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 3, 0)
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:    []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(18)}},
		Sucursal: model.SucursalLaPlata,
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	assert.ErrorIs(t, err, ErrClienteRequerido)
}

func TestRegistrarVentaCantidadInvalidaUnidadUnica(t *testing.T) {
	f := newVentaFixture()
	compu := nuevaComputadora(f.compus)
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoComputadora, ProductoID: compu.ID.String(), Cantidad: 2, PrecioUnitario: decimal.NewFromInt(800)},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(1600)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	assert.ErrorIs(t, err, ErrCantidadInvalida)

	// Pre-flight failure: nothing persisted.
	guardada, _ := f.compus.FindByID(context.Background(), compu.ID)
	assert.True(t, guardada.Disponible)
	assert.Empty(t, f.ventas.ventas)
}

func TestRegistrarVentaPagosNoCoinciden(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 3, 0)
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 2, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(30)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	assert.ErrorIs(t, err, ErrPagosNoCoinciden)
}

func TestRegistrarVentaCuentaCorrienteSinCliente(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 3, 0)
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoCuentaCorriente, Monto: decimal.NewFromInt(18)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	assert.ErrorIs(t, err, ErrCuentaSinCliente)
}

func TestRegistrarVentaPrecioNegativo(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 3, 0)
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(-5)},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(-5)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	assert.ErrorIs(t, err, ErrPrecioNegativo)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 1, 0)
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 4, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(72)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Faltante())
}

func TestRegistrarVentaPrestamoEntreSucursales(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 1, 4)
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 3, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoTarjeta, Monto: decimal.NewFromInt(54)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	require.NoError(t, err)
	require.Len(t, resp.Prestamos, 1)
	assert.Equal(t, model.SucursalMitre, resp.Prestamos[0].Sucursal)
	assert.Equal(t, 2, resp.Prestamos[0].Cantidad)
}

func TestRegistrarVentaProductoPersonalizado(t *testing.T) {
	f := newVentaFixture()
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{
				TipoProducto:   model.TipoOtro,
				Cantidad:       1,
				PrecioUnitario: decimal.NewFromInt(40),
				Personalizado: &dto.ProductoPersonalizadoRequest{
					Nombre:      "Cable HDMI 3m",
					Categoria:   "cables",
					PrecioCosto: decimal.NewFromInt(15),
				},
			},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(40)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Contains(t, resp.Items[0].Descripcion, "Cable HDMI 3m")
	assert.True(t, resp.TotalGanancia.Equal(decimal.NewFromInt(25)))

	// The ad-hoc row was created and consumed inside the same checkout.
	assert.Empty(t, f.otros.items)
}

func TestRegistrarVentaNumeroColisionNoSeReintenta(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 3, 0)
	f.ventas.failCreate = errors.New("duplicate key value violates unique constraint \"uni_ventas_numero\"")

	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(18)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	var persErr *PersistenceError
	require.ErrorAs(t, err, &persErr)
	assert.Equal(t, "venta", persErr.Paso)
	assert.Empty(t, f.ventas.ventas)
}

func TestRegistrarVentaDeudaFallaConAdvertencia(t *testing.T) {
	f := newVentaFixture()
	cliente := f.conCliente(t)
	otro := nuevoOtro(f.otros, 3, 0)
	f.cuenta.failCreate = errors.New("connection reset")

	clienteID := cliente.ID.String()
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:     []dto.PagoRequest{{Metodo: model.PagoCuentaCorriente, Monto: decimal.NewFromInt(18)}},
		ClienteID: &clienteID,
		Sucursal:  model.SucursalLaPlata,
	}
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)

	// The sale stands; the failed posting surfaces as a warning only.
	require.NoError(t, err)
	require.NotNil(t, resp.Advertencia)
	assert.Contains(t, *resp.Advertencia, "cuenta corriente")
	require.Len(t, f.ventas.ventas, 1)
	guardado, _ := f.otros.FindByID(context.Background(), otro.ID)
	assert.Equal(t, 2, guardado.StockLaPlata)
}

func TestRegistrarVentaDescripcionOverride(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 3, 0)
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{
				TipoProducto:   model.TipoOtro,
				ProductoID:     otro.ID.String(),
				Cantidad:       1,
				PrecioUnitario: decimal.NewFromInt(18),
				Descripcion:    strPtr("Mouse inalambrico (promo)"),
			},
		},
		Pagos:           []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(18)}},
		ConsumidorFinal: true,
		Sucursal:        model.SucursalLaPlata,
	}
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	require.NoError(t, err)
	assert.Equal(t, "Mouse inalambrico (promo)", resp.Items[0].Descripcion)
}

func TestObtenerVentaInexistente(t *testing.T) {
	f := newVentaFixture()
	_, err := f.svc.ObtenerVenta(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrVentaNoEncontrada)
}

func TestRegistrarVentaClienteInexistente(t *testing.T) {
	f := newVentaFixture()
	otro := nuevoOtro(f.otros, 3, 0)
	clienteID := uuid.NewString()
	req := dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{TipoProducto: model.TipoOtro, ProductoID: otro.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(18)},
		},
		Pagos:     []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: decimal.NewFromInt(18)}},
		ClienteID: &clienteID,
		Sucursal:  model.SucursalLaPlata,
	}
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), "V", req)
	assert.ErrorIs(t, err, ErrClienteNoEncontrado)
}
