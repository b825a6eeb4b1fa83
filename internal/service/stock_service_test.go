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

func newStockFixture() (*stubComputadoraRepo, *stubCelularRepo, *stubOtroRepo, *stubMovimientoStockRepo, StockService) {
	compus := newStubComputadoraRepo()
	celus := newStubCelularRepo()
	otros := newStubOtroRepo()
	movs := &stubMovimientoStockRepo{}
	svc := NewStockService(compus, celus, otros, movs, nil)
	return compus, celus, otros, movs, svc
}

func nuevaComputadora(repo *stubComputadoraRepo) *model.Computadora {
	c := &model.Computadora{
		Serial:           "NB-001",
		Modelo:           "ThinkPad T14",
		Procesador:       "i5-1335U",
		RAM:              "16GB",
		SSD:              "512GB",
		PrecioCosto:      decimal.NewFromInt(500),
		PrecioCostoTotal: decimal.NewFromInt(520),
		PrecioVenta:      decimal.NewFromInt(800),
		Sucursal:         model.SucursalLaPlata,
		Disponible:       true,
	}
	_ = repo.Create(context.Background(), c)
	return c
}

func nuevoOtro(repo *stubOtroRepo, laPlata, mitre int) *model.Otro {
	o := &model.Otro{
		Nombre:       "Mouse Logitech M170",
		Categoria:    "perifericos",
		PrecioCosto:  decimal.NewFromInt(10),
		PrecioVenta:  decimal.NewFromInt(18),
		StockLaPlata: laPlata,
		StockMitre:   mitre,
	}
	_ = repo.Create(context.Background(), o)
	return o
}

func TestDescontarComputadoraUnaVez(t *testing.T) {
	compus, _, _, movs, svc := newStockFixture()
	c := nuevaComputadora(compus)
	ventaID := uuid.New()

	res, err := svc.DescontarTx(context.Background(), nil, model.TipoComputadora, c.ID, 1, model.SucursalLaPlata, ventaID)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Prestamo)
	assert.Contains(t, res.Descripcion, "ThinkPad T14")
	assert.Contains(t, res.Descripcion, "NB-001")

	// The unit left the sellable pool but the row survives.
	guardada, err := compus.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, guardada.Disponible)

	require.Len(t, movs.movimientos, 1)
	assert.Equal(t, -1, movs.movimientos[0].Cantidad)
	assert.Equal(t, "venta", movs.movimientos[0].Tipo)
}

func TestDescontarComputadoraYaVendida(t *testing.T) {
	compus, _, _, _, svc := newStockFixture()
	c := nuevaComputadora(compus)

	_, err := svc.DescontarTx(context.Background(), nil, model.TipoComputadora, c.ID, 1, model.SucursalLaPlata, uuid.New())
	require.NoError(t, err)

	// Second sale of the same serial must fail.
	_, err = svc.DescontarTx(context.Background(), nil, model.TipoComputadora, c.ID, 1, model.SucursalLaPlata, uuid.New())
	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Solicitado)
	assert.Equal(t, 0, stockErr.Disponible)
}

func TestDescontarOtroSucursalPreferida(t *testing.T) {
	_, _, otros, _, svc := newStockFixture()
	o := nuevoOtro(otros, 5, 3)

	res, err := svc.DescontarTx(context.Background(), nil, model.TipoOtro, o.ID, 2, model.SucursalLaPlata, uuid.New())
	require.NoError(t, err)
	assert.False(t, res.Prestamo)

	guardado, _ := otros.FindByID(context.Background(), o.ID)
	assert.Equal(t, 3, guardado.StockLaPlata)
	assert.Equal(t, 3, guardado.StockMitre)
}

func TestDescontarOtroConPrestamo(t *testing.T) {
	_, _, otros, _, svc := newStockFixture()
	o := nuevoOtro(otros, 1, 3)

	// Branch asks for 3 with only 1 local: 1 local + 2 borrowed from mitre.
	res, err := svc.DescontarTx(context.Background(), nil, model.TipoOtro, o.ID, 3, model.SucursalLaPlata, uuid.New())
	require.NoError(t, err)
	assert.True(t, res.Prestamo)
	assert.Equal(t, model.SucursalMitre, res.SucursalPrestamo)
	assert.Equal(t, 2, res.CantidadPrestada)

	guardado, _ := otros.FindByID(context.Background(), o.ID)
	assert.Equal(t, 0, guardado.StockLaPlata)
	assert.Equal(t, 1, guardado.StockMitre)
}

func TestDescontarOtroAgotadoEliminaProducto(t *testing.T) {
	_, _, otros, _, svc := newStockFixture()
	o := nuevoOtro(otros, 1, 1)

	res, err := svc.DescontarTx(context.Background(), nil, model.TipoOtro, o.ID, 2, model.SucursalMitre, uuid.New())
	require.NoError(t, err)
	assert.True(t, res.ProductoEliminado)

	_, err = otros.FindByID(context.Background(), o.ID)
	assert.Error(t, err)
}

func TestDescontarOtroStockInsuficiente(t *testing.T) {
	_, _, otros, _, svc := newStockFixture()
	o := nuevoOtro(otros, 1, 1)

	_, err := svc.DescontarTx(context.Background(), nil, model.TipoOtro, o.ID, 5, model.SucursalLaPlata, uuid.New())
	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Solicitado)
	assert.Equal(t, 2, stockErr.Disponible)
	assert.Equal(t, 3, stockErr.Faltante())

	// Nothing was decremented.
	guardado, _ := otros.FindByID(context.Background(), o.ID)
	assert.Equal(t, 2, guardado.StockTotal())
}

func TestDescontarOtroReintentaTrasCarrera(t *testing.T) {
	_, _, otros, _, svc := newStockFixture()
	o := nuevoOtro(otros, 5, 0)
	otros.carrerasPendientes = 1

	// First guarded update loses against a concurrent checkout that takes one
	// unit; the re-read sees 4 and succeeds.
	res, err := svc.DescontarTx(context.Background(), nil, model.TipoOtro, o.ID, 2, model.SucursalLaPlata, uuid.New())
	require.NoError(t, err)
	assert.False(t, res.Prestamo)

	guardado, _ := otros.FindByID(context.Background(), o.ID)
	assert.Equal(t, 2, guardado.StockLaPlata)
}

func TestDescontarOtroAgotaReintentos(t *testing.T) {
	_, _, otros, _, svc := newStockFixture()
	o := nuevoOtro(otros, 10, 0)
	otros.carrerasPendientes = maxReintentosDescuento

	_, err := svc.DescontarTx(context.Background(), nil, model.TipoOtro, o.ID, 1, model.SucursalLaPlata, uuid.New())
	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
}

func TestDescontarTipoDesconocido(t *testing.T) {
	_, _, _, _, svc := newStockFixture()
	_, err := svc.DescontarTx(context.Background(), nil, "consola", uuid.New(), 1, model.SucursalLaPlata, uuid.New())
	assert.Error(t, err)
}

func TestAjustarStockOtroEntrada(t *testing.T) {
	_, _, otros, movs, svc := newStockFixture()
	o := nuevoOtro(otros, 2, 0)

	resp, err := svc.AjustarStockOtro(context.Background(), o.ID, dto.AjustarStockOtroRequest{
		Sucursal: model.SucursalMitre,
		Delta:    4,
		Motivo:   "recuento fisico",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.StockMitre)
	assert.Equal(t, 6, resp.StockTotal)

	require.Len(t, movs.movimientos, 1)
	assert.Equal(t, "ajuste_manual", movs.movimientos[0].Tipo)
	assert.Equal(t, 4, movs.movimientos[0].Cantidad)
	assert.Equal(t, "recuento fisico", movs.movimientos[0].Detalle)
}

func TestAjustarStockOtroNoDejaNegativo(t *testing.T) {
	_, _, otros, _, svc := newStockFixture()
	o := nuevoOtro(otros, 2, 0)

	_, err := svc.AjustarStockOtro(context.Background(), o.ID, dto.AjustarStockOtroRequest{
		Sucursal: model.SucursalLaPlata,
		Delta:    -3,
		Motivo:   "rotura",
	})
	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)

	guardado, _ := otros.FindByID(context.Background(), o.ID)
	assert.Equal(t, 2, guardado.StockLaPlata)
}

func TestDisponibilidadOtro(t *testing.T) {
	_, _, otros, _, svc := newStockFixture()
	o := nuevoOtro(otros, 2, 3)

	disp, err := svc.Disponibilidad(context.Background(), model.TipoOtro, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, disp)
}

func TestDisponibilidadComputadoraVendida(t *testing.T) {
	compus, _, _, _, svc := newStockFixture()
	c := nuevaComputadora(compus)
	c.Disponible = false

	disp, err := svc.Disponibilidad(context.Background(), model.TipoComputadora, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, disp)
}

func TestDescontarOtroInexistente(t *testing.T) {
	_, _, _, _, svc := newStockFixture()
	_, err := svc.DescontarTx(context.Background(), nil, model.TipoOtro, uuid.New(), 1, model.SucursalLaPlata, uuid.New())
	var persErr *PersistenceError
	require.ErrorAs(t, err, &persErr)
	assert.True(t, errors.Is(err, errNoEncontrado))
}
