package service

import (
	"context"
	"errors"

	"updatepos/internal/dto"
	"updatepos/internal/model"
	"updatepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. The services run with a nil *gorm.DB, so runTx
// invokes the transaction body directly and every ...Tx method receives a nil
// tx it can ignore.

var errNoEncontrado = errors.New("registro no encontrado")

// ── Computadoras ─────────────────────────────────────────────────────────────

type stubComputadoraRepo struct {
	items map[uuid.UUID]*model.Computadora
}

func newStubComputadoraRepo() *stubComputadoraRepo {
	return &stubComputadoraRepo{items: make(map[uuid.UUID]*model.Computadora)}
}

func (r *stubComputadoraRepo) Create(_ context.Context, c *model.Computadora) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.items[c.ID] = c
	return nil
}

func (r *stubComputadoraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Computadora, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, errNoEncontrado
	}
	copia := *c
	return &copia, nil
}

func (r *stubComputadoraRepo) FindBySerial(_ context.Context, serial string) (*model.Computadora, error) {
	for _, c := range r.items {
		if c.Serial == serial {
			copia := *c
			return &copia, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *stubComputadoraRepo) List(_ context.Context, _ dto.CatalogoFilter) ([]model.Computadora, error) {
	out := make([]model.Computadora, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubComputadoraRepo) Update(_ context.Context, c *model.Computadora) error {
	r.items[c.ID] = c
	return nil
}

func (r *stubComputadoraRepo) MarcarVendidaTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	c, ok := r.items[id]
	if !ok || !c.Disponible {
		return 0, nil
	}
	c.Disponible = false
	return 1, nil
}

var _ repository.ComputadoraRepository = (*stubComputadoraRepo)(nil)

// ── Celulares ────────────────────────────────────────────────────────────────

type stubCelularRepo struct {
	items map[uuid.UUID]*model.Celular
}

func newStubCelularRepo() *stubCelularRepo {
	return &stubCelularRepo{items: make(map[uuid.UUID]*model.Celular)}
}

func (r *stubCelularRepo) Create(_ context.Context, c *model.Celular) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.items[c.ID] = c
	return nil
}

func (r *stubCelularRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Celular, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, errNoEncontrado
	}
	copia := *c
	return &copia, nil
}

func (r *stubCelularRepo) FindBySerial(_ context.Context, serial string) (*model.Celular, error) {
	for _, c := range r.items {
		if c.Serial == serial {
			copia := *c
			return &copia, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *stubCelularRepo) List(_ context.Context, _ dto.CatalogoFilter) ([]model.Celular, error) {
	out := make([]model.Celular, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCelularRepo) Update(_ context.Context, c *model.Celular) error {
	r.items[c.ID] = c
	return nil
}

func (r *stubCelularRepo) MarcarVendidaTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	c, ok := r.items[id]
	if !ok || !c.Disponible {
		return 0, nil
	}
	c.Disponible = false
	return 1, nil
}

var _ repository.CelularRepository = (*stubCelularRepo)(nil)

// ── Otros ────────────────────────────────────────────────────────────────────

type stubOtroRepo struct {
	items map[uuid.UUID]*model.Otro
	// carrerasPendientes simulates a concurrent decrement: the guarded
	// update reports 0 affected rows this many times before succeeding.
	carrerasPendientes int
}

func newStubOtroRepo() *stubOtroRepo {
	return &stubOtroRepo{items: make(map[uuid.UUID]*model.Otro)}
}

func (r *stubOtroRepo) Create(_ context.Context, o *model.Otro) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.items[o.ID] = o
	return nil
}

func (r *stubOtroRepo) CreateTx(_ *gorm.DB, o *model.Otro) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.items[o.ID] = o
	return nil
}

func (r *stubOtroRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Otro, error) {
	return r.findByID(id)
}

func (r *stubOtroRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Otro, error) {
	return r.findByID(id)
}

func (r *stubOtroRepo) findByID(id uuid.UUID) (*model.Otro, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, errNoEncontrado
	}
	copia := *o
	return &copia, nil
}

func (r *stubOtroRepo) List(_ context.Context, _ dto.CatalogoFilter) ([]model.Otro, error) {
	out := make([]model.Otro, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOtroRepo) Update(_ context.Context, o *model.Otro) error {
	r.items[o.ID] = o
	return nil
}

func (r *stubOtroRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, tomaLaPlata, tomaMitre, prevLaPlata, prevMitre int) (int64, error) {
	o, ok := r.items[id]
	if !ok {
		return 0, nil
	}
	if r.carrerasPendientes > 0 {
		r.carrerasPendientes--
		// Another checkout got there first: mutate the row so the guard
		// also fails honestly against the stale read.
		if o.StockLaPlata > 0 {
			o.StockLaPlata--
		} else if o.StockMitre > 0 {
			o.StockMitre--
		}
		return 0, nil
	}
	if o.StockLaPlata != prevLaPlata || o.StockMitre != prevMitre {
		return 0, nil
	}
	o.StockLaPlata -= tomaLaPlata
	o.StockMitre -= tomaMitre
	return 1, nil
}

func (r *stubOtroRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubOtroRepo) AjustarStock(_ context.Context, id uuid.UUID, sucursal string, delta int) error {
	o, ok := r.items[id]
	if !ok {
		return errNoEncontrado
	}
	if sucursal == model.SucursalMitre {
		o.StockMitre += delta
	} else {
		o.StockLaPlata += delta
	}
	return nil
}

var _ repository.OtroRepository = (*stubOtroRepo)(nil)

// ── Movimientos de stock ─────────────────────────────────────────────────────

type stubMovimientoStockRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoStockRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoStockRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoStockRepo) List(_ context.Context, _ repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	return r.movimientos, int64(len(r.movimientos)), nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoStockRepo)(nil)

// ── Ventas ───────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas     []*model.Venta
	failCreate error
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas = append(r.ventas, v)
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListByFecha(_ context.Context, _ string) ([]model.Venta, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, nil
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Clientes ─────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	items map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{items: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.items[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, errNoEncontrado
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ string) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.items[c.ID] = c
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Cuenta corriente ─────────────────────────────────────────────────────────

type stubCuentaRepo struct {
	movimientos []model.MovimientoCuenta
	failCreate  error
}

func (r *stubCuentaRepo) Create(_ context.Context, m *model.MovimientoCuenta) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubCuentaRepo) ListByCliente(_ context.Context, clienteID uuid.UUID) ([]model.MovimientoCuenta, error) {
	var out []model.MovimientoCuenta
	for _, m := range r.movimientos {
		if m.ClienteID == clienteID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCuentaRepo) SaldoCliente(_ context.Context, clienteID uuid.UUID) (decimal.Decimal, error) {
	saldo := decimal.Zero
	for _, m := range r.movimientos {
		if m.ClienteID != clienteID || m.Estado != "pendiente" {
			continue
		}
		if m.Tipo == "debe" {
			saldo = saldo.Add(m.Monto)
		} else {
			saldo = saldo.Sub(m.Monto)
		}
	}
	return saldo, nil
}

var _ repository.CuentaCorrienteRepository = (*stubCuentaRepo)(nil)
