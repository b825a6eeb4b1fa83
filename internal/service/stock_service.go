package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"updatepos/internal/dto"
	"updatepos/internal/model"
	"updatepos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Catalog cache keys — one per product family. The ledger is the only writer
// and the only invalidator: callers never touch catalog state directly.
const (
	cacheComputadoras = "catalogo:computadoras"
	cacheCelulares    = "catalogo:celulares"
	cacheOtros        = "catalogo:otros"
	cacheTTL          = 5 * time.Minute
)

// maxReintentosDescuento bounds the optimistic-concurrency retry loop on
// split-stock decrements before reporting the product as exhausted.
const maxReintentosDescuento = 3

// ResultadoDescuento describes what a stock decrement did.
type ResultadoDescuento struct {
	// Prestamo is set when part of the quantity was taken from the
	// non-preferred branch; SucursalPrestamo names that branch.
	Prestamo          bool
	SucursalPrestamo  string
	CantidadPrestada  int
	ProductoEliminado bool
	Descripcion       string
	Serial            *string
	Categoria         *string
}

// StockService is the single source of truth for "can N units be sold" and
// "reduce by N units", across the three product families.
type StockService interface {
	Disponibilidad(ctx context.Context, tipo string, id uuid.UUID) (int, error)

	// DescontarTx reduces stock inside a sale transaction. Dispatches on the
	// product family: unique units flip Disponible, split-stock products run
	// the branch-fallback algorithm. Every success records a MovimientoStock
	// in the same transaction.
	DescontarTx(ctx context.Context, tx *gorm.DB, tipo string, productoID uuid.UUID, cantidad int, sucursalPreferida string, ventaID uuid.UUID) (*ResultadoDescuento, error)

	// AjustarStockOtro applies a manual branch-level adjustment and records
	// the movement. Positive delta = entrada, negative = salida.
	AjustarStockOtro(ctx context.Context, id uuid.UUID, req dto.AjustarStockOtroRequest) (*dto.OtroResponse, error)

	ListarComputadoras(ctx context.Context, filter dto.CatalogoFilter) ([]dto.ComputadoraResponse, error)
	ListarCelulares(ctx context.Context, filter dto.CatalogoFilter) ([]dto.CelularResponse, error)
	ListarOtros(ctx context.Context, filter dto.CatalogoFilter) ([]dto.OtroResponse, error)

	// InvalidarCatalogos drops the cached listings after any mutation.
	InvalidarCatalogos(ctx context.Context)

	ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error)
}

type stockService struct {
	computadoras repository.ComputadoraRepository
	celulares    repository.CelularRepository
	otros        repository.OtroRepository
	movimientos  repository.MovimientoStockRepository
	rdb          *redis.Client // nil in unit tests — cache becomes a no-op
}

func NewStockService(
	computadoras repository.ComputadoraRepository,
	celulares repository.CelularRepository,
	otros repository.OtroRepository,
	movimientos repository.MovimientoStockRepository,
	rdb *redis.Client,
) StockService {
	return &stockService{
		computadoras: computadoras,
		celulares:    celulares,
		otros:        otros,
		movimientos:  movimientos,
		rdb:          rdb,
	}
}

// ── Disponibilidad ────────────────────────────────────────────────────────────

func (s *stockService) Disponibilidad(ctx context.Context, tipo string, id uuid.UUID) (int, error) {
	switch tipo {
	case model.TipoComputadora:
		c, err := s.computadoras.FindByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if c.Disponible {
			return 1, nil
		}
		return 0, nil
	case model.TipoCelular:
		c, err := s.celulares.FindByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if c.Disponible {
			return 1, nil
		}
		return 0, nil
	case model.TipoOtro:
		o, err := s.otros.FindByID(ctx, id)
		if err != nil {
			// A deleted product no longer appears in any availability query.
			return 0, err
		}
		return o.StockTotal(), nil
	default:
		return 0, fmt.Errorf("tipo de producto desconocido: %q", tipo)
	}
}

// ── DescontarTx ───────────────────────────────────────────────────────────────

func (s *stockService) DescontarTx(ctx context.Context, tx *gorm.DB, tipo string, productoID uuid.UUID, cantidad int, sucursalPreferida string, ventaID uuid.UUID) (*ResultadoDescuento, error) {
	switch tipo {
	case model.TipoComputadora:
		return s.descontarComputadora(ctx, tx, productoID, cantidad, ventaID)
	case model.TipoCelular:
		return s.descontarCelular(ctx, tx, productoID, cantidad, ventaID)
	case model.TipoOtro:
		return s.descontarOtro(ctx, tx, productoID, cantidad, sucursalPreferida, ventaID)
	default:
		return nil, fmt.Errorf("tipo de producto desconocido: %q", tipo)
	}
}

func (s *stockService) descontarComputadora(ctx context.Context, tx *gorm.DB, id uuid.UUID, cantidad int, ventaID uuid.UUID) (*ResultadoDescuento, error) {
	c, err := s.computadoras.FindByID(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Paso: "stock", Err: err}
	}
	if cantidad != 1 {
		return nil, ErrCantidadInvalida
	}

	filas, err := s.computadoras.MarcarVendidaTx(tx, id)
	if err != nil {
		return nil, &PersistenceError{Paso: "stock", Err: err}
	}
	if filas == 0 {
		return nil, &StockInsuficienteError{
			TipoProducto: model.TipoComputadora,
			Producto:     c.Modelo + " " + c.Serial,
			Solicitado:   1,
			Disponible:   0,
		}
	}

	if err := s.registrarMovimientoTx(tx, model.TipoComputadora, id, -1, &c.Sucursal, ventaID); err != nil {
		return nil, err
	}
	return &ResultadoDescuento{Descripcion: descripcionComputadora(c), Serial: &c.Serial}, nil
}

func (s *stockService) descontarCelular(ctx context.Context, tx *gorm.DB, id uuid.UUID, cantidad int, ventaID uuid.UUID) (*ResultadoDescuento, error) {
	c, err := s.celulares.FindByID(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Paso: "stock", Err: err}
	}
	if cantidad != 1 {
		return nil, ErrCantidadInvalida
	}

	filas, err := s.celulares.MarcarVendidaTx(tx, id)
	if err != nil {
		return nil, &PersistenceError{Paso: "stock", Err: err}
	}
	if filas == 0 {
		return nil, &StockInsuficienteError{
			TipoProducto: model.TipoCelular,
			Producto:     c.Marca + " " + c.Modelo + " " + c.Serial,
			Solicitado:   1,
			Disponible:   0,
		}
	}

	if err := s.registrarMovimientoTx(tx, model.TipoCelular, id, -1, &c.Sucursal, ventaID); err != nil {
		return nil, err
	}
	return &ResultadoDescuento{Descripcion: descripcionCelular(c), Serial: &c.Serial}, nil
}

// descontarOtro takes cantidad from the preferred branch first and borrows
// the shortfall from the other branch. The guarded UPDATE asserts the
// quantities read before it; a concurrent decrement forces a re-read, bounded
// by maxReintentosDescuento. A post-decrement total of zero hard-deletes the
// product from the catalog.
func (s *stockService) descontarOtro(ctx context.Context, tx *gorm.DB, id uuid.UUID, cantidad int, sucursalPreferida string, ventaID uuid.UUID) (*ResultadoDescuento, error) {
	for intento := 0; intento < maxReintentosDescuento; intento++ {
		o, err := s.otros.FindByIDTx(tx, id)
		if err != nil {
			return nil, &PersistenceError{Paso: "stock", Err: err}
		}

		preferido := o.StockEn(sucursalPreferida)
		otra := model.OtraSucursal(sucursalPreferida)
		resto := o.StockEn(otra)

		if preferido+resto < cantidad {
			return nil, &StockInsuficienteError{
				TipoProducto: model.TipoOtro,
				Producto:     o.Nombre,
				Solicitado:   cantidad,
				Disponible:   preferido + resto,
			}
		}

		tomaPreferida := cantidad
		prestado := 0
		if tomaPreferida > preferido {
			tomaPreferida = preferido
			prestado = cantidad - preferido
		}

		tomaLaPlata, tomaMitre := tomaPreferida, prestado
		if sucursalPreferida == model.SucursalMitre {
			tomaLaPlata, tomaMitre = prestado, tomaPreferida
		}

		filas, err := s.otros.DescontarStockTx(tx, id, tomaLaPlata, tomaMitre, o.StockLaPlata, o.StockMitre)
		if err != nil {
			return nil, &PersistenceError{Paso: "stock", Err: err}
		}
		if filas == 0 {
			// Lost the race against a concurrent checkout — re-read and retry.
			continue
		}

		res := &ResultadoDescuento{
			Descripcion: descripcionOtro(o),
			Serial:      o.Serial,
			Categoria:   &o.Categoria,
		}
		if prestado > 0 {
			res.Prestamo = true
			res.SucursalPrestamo = otra
			res.CantidadPrestada = prestado
		}

		if o.StockTotal()-cantidad == 0 {
			if err := s.otros.DeleteTx(tx, id); err != nil {
				return nil, &PersistenceError{Paso: "stock", Err: err}
			}
			res.ProductoEliminado = true
		}

		if err := s.registrarMovimientoTx(tx, model.TipoOtro, id, -cantidad, &sucursalPreferida, ventaID); err != nil {
			return nil, err
		}
		return res, nil
	}

	o, err := s.otros.FindByIDTx(tx, id)
	if err != nil {
		return nil, &PersistenceError{Paso: "stock", Err: err}
	}
	return nil, &StockInsuficienteError{
		TipoProducto: model.TipoOtro,
		Producto:     o.Nombre,
		Solicitado:   cantidad,
		Disponible:   o.StockTotal(),
	}
}

func (s *stockService) registrarMovimientoTx(tx *gorm.DB, tipoProducto string, productoID uuid.UUID, cantidad int, sucursal *string, ventaID uuid.UUID) error {
	ref := ventaID
	mov := &model.MovimientoStock{
		TipoProducto: tipoProducto,
		ProductoID:   productoID,
		Tipo:         "venta",
		Cantidad:     cantidad,
		Sucursal:     sucursal,
		Detalle:      fmt.Sprintf("Venta %s", ventaID),
		ReferenciaID: &ref,
	}
	if err := s.movimientos.CreateTx(tx, mov); err != nil {
		return &PersistenceError{Paso: "stock", Err: err}
	}
	return nil
}

// ── Ajuste manual ─────────────────────────────────────────────────────────────

func (s *stockService) AjustarStockOtro(ctx context.Context, id uuid.UUID, req dto.AjustarStockOtroRequest) (*dto.OtroResponse, error) {
	o, err := s.otros.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Delta < 0 && o.StockEn(req.Sucursal)+req.Delta < 0 {
		return nil, &StockInsuficienteError{
			TipoProducto: model.TipoOtro,
			Producto:     o.Nombre,
			Solicitado:   -req.Delta,
			Disponible:   o.StockEn(req.Sucursal),
		}
	}

	if err := s.otros.AjustarStock(ctx, id, req.Sucursal, req.Delta); err != nil {
		return nil, &PersistenceError{Paso: "stock", Err: err}
	}
	sucursal := req.Sucursal
	mov := &model.MovimientoStock{
		TipoProducto: model.TipoOtro,
		ProductoID:   id,
		Tipo:         "ajuste_manual",
		Cantidad:     req.Delta,
		Sucursal:     &sucursal,
		Detalle:      req.Motivo,
	}
	if err := s.movimientos.Create(ctx, mov); err != nil {
		return nil, &PersistenceError{Paso: "stock", Err: err}
	}
	s.InvalidarCatalogos(ctx)

	actualizado, err := s.otros.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := otroToResponse(actualizado)
	return &resp, nil
}

// ── Catálogos (read-through cache) ───────────────────────────────────────────

// listarConCache serves the unfiltered default listing from Redis when
// possible; filtered queries always hit the database.
func listarConCache[T any](ctx context.Context, rdb *redis.Client, key string, filter dto.CatalogoFilter, query func() ([]T, error)) ([]T, error) {
	filtrado := filter.Busqueda != "" || filter.Categoria != "" || filter.Sucursal != "" || filter.Disponible != ""
	if rdb == nil || filtrado {
		return query()
	}

	if data, err := rdb.Get(ctx, key).Bytes(); err == nil {
		var cached []T
		if json.Unmarshal(data, &cached) == nil {
			return cached, nil
		}
	}

	result, err := query()
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(result); err == nil {
		if err := rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
	}
	return result, nil
}

func (s *stockService) ListarComputadoras(ctx context.Context, filter dto.CatalogoFilter) ([]dto.ComputadoraResponse, error) {
	return listarConCache(ctx, s.rdb, cacheComputadoras, filter, func() ([]dto.ComputadoraResponse, error) {
		computadoras, err := s.computadoras.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		resp := make([]dto.ComputadoraResponse, len(computadoras))
		for i := range computadoras {
			resp[i] = computadoraToResponse(&computadoras[i])
		}
		return resp, nil
	})
}

func (s *stockService) ListarCelulares(ctx context.Context, filter dto.CatalogoFilter) ([]dto.CelularResponse, error) {
	return listarConCache(ctx, s.rdb, cacheCelulares, filter, func() ([]dto.CelularResponse, error) {
		celulares, err := s.celulares.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		resp := make([]dto.CelularResponse, len(celulares))
		for i := range celulares {
			resp[i] = celularToResponse(&celulares[i])
		}
		return resp, nil
	})
}

func (s *stockService) ListarOtros(ctx context.Context, filter dto.CatalogoFilter) ([]dto.OtroResponse, error) {
	return listarConCache(ctx, s.rdb, cacheOtros, filter, func() ([]dto.OtroResponse, error) {
		otros, err := s.otros.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		resp := make([]dto.OtroResponse, len(otros))
		for i := range otros {
			resp[i] = otroToResponse(&otros[i])
		}
		return resp, nil
	})
}

func (s *stockService) InvalidarCatalogos(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheComputadoras, cacheCelulares, cacheOtros).Err(); err != nil {
		log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func (s *stockService) ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	return s.movimientos.List(ctx, filter)
}

// ── Mapeo a DTOs ──────────────────────────────────────────────────────────────

func computadoraToResponse(c *model.Computadora) dto.ComputadoraResponse {
	return dto.ComputadoraResponse{
		ID:                c.ID.String(),
		Serial:            c.Serial,
		Modelo:            c.Modelo,
		Procesador:        c.Procesador,
		RAM:               c.RAM,
		SSD:               c.SSD,
		Pantalla:          c.Pantalla,
		PrecioCosto:       c.PrecioCosto,
		CostosAdicionales: c.CostosAdicionales,
		PrecioCostoTotal:  c.PrecioCostoTotal,
		PrecioVenta:       c.PrecioVenta,
		Sucursal:          c.Sucursal,
		Disponible:        c.Disponible,
		FotoURL:           c.FotoURL,
	}
}

func celularToResponse(c *model.Celular) dto.CelularResponse {
	return dto.CelularResponse{
		ID:               c.ID.String(),
		Serial:           c.Serial,
		Modelo:           c.Modelo,
		Marca:            c.Marca,
		Capacidad:        c.Capacidad,
		Color:            c.Color,
		BateriaPct:       c.BateriaPct,
		Estado:           c.Estado,
		PrecioCostoTotal: c.PrecioCostoTotal,
		PrecioVenta:      c.PrecioVenta,
		Sucursal:         c.Sucursal,
		Disponible:       c.Disponible,
		FotoURL:          c.FotoURL,
	}
}

func otroToResponse(o *model.Otro) dto.OtroResponse {
	return dto.OtroResponse{
		ID:           o.ID.String(),
		Nombre:       o.Nombre,
		Categoria:    o.Categoria,
		Serial:       o.Serial,
		PrecioCosto:  o.PrecioCosto,
		PrecioVenta:  o.PrecioVenta,
		StockLaPlata: o.StockLaPlata,
		StockMitre:   o.StockMitre,
		StockTotal:   o.StockTotal(),
		FotoURL:      o.FotoURL,
	}
}
