package service

import (
	"context"
	"fmt"

	"updatepos/internal/dto"
	"updatepos/internal/model"
	"updatepos/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService handles product intake and edits for the three families.
// Listings and stock movements live on StockService; this service always
// invalidates the catalog caches after a write.
type CatalogoService interface {
	CrearComputadora(ctx context.Context, req dto.CrearComputadoraRequest) (*dto.ComputadoraResponse, error)
	CrearCelular(ctx context.Context, req dto.CrearCelularRequest) (*dto.CelularResponse, error)
	CrearOtro(ctx context.Context, req dto.CrearOtroRequest) (*dto.OtroResponse, error)
	ObtenerComputadora(ctx context.Context, id uuid.UUID) (*dto.ComputadoraResponse, error)
	ObtenerCelular(ctx context.Context, id uuid.UUID) (*dto.CelularResponse, error)
	ObtenerOtro(ctx context.Context, id uuid.UUID) (*dto.OtroResponse, error)
}

type catalogoService struct {
	computadoras repository.ComputadoraRepository
	celulares    repository.CelularRepository
	otros        repository.OtroRepository
	movimientos  repository.MovimientoStockRepository
	stock        StockService
}

func NewCatalogoService(
	computadoras repository.ComputadoraRepository,
	celulares repository.CelularRepository,
	otros repository.OtroRepository,
	movimientos repository.MovimientoStockRepository,
	stock StockService,
) CatalogoService {
	return &catalogoService{
		computadoras: computadoras,
		celulares:    celulares,
		otros:        otros,
		movimientos:  movimientos,
		stock:        stock,
	}
}

func (s *catalogoService) CrearComputadora(ctx context.Context, req dto.CrearComputadoraRequest) (*dto.ComputadoraResponse, error) {
	c := model.Computadora{
		Serial:            req.Serial,
		Modelo:            req.Modelo,
		Procesador:        req.Procesador,
		RAM:               req.RAM,
		SSD:               req.SSD,
		Pantalla:          req.Pantalla,
		Idioma:            req.Idioma,
		Color:             req.Color,
		PrecioCosto:       req.PrecioCosto,
		CostosAdicionales: req.CostosAdicionales,
		PrecioVenta:       req.PrecioVenta,
		Sucursal:          req.Sucursal,
		Disponible:        true,
		FotoURL:           req.FotoURL,
	}
	if err := s.computadoras.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("crear computadora: %w", err)
	}
	s.registrarAlta(ctx, model.TipoComputadora, c.ID, 1, &c.Sucursal)
	s.stock.InvalidarCatalogos(ctx)
	resp := computadoraToResponse(&c)
	return &resp, nil
}

func (s *catalogoService) CrearCelular(ctx context.Context, req dto.CrearCelularRequest) (*dto.CelularResponse, error) {
	estado := req.Estado
	if estado == "" {
		estado = "usado"
	}
	c := model.Celular{
		Serial:            req.Serial,
		Modelo:            req.Modelo,
		Marca:             req.Marca,
		Capacidad:         req.Capacidad,
		Color:             req.Color,
		BateriaPct:        req.BateriaPct,
		Estado:            estado,
		PrecioCosto:       req.PrecioCosto,
		CostosAdicionales: req.CostosAdicionales,
		PrecioVenta:       req.PrecioVenta,
		Sucursal:          req.Sucursal,
		Disponible:        true,
		FotoURL:           req.FotoURL,
	}
	if err := s.celulares.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("crear celular: %w", err)
	}
	s.registrarAlta(ctx, model.TipoCelular, c.ID, 1, &c.Sucursal)
	s.stock.InvalidarCatalogos(ctx)
	resp := celularToResponse(&c)
	return &resp, nil
}

func (s *catalogoService) CrearOtro(ctx context.Context, req dto.CrearOtroRequest) (*dto.OtroResponse, error) {
	o := model.Otro{
		Nombre:            req.Nombre,
		Categoria:         req.Categoria,
		Serial:            req.Serial,
		PrecioCosto:       req.PrecioCosto,
		CostosAdicionales: req.CostosAdicionales,
		PrecioVenta:       req.PrecioVenta,
		StockLaPlata:      req.StockLaPlata,
		StockMitre:        req.StockMitre,
		FotoURL:           req.FotoURL,
	}
	if err := s.otros.Create(ctx, &o); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	if o.StockLaPlata > 0 {
		sucursal := model.SucursalLaPlata
		s.registrarAlta(ctx, model.TipoOtro, o.ID, o.StockLaPlata, &sucursal)
	}
	if o.StockMitre > 0 {
		sucursal := model.SucursalMitre
		s.registrarAlta(ctx, model.TipoOtro, o.ID, o.StockMitre, &sucursal)
	}
	s.stock.InvalidarCatalogos(ctx)
	resp := otroToResponse(&o)
	return &resp, nil
}

func (s *catalogoService) ObtenerComputadora(ctx context.Context, id uuid.UUID) (*dto.ComputadoraResponse, error) {
	c, err := s.computadoras.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := computadoraToResponse(c)
	return &resp, nil
}

func (s *catalogoService) ObtenerCelular(ctx context.Context, id uuid.UUID) (*dto.CelularResponse, error) {
	c, err := s.celulares.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := celularToResponse(c)
	return &resp, nil
}

func (s *catalogoService) ObtenerOtro(ctx context.Context, id uuid.UUID) (*dto.OtroResponse, error) {
	o, err := s.otros.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := otroToResponse(o)
	return &resp, nil
}

// registrarAlta records the intake movement. A logging-only failure: the
// product row is already committed.
func (s *catalogoService) registrarAlta(ctx context.Context, tipo string, id uuid.UUID, cantidad int, sucursal *string) {
	_ = s.movimientos.Create(ctx, &model.MovimientoStock{
		TipoProducto: tipo,
		ProductoID:   id,
		Tipo:         "alta",
		Cantidad:     cantidad,
		Sucursal:     sucursal,
	})
}
