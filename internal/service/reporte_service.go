package service

import (
	"context"
	"time"

	"updatepos/internal/dto"
	"updatepos/internal/repository"

	"github.com/shopspring/decimal"
)

type ReporteService interface {
	// ResumenDiario aggregates the committed sales of one day (YYYY-MM-DD;
	// empty = today) from the frozen per-item figures.
	ResumenDiario(ctx context.Context, fecha string) (*dto.ResumenDiarioResponse, error)
}

type reporteService struct {
	ventas repository.VentaRepository
}

func NewReporteService(ventas repository.VentaRepository) ReporteService {
	return &reporteService{ventas: ventas}
}

func (s *reporteService) ResumenDiario(ctx context.Context, fecha string) (*dto.ResumenDiarioResponse, error) {
	if fecha == "" {
		fecha = time.Now().Format("2006-01-02")
	}
	ventas, err := s.ventas.ListByFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}

	resumen := dto.ResumenDiarioResponse{
		Fecha:         fecha,
		TotalVendido:  decimal.Zero,
		TotalCosto:    decimal.Zero,
		TotalGanancia: decimal.Zero,
		PorMetodo:     make(map[string]decimal.Decimal),
	}
	for i := range ventas {
		v := &ventas[i]
		resumen.CantidadVentas++
		resumen.TotalVendido = resumen.TotalVendido.Add(v.Total)
		resumen.TotalCosto = resumen.TotalCosto.Add(v.TotalCosto)
		resumen.TotalGanancia = resumen.TotalGanancia.Add(v.TotalGanancia)
		for _, pago := range v.Pagos {
			resumen.PorMetodo[pago.Metodo] = resumen.PorMetodo[pago.Metodo].Add(pago.Monto)
		}
	}
	return &resumen, nil
}
