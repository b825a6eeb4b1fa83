package service

import (
	"context"
	"time"

	"updatepos/internal/dto"
	"updatepos/internal/model"
	"updatepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CuentaCorrienteService interface {
	// RegistrarDeuda posts the store-credit portion of a sale as a "debe"
	// entry. Called after the checkout transaction commits; its failure is
	// reported, never rolled into the sale.
	RegistrarDeuda(ctx context.Context, clienteID uuid.UUID, ventaID uuid.UUID, monto decimal.Decimal, concepto string) (*dto.MovimientoCuentaResponse, error)
	SaldoCliente(ctx context.Context, clienteID uuid.UUID) (*dto.SaldoClienteResponse, error)
}

type cuentaCorrienteService struct {
	repo     repository.CuentaCorrienteRepository
	clientes repository.ClienteRepository
}

func NewCuentaCorrienteService(repo repository.CuentaCorrienteRepository, clientes repository.ClienteRepository) CuentaCorrienteService {
	return &cuentaCorrienteService{repo: repo, clientes: clientes}
}

func (s *cuentaCorrienteService) RegistrarDeuda(ctx context.Context, clienteID uuid.UUID, ventaID uuid.UUID, monto decimal.Decimal, concepto string) (*dto.MovimientoCuentaResponse, error) {
	// Entries are append-only: one per sale, never netted against an
	// existing balance.
	mov := model.MovimientoCuenta{
		ClienteID:      clienteID,
		VentaID:        &ventaID,
		Tipo:           "debe",
		Monto:          monto,
		Concepto:       concepto,
		Estado:         "pendiente",
		FechaOperacion: time.Now(),
	}
	if err := s.repo.Create(ctx, &mov); err != nil {
		return nil, err
	}
	resp := movimientoToResponse(&mov)
	return &resp, nil
}

func (s *cuentaCorrienteService) SaldoCliente(ctx context.Context, clienteID uuid.UUID) (*dto.SaldoClienteResponse, error) {
	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	saldo, err := s.repo.SaldoCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.repo.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoCuentaResponse, 0, len(movimientos))
	for i := range movimientos {
		items = append(items, movimientoToResponse(&movimientos[i]))
	}
	return &dto.SaldoClienteResponse{
		ClienteID:   clienteID.String(),
		Cliente:     cliente.Nombre + " " + cliente.Apellido,
		Saldo:       saldo,
		Movimientos: items,
	}, nil
}

func movimientoToResponse(m *model.MovimientoCuenta) dto.MovimientoCuentaResponse {
	resp := dto.MovimientoCuentaResponse{
		ID:             m.ID.String(),
		ClienteID:      m.ClienteID.String(),
		Tipo:           m.Tipo,
		Monto:          m.Monto,
		Concepto:       m.Concepto,
		Estado:         m.Estado,
		FechaOperacion: m.FechaOperacion.Format("2006-01-02"),
	}
	if m.VentaID != nil {
		v := m.VentaID.String()
		resp.VentaID = &v
	}
	return resp
}
