package service

import (
	"context"

	"updatepos/internal/dto"
	"updatepos/internal/model"
	"updatepos/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, busqueda string) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := model.Cliente{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Telefono: req.Telefono,
		Email:    req.Email,
		Dni:      req.Dni,
	}
	if err := s.repo.Create(ctx, &cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(&cliente), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, busqueda string) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, busqueda)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return items, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	if req.Nombre != "" {
		cliente.Nombre = req.Nombre
	}
	if req.Apellido != nil {
		cliente.Apellido = *req.Apellido
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Dni != nil {
		cliente.Dni = req.Dni
	}
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:       c.ID.String(),
		Nombre:   c.Nombre,
		Apellido: c.Apellido,
		Telefono: c.Telefono,
		Email:    c.Email,
		Dni:      c.Dni,
	}
}
