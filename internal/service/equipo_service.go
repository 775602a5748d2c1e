package service

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"

	"github.com/google/uuid"
)

type EquipoService interface {
	Crear(ctx context.Context, req dto.CrearEquipoRequest) (*dto.EquipoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EquipoResponse, error)
	Listar(ctx context.Context, clienteID *uuid.UUID) ([]dto.EquipoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEquipoRequest) (*dto.EquipoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type equipoService struct {
	repo        repository.EquipoRepository
	clienteRepo repository.ClienteRepository
}

func NewEquipoService(repo repository.EquipoRepository, clienteRepo repository.ClienteRepository) EquipoService {
	return &equipoService{repo: repo, clienteRepo: clienteRepo}
}

func (s *equipoService) Crear(ctx context.Context, req dto.CrearEquipoRequest) (*dto.EquipoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Validation("cliente_id inválido")
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.Validation("el cliente referenciado no existe")
	}

	equipo := &model.Equipo{
		ClienteID:     clienteID,
		Marca:         req.Marca,
		Modelo:        req.Modelo,
		IMEI:          req.IMEI,
		Color:         req.Color,
		Observaciones: req.Observaciones,
	}
	if err := s.repo.Create(ctx, equipo); err != nil {
		return nil, err
	}
	return equipoToResponse(equipo), nil
}

func (s *equipoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EquipoResponse, error) {
	equipo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("equipo", id.String())
	}
	return equipoToResponse(equipo), nil
}

func (s *equipoService) Listar(ctx context.Context, clienteID *uuid.UUID) ([]dto.EquipoResponse, error) {
	equipos, err := s.repo.List(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipoResponse, 0, len(equipos))
	for i := range equipos {
		items = append(items, *equipoToResponse(&equipos[i]))
	}
	return items, nil
}

func (s *equipoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEquipoRequest) (*dto.EquipoResponse, error) {
	equipo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("equipo", id.String())
	}

	if req.Marca != nil {
		equipo.Marca = *req.Marca
	}
	if req.Modelo != nil {
		equipo.Modelo = *req.Modelo
	}
	if req.IMEI != nil {
		equipo.IMEI = req.IMEI
	}
	if req.Color != nil {
		equipo.Color = req.Color
	}
	if req.Observaciones != nil {
		equipo.Observaciones = req.Observaciones
	}

	if err := s.repo.Update(ctx, equipo); err != nil {
		return nil, err
	}
	return equipoToResponse(equipo), nil
}

func (s *equipoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("equipo", id.String())
	}
	count, err := s.repo.CountOrdenes(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apierror.Conflict("el equipo tiene órdenes de reparación asociadas")
	}
	return s.repo.Delete(ctx, id)
}

func equipoToResponse(e *model.Equipo) *dto.EquipoResponse {
	return &dto.EquipoResponse{
		ID:            e.ID.String(),
		ClienteID:     e.ClienteID.String(),
		Marca:         e.Marca,
		Modelo:        e.Modelo,
		IMEI:          e.IMEI,
		Color:         e.Color,
		Observaciones: e.Observaciones,
	}
}
