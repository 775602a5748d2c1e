package service

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"

	"github.com/google/uuid"
)

type TecnicoService interface {
	Crear(ctx context.Context, req dto.CrearTecnicoRequest) (*dto.TecnicoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.TecnicoResponse, error)
	Listar(ctx context.Context, soloActivos bool) ([]dto.TecnicoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTecnicoRequest) (*dto.TecnicoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type tecnicoService struct {
	repo repository.TecnicoRepository
}

func NewTecnicoService(repo repository.TecnicoRepository) TecnicoService {
	return &tecnicoService{repo: repo}
}

func (s *tecnicoService) Crear(ctx context.Context, req dto.CrearTecnicoRequest) (*dto.TecnicoResponse, error) {
	tecnico := &model.Tecnico{
		Cedula:       req.Cedula,
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Telefono:     req.Telefono,
		Email:        req.Email,
		Especialidad: req.Especialidad,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, tecnico); err != nil {
		return nil, err
	}
	return tecnicoToResponse(tecnico), nil
}

func (s *tecnicoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.TecnicoResponse, error) {
	tecnico, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("técnico", id.String())
	}
	return tecnicoToResponse(tecnico), nil
}

func (s *tecnicoService) Listar(ctx context.Context, soloActivos bool) ([]dto.TecnicoResponse, error) {
	tecnicos, err := s.repo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TecnicoResponse, 0, len(tecnicos))
	for i := range tecnicos {
		items = append(items, *tecnicoToResponse(&tecnicos[i]))
	}
	return items, nil
}

func (s *tecnicoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTecnicoRequest) (*dto.TecnicoResponse, error) {
	tecnico, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("técnico", id.String())
	}

	if req.Nombre != nil {
		tecnico.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		tecnico.Apellido = *req.Apellido
	}
	if req.Telefono != nil {
		tecnico.Telefono = req.Telefono
	}
	if req.Email != nil {
		tecnico.Email = req.Email
	}
	if req.Especialidad != nil {
		tecnico.Especialidad = req.Especialidad
	}

	if err := s.repo.Update(ctx, tecnico); err != nil {
		return nil, err
	}
	return tecnicoToResponse(tecnico), nil
}

// Desactivar is a soft delete: historical orders keep their technician.
func (s *tecnicoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("técnico", id.String())
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *tecnicoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("técnico", id.String())
	}
	return s.repo.Reactivar(ctx, id)
}

func tecnicoToResponse(t *model.Tecnico) *dto.TecnicoResponse {
	return &dto.TecnicoResponse{
		ID:           t.ID.String(),
		Cedula:       t.Cedula,
		Nombre:       t.Nombre,
		Apellido:     t.Apellido,
		Telefono:     t.Telefono,
		Email:        t.Email,
		Especialidad: t.Especialidad,
		Activo:       t.Activo,
	}
}
