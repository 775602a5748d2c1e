package service

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"

	"github.com/google/uuid"
)

// RepuestoService manages the spare parts catalog. Stock itself is only
// mutated through InventarioService.
type RepuestoService interface {
	Crear(ctx context.Context, req dto.CrearRepuestoRequest) (*dto.RepuestoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RepuestoResponse, error)
	Listar(ctx context.Context) ([]dto.RepuestoResponse, error)
	ListarDisponibles(ctx context.Context) ([]dto.RepuestoResponse, error)
	ListarStockBajo(ctx context.Context) ([]dto.RepuestoResponse, error)
	Buscar(ctx context.Context, filter dto.RepuestoBusquedaFilter) ([]dto.RepuestoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRepuestoRequest) (*dto.RepuestoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type repuestoService struct {
	repo repository.RepuestoRepository
}

func NewRepuestoService(repo repository.RepuestoRepository) RepuestoService {
	return &repuestoService{repo: repo}
}

func (s *repuestoService) Crear(ctx context.Context, req dto.CrearRepuestoRequest) (*dto.RepuestoResponse, error) {
	if req.PrecioCompra.IsNegative() || req.PrecioVenta.IsNegative() {
		return nil, apierror.Validation("los precios no pueden ser negativos")
	}
	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, apierror.Conflict("ya existe un repuesto con ese código")
	}

	repuesto := &model.Repuesto{
		Codigo:       req.Codigo,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Marca:        req.Marca,
		Modelo:       req.Modelo,
		Stock:        req.Stock,
		StockMinimo:  req.StockMinimo,
		PrecioCompra: req.PrecioCompra,
		PrecioVenta:  req.PrecioVenta,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, repuesto); err != nil {
		return nil, err
	}
	return repuestoToResponse(repuesto), nil
}

func (s *repuestoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RepuestoResponse, error) {
	repuesto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("repuesto", id.String())
	}
	return repuestoToResponse(repuesto), nil
}

func (s *repuestoService) Listar(ctx context.Context) ([]dto.RepuestoResponse, error) {
	repuestos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return repuestosToResponses(repuestos), nil
}

func (s *repuestoService) ListarDisponibles(ctx context.Context) ([]dto.RepuestoResponse, error) {
	repuestos, err := s.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	return repuestosToResponses(repuestos), nil
}

func (s *repuestoService) ListarStockBajo(ctx context.Context) ([]dto.RepuestoResponse, error) {
	repuestos, err := s.repo.ListStockBajo(ctx)
	if err != nil {
		return nil, err
	}
	return repuestosToResponses(repuestos), nil
}

func (s *repuestoService) Buscar(ctx context.Context, filter dto.RepuestoBusquedaFilter) ([]dto.RepuestoResponse, error) {
	repuestos, err := s.repo.Buscar(ctx, filter)
	if err != nil {
		return nil, err
	}
	return repuestosToResponses(repuestos), nil
}

func (s *repuestoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRepuestoRequest) (*dto.RepuestoResponse, error) {
	repuesto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("repuesto", id.String())
	}

	if req.Nombre != nil {
		repuesto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		repuesto.Descripcion = req.Descripcion
	}
	if req.Marca != nil {
		repuesto.Marca = *req.Marca
	}
	if req.Modelo != nil {
		repuesto.Modelo = *req.Modelo
	}
	if req.StockMinimo != nil {
		repuesto.StockMinimo = *req.StockMinimo
	}
	if req.PrecioCompra != nil {
		if req.PrecioCompra.IsNegative() {
			return nil, apierror.Validation("el precio de compra no puede ser negativo")
		}
		repuesto.PrecioCompra = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		if req.PrecioVenta.IsNegative() {
			return nil, apierror.Validation("el precio de venta no puede ser negativo")
		}
		repuesto.PrecioVenta = *req.PrecioVenta
	}

	if err := s.repo.Update(ctx, repuesto); err != nil {
		return nil, err
	}
	return repuestoToResponse(repuesto), nil
}

// Eliminar soft-deletes when the part was ever used in an order (the detalles
// reference it), hard-deletes otherwise.
func (s *repuestoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("repuesto", id.String())
	}
	count, err := s.repo.CountDetalles(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return s.repo.SoftDelete(ctx, id)
	}
	return s.repo.Delete(ctx, id)
}

func repuestoToResponse(r *model.Repuesto) *dto.RepuestoResponse {
	return &dto.RepuestoResponse{
		ID:           r.ID.String(),
		Codigo:       r.Codigo,
		Nombre:       r.Nombre,
		Descripcion:  r.Descripcion,
		Marca:        r.Marca,
		Modelo:       r.Modelo,
		Stock:        r.Stock,
		StockMinimo:  r.StockMinimo,
		StockBajo:    r.TieneStockBajo(),
		PrecioCompra: r.PrecioCompra,
		PrecioVenta:  r.PrecioVenta,
		Activo:       r.Activo,
	}
}

func repuestosToResponses(repuestos []model.Repuesto) []dto.RepuestoResponse {
	items := make([]dto.RepuestoResponse, 0, len(repuestos))
	for i := range repuestos {
		items = append(items, *repuestoToResponse(&repuestos[i]))
	}
	return items
}
