package service

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/apierror"
	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"
	"github.com/TheGeorge88/app-celulares/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService owns every stock mutation: reserving parts for an order,
// returning them, and manual adjustments. Each mutation runs in a transaction
// and leaves a MovimientoStock audit row.
type InventarioService interface {
	AgregarDetalle(ctx context.Context, req dto.AgregarDetalleRequest) (*dto.DetalleOrdenResponse, error)
	QuitarDetalle(ctx context.Context, detalleID uuid.UUID) error
	ListarDetalles(ctx context.Context, ordenID uuid.UUID) ([]dto.DetalleOrdenResponse, error)
	AjustarStock(ctx context.Context, repuestoID uuid.UUID, req dto.AjustarStockRequest) (*dto.RepuestoResponse, error)
	ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error)
}

type inventarioService struct {
	ordenRepo      repository.OrdenRepository
	repuestoRepo   repository.RepuestoRepository
	detalleRepo    repository.DetalleRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewInventarioService(
	ordenRepo repository.OrdenRepository,
	repuestoRepo repository.RepuestoRepository,
	detalleRepo repository.DetalleRepository,
	movimientoRepo repository.MovimientoStockRepository,
) InventarioService {
	return &inventarioService{
		ordenRepo:      ordenRepo,
		repuestoRepo:   repuestoRepo,
		detalleRepo:    detalleRepo,
		movimientoRepo: movimientoRepo,
	}
}

// runTx executes fn inside a DB transaction. A nil db (unit tests with
// repository stubs) runs fn directly with a nil tx.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// AgregarDetalle reserves cantidad units of a part for an order. The decrement
// is an atomic conditional UPDATE, so concurrent reservations on the same part
// cannot jointly overdraw; the loser gets InsufficientStock.
func (s *inventarioService) AgregarDetalle(ctx context.Context, req dto.AgregarDetalleRequest) (*dto.DetalleOrdenResponse, error) {
	ordenID, err := uuid.Parse(req.OrdenReparacionID)
	if err != nil {
		return nil, apierror.Validation("orden_reparacion_id inválido")
	}
	repuestoID, err := uuid.Parse(req.RepuestoID)
	if err != nil {
		return nil, apierror.Validation("repuesto_id inválido")
	}
	if req.Cantidad < 1 {
		return nil, apierror.Validation("la cantidad debe ser al menos 1")
	}

	orden, err := s.ordenRepo.FindByID(ctx, ordenID)
	if err != nil {
		return nil, apierror.NotFound("orden de reparación", ordenID.String())
	}
	if orden.Estado == model.EstadoEntregado || orden.Estado == model.EstadoCancelado {
		return nil, apierror.InvalidState("no se pueden agregar repuestos a una orden cerrada")
	}

	repuesto, err := s.repuestoRepo.FindByID(ctx, repuestoID)
	if err != nil {
		return nil, apierror.NotFound("repuesto", repuestoID.String())
	}
	if !repuesto.Activo {
		return nil, apierror.Validation("el repuesto está inactivo")
	}

	detalle := &model.DetalleOrdenRepuesto{
		OrdenReparacionID: ordenID,
		RepuestoID:        repuestoID,
		Cantidad:          req.Cantidad,
		PrecioUnitario:    repuesto.PrecioVenta,
		Subtotal:          model.CalcularSubtotal(req.Cantidad, repuesto.PrecioVenta),
	}

	err = runTx(ctx, s.repuestoRepo.DB(), func(tx *gorm.DB) error {
		nuevo, ok, err := s.repuestoRepo.DescontarStockTx(tx, repuestoID, req.Cantidad)
		if err != nil {
			return err
		}
		if !ok {
			return apierror.InsufficientStock(repuesto.Nombre, repuestoID.String(), req.Cantidad, repuesto.Stock)
		}
		if err := s.detalleRepo.CreateTx(tx, detalle); err != nil {
			return err
		}
		// Audit before/after derive from the atomic update itself, so a
		// concurrent mutation of the same part cannot skew the ledger.
		return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
			RepuestoID:    repuestoID,
			Tipo:          "reserva_orden",
			Cantidad:      -req.Cantidad,
			StockAnterior: nuevo + req.Cantidad,
			StockNuevo:    nuevo,
			Motivo:        "Reserva para orden " + orden.CodigoSeguimiento,
			ReferenciaID:  &ordenID,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := detalleToResponse(detalle)
	resp.Repuesto = repuesto.Nombre
	return resp, nil
}

// QuitarDetalle removes a line item and returns its units to stock.
func (s *inventarioService) QuitarDetalle(ctx context.Context, detalleID uuid.UUID) error {
	detalle, err := s.detalleRepo.FindByID(ctx, detalleID)
	if err != nil {
		return apierror.NotFound("detalle de orden", detalleID.String())
	}

	return runTx(ctx, s.repuestoRepo.DB(), func(tx *gorm.DB) error {
		nuevo, err := s.repuestoRepo.AgregarStockTx(tx, detalle.RepuestoID, detalle.Cantidad)
		if err != nil {
			return err
		}
		if err := s.detalleRepo.DeleteTx(tx, detalleID); err != nil {
			return err
		}
		ordenID := detalle.OrdenReparacionID
		return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
			RepuestoID:    detalle.RepuestoID,
			Tipo:          "devolucion_orden",
			Cantidad:      detalle.Cantidad,
			StockAnterior: nuevo - detalle.Cantidad,
			StockNuevo:    nuevo,
			Motivo:        "Devolución por detalle eliminado",
			ReferenciaID:  &ordenID,
		})
	})
}

func (s *inventarioService) ListarDetalles(ctx context.Context, ordenID uuid.UUID) ([]dto.DetalleOrdenResponse, error) {
	if _, err := s.ordenRepo.FindByID(ctx, ordenID); err != nil {
		return nil, apierror.NotFound("orden de reparación", ordenID.String())
	}
	detalles, err := s.detalleRepo.ListByOrden(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DetalleOrdenResponse, 0, len(detalles))
	for i := range detalles {
		items = append(items, *detalleToResponse(&detalles[i]))
	}
	return items, nil
}

// AjustarStock applies a manual correction outside the order flow.
// Entrada adds unconditionally; salida uses the same conditional decrement as
// reservations so a concurrent reservation cannot push stock negative.
func (s *inventarioService) AjustarStock(ctx context.Context, repuestoID uuid.UUID, req dto.AjustarStockRequest) (*dto.RepuestoResponse, error) {
	repuesto, err := s.repuestoRepo.FindByID(ctx, repuestoID)
	if err != nil {
		return nil, apierror.NotFound("repuesto", repuestoID.String())
	}

	motivo := req.Motivo
	if motivo == "" {
		motivo = "Ajuste manual"
	}

	err = runTx(ctx, s.repuestoRepo.DB(), func(tx *gorm.DB) error {
		switch req.Tipo {
		case "entrada":
			nuevo, err := s.repuestoRepo.AgregarStockTx(tx, repuestoID, req.Cantidad)
			if err != nil {
				return err
			}
			return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
				RepuestoID:    repuestoID,
				Tipo:          "ajuste_entrada",
				Cantidad:      req.Cantidad,
				StockAnterior: nuevo - req.Cantidad,
				StockNuevo:    nuevo,
				Motivo:        motivo,
			})
		case "salida":
			nuevo, ok, err := s.repuestoRepo.DescontarStockTx(tx, repuestoID, req.Cantidad)
			if err != nil {
				return err
			}
			if !ok {
				return apierror.InsufficientStock(repuesto.Nombre, repuestoID.String(), req.Cantidad, repuesto.Stock)
			}
			return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
				RepuestoID:    repuestoID,
				Tipo:          "ajuste_salida",
				Cantidad:      -req.Cantidad,
				StockAnterior: nuevo + req.Cantidad,
				StockNuevo:    nuevo,
				Motivo:        motivo,
			})
		default:
			return apierror.Validation("tipo de ajuste inválido")
		}
	})
	if err != nil {
		return nil, err
	}

	actualizado, err := s.repuestoRepo.FindByID(ctx, repuestoID)
	if err != nil {
		return repuestoToResponse(repuesto), nil
	}
	return repuestoToResponse(actualizado), nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error) {
	movimientos, total, err := s.movimientoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}

	items := make([]dto.MovimientoStockResponse, 0, len(movimientos))
	for i := range movimientos {
		m := &movimientos[i]
		item := dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			RepuestoID:    m.RepuestoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreatedAt:     fmtTime(m.CreatedAt),
		}
		if m.Repuesto != nil {
			item.Repuesto = m.Repuesto.Nombre
		}
		if m.ReferenciaID != nil {
			ref := m.ReferenciaID.String()
			item.ReferenciaID = &ref
		}
		items = append(items, item)
	}
	return &dto.MovimientoStockListResponse{
		Data:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func detalleToResponse(d *model.DetalleOrdenRepuesto) *dto.DetalleOrdenResponse {
	resp := &dto.DetalleOrdenResponse{
		ID:                d.ID.String(),
		OrdenReparacionID: d.OrdenReparacionID.String(),
		RepuestoID:        d.RepuestoID.String(),
		Cantidad:          d.Cantidad,
		PrecioUnitario:    d.PrecioUnitario,
		Subtotal:          d.Subtotal,
	}
	if d.Repuesto != nil {
		resp.Repuesto = d.Repuesto.Nombre
	}
	return resp
}
