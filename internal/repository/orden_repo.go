package repository

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrdenRepository defines the data access contract for repair orders.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type OrdenRepository interface {
	Create(ctx context.Context, o *model.OrdenReparacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenReparacion, error)
	// FindByIDFull preloads cliente, equipo, tecnico and detalles+repuesto.
	FindByIDFull(ctx context.Context, id uuid.UUID) (*model.OrdenReparacion, error)
	FindByCodigoSeguimiento(ctx context.Context, codigo string) (*model.OrdenReparacion, error)
	ExisteCodigoSeguimiento(ctx context.Context, codigo string) (bool, error)
	List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenReparacion, int64, error)
	ListByNumeroDocumento(ctx context.Context, numeroDocumento string) ([]model.OrdenReparacion, error)
	ListByTecnico(ctx context.Context, tecnicoID uuid.UUID) ([]model.OrdenReparacion, error)
	ListPendientes(ctx context.Context) ([]model.OrdenReparacion, error)
	Update(ctx context.Context, o *model.OrdenReparacion) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountDetalles(ctx context.Context, ordenID uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) Create(ctx context.Context, o *model.OrdenReparacion) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenReparacion, error) {
	var o model.OrdenReparacion
	err := r.db.WithContext(ctx).First(&o, id).Error
	return &o, err
}

func (r *ordenRepo) FindByIDFull(ctx context.Context, id uuid.UUID) (*model.OrdenReparacion, error) {
	var o model.OrdenReparacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Equipo").Preload("Tecnico").
		Preload("Detalles").Preload("Detalles.Repuesto").
		First(&o, id).Error
	return &o, err
}

func (r *ordenRepo) FindByCodigoSeguimiento(ctx context.Context, codigo string) (*model.OrdenReparacion, error) {
	var o model.OrdenReparacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Equipo").Preload("Tecnico").
		Preload("Detalles").Preload("Detalles.Repuesto").
		Where("codigo_seguimiento = ?", codigo).
		First(&o).Error
	return &o, err
}

func (r *ordenRepo) ExisteCodigoSeguimiento(ctx context.Context, codigo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrdenReparacion{}).
		Where("codigo_seguimiento = ?", codigo).Count(&count).Error
	return count > 0, err
}

func (r *ordenRepo) List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenReparacion, int64, error) {
	var ordenes []model.OrdenReparacion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.OrdenReparacion{})

	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.TecnicoID != "" {
		q = q.Where("tecnico_id = ?", filter.TecnicoID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Equipo").Preload("Tecnico").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).
		Find(&ordenes).Error
	return ordenes, total, err
}

func (r *ordenRepo) ListByNumeroDocumento(ctx context.Context, numeroDocumento string) ([]model.OrdenReparacion, error) {
	var ordenes []model.OrdenReparacion
	err := r.db.WithContext(ctx).
		Joins("JOIN clientes ON clientes.id = ordenes_reparacion.cliente_id").
		Where("clientes.numero_documento = ?", numeroDocumento).
		Preload("Equipo").
		Order("ordenes_reparacion.created_at DESC").
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) ListByTecnico(ctx context.Context, tecnicoID uuid.UUID) ([]model.OrdenReparacion, error) {
	var ordenes []model.OrdenReparacion
	err := r.db.WithContext(ctx).
		Where("tecnico_id = ?", tecnicoID).
		Preload("Cliente").Preload("Equipo").
		Order("created_at DESC").
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) ListPendientes(ctx context.Context) ([]model.OrdenReparacion, error) {
	var ordenes []model.OrdenReparacion
	err := r.db.WithContext(ctx).
		Where("estado NOT IN ?", []model.Estado{model.EstadoEntregado, model.EstadoCancelado}).
		Preload("Cliente").Preload("Equipo").Preload("Tecnico").
		Order("created_at ASC").
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) Update(ctx context.Context, o *model.OrdenReparacion) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *ordenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.OrdenReparacion{}, id).Error
}

func (r *ordenRepo) CountDetalles(ctx context.Context, ordenID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DetalleOrdenRepuesto{}).
		Where("orden_reparacion_id = ?", ordenID).Count(&count).Error
	return count, err
}

func (r *ordenRepo) DB() *gorm.DB { return r.db }
