package repository

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DetalleRepository defines data access for order line items.
type DetalleRepository interface {
	CreateTx(tx *gorm.DB, d *model.DetalleOrdenRepuesto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DetalleOrdenRepuesto, error)
	ListByOrden(ctx context.Context, ordenID uuid.UUID) ([]model.DetalleOrdenRepuesto, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
}

type detalleRepo struct{ db *gorm.DB }

func NewDetalleRepository(db *gorm.DB) DetalleRepository { return &detalleRepo{db: db} }

func (r *detalleRepo) CreateTx(tx *gorm.DB, d *model.DetalleOrdenRepuesto) error {
	return tx.Create(d).Error
}

func (r *detalleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DetalleOrdenRepuesto, error) {
	var d model.DetalleOrdenRepuesto
	err := r.db.WithContext(ctx).Preload("Repuesto").First(&d, id).Error
	return &d, err
}

func (r *detalleRepo) ListByOrden(ctx context.Context, ordenID uuid.UUID) ([]model.DetalleOrdenRepuesto, error) {
	var detalles []model.DetalleOrdenRepuesto
	err := r.db.WithContext(ctx).
		Where("orden_reparacion_id = ?", ordenID).
		Preload("Repuesto").
		Find(&detalles).Error
	return detalles, err
}

func (r *detalleRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.DetalleOrdenRepuesto{}, id).Error
}
