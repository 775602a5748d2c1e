package repository

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipoRepository interface {
	Create(ctx context.Context, e *model.Equipo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Equipo, error)
	List(ctx context.Context, clienteID *uuid.UUID) ([]model.Equipo, error)
	Update(ctx context.Context, e *model.Equipo) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOrdenes(ctx context.Context, equipoID uuid.UUID) (int64, error)
}

type equipoRepo struct{ db *gorm.DB }

func NewEquipoRepository(db *gorm.DB) EquipoRepository { return &equipoRepo{db: db} }

func (r *equipoRepo) Create(ctx context.Context, e *model.Equipo) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *equipoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Equipo, error) {
	var e model.Equipo
	err := r.db.WithContext(ctx).Preload("Cliente").First(&e, id).Error
	return &e, err
}

func (r *equipoRepo) List(ctx context.Context, clienteID *uuid.UUID) ([]model.Equipo, error) {
	q := r.db.WithContext(ctx).Preload("Cliente")
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	var equipos []model.Equipo
	err := q.Order("created_at DESC").Find(&equipos).Error
	return equipos, err
}

func (r *equipoRepo) Update(ctx context.Context, e *model.Equipo) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *equipoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Equipo{}, id).Error
}

func (r *equipoRepo) CountOrdenes(ctx context.Context, equipoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrdenReparacion{}).
		Where("equipo_id = ?", equipoID).Count(&count).Error
	return count, err
}
