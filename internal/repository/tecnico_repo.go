package repository

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TecnicoRepository interface {
	Create(ctx context.Context, t *model.Tecnico) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tecnico, error)
	List(ctx context.Context, soloActivos bool) ([]model.Tecnico, error)
	Update(ctx context.Context, t *model.Tecnico) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type tecnicoRepo struct{ db *gorm.DB }

func NewTecnicoRepository(db *gorm.DB) TecnicoRepository { return &tecnicoRepo{db: db} }

func (r *tecnicoRepo) Create(ctx context.Context, t *model.Tecnico) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tecnicoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tecnico, error) {
	var t model.Tecnico
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *tecnicoRepo) List(ctx context.Context, soloActivos bool) ([]model.Tecnico, error) {
	q := r.db.WithContext(ctx)
	if soloActivos {
		q = q.Where("activo = true")
	}
	var tecnicos []model.Tecnico
	err := q.Order("apellido ASC, nombre ASC").Find(&tecnicos).Error
	return tecnicos, err
}

func (r *tecnicoRepo) Update(ctx context.Context, t *model.Tecnico) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tecnicoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Tecnico{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *tecnicoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Tecnico{}).Where("id = ?", id).Update("activo", true).Error
}
