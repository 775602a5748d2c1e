package repository

import (
	"context"

	"github.com/TheGeorge88/app-celulares/internal/dto"
	"github.com/TheGeorge88/app-celulares/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RepuestoRepository defines the data access contract for spare parts.
type RepuestoRepository interface {
	Create(ctx context.Context, p *model.Repuesto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Repuesto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Repuesto, error)
	List(ctx context.Context) ([]model.Repuesto, error)
	ListActivos(ctx context.Context) ([]model.Repuesto, error)
	ListStockBajo(ctx context.Context) ([]model.Repuesto, error)
	Buscar(ctx context.Context, filter dto.RepuestoBusquedaFilter) ([]model.Repuesto, error)
	Update(ctx context.Context, p *model.Repuesto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountDetalles(ctx context.Context, repuestoID uuid.UUID) (int64, error)

	// Stock mutation — used inside transactions; callers pass the tx instance.
	// DescontarStockTx performs an atomic conditional decrement: it only
	// succeeds when the row still holds at least cantidad units, so two
	// concurrent reservations can never jointly overdraw stock. Both methods
	// return the post-update stock (RETURNING) so audit rows record the value
	// the update actually produced, not a possibly stale pre-read.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (nuevoStock int, ok bool, err error)
	AgregarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (nuevoStock int, err error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type repuestoRepo struct{ db *gorm.DB }

func NewRepuestoRepository(db *gorm.DB) RepuestoRepository { return &repuestoRepo{db: db} }

func (r *repuestoRepo) Create(ctx context.Context, p *model.Repuesto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repuestoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Repuesto, error) {
	var p model.Repuesto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *repuestoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Repuesto, error) {
	var p model.Repuesto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	return &p, err
}

func (r *repuestoRepo) List(ctx context.Context) ([]model.Repuesto, error) {
	var repuestos []model.Repuesto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&repuestos).Error
	return repuestos, err
}

func (r *repuestoRepo) ListActivos(ctx context.Context) ([]model.Repuesto, error) {
	var repuestos []model.Repuesto
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock > 0").
		Order("nombre ASC").Find(&repuestos).Error
	return repuestos, err
}

func (r *repuestoRepo) ListStockBajo(ctx context.Context) ([]model.Repuesto, error) {
	var repuestos []model.Repuesto
	err := r.db.WithContext(ctx).
		Where("stock <= stock_minimo").
		Order("stock ASC").Find(&repuestos).Error
	return repuestos, err
}

func (r *repuestoRepo) Buscar(ctx context.Context, filter dto.RepuestoBusquedaFilter) ([]model.Repuesto, error) {
	q := r.db.WithContext(ctx).Where("activo = true")

	if filter.Q != "" {
		like := "%" + filter.Q + "%"
		q = q.Where("nombre ILIKE ? OR codigo ILIKE ? OR marca ILIKE ? OR modelo ILIKE ?",
			like, like, like, like)
	}
	if filter.Marca != "" {
		q = q.Where("marca = ?", filter.Marca)
	}
	if filter.Modelo != "" {
		q = q.Where("modelo = ?", filter.Modelo)
	}

	var repuestos []model.Repuesto
	err := q.Order("nombre ASC").Find(&repuestos).Error
	return repuestos, err
}

func (r *repuestoRepo) Update(ctx context.Context, p *model.Repuesto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repuestoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Repuesto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *repuestoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Repuesto{}, id).Error
}

func (r *repuestoRepo) CountDetalles(ctx context.Context, repuestoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DetalleOrdenRepuesto{}).
		Where("repuesto_id = ?", repuestoID).Count(&count).Error
	return count, err
}

func (r *repuestoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, bool, error) {
	var p model.Repuesto
	res := tx.Model(&p).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "stock"}}}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return 0, false, res.Error
	}
	return p.Stock, res.RowsAffected > 0, nil
}

func (r *repuestoRepo) AgregarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, error) {
	var p model.Repuesto
	res := tx.Model(&p).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "stock"}}}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", cantidad))
	if res.Error != nil {
		return 0, res.Error
	}
	return p.Stock, nil
}

func (r *repuestoRepo) DB() *gorm.DB { return r.db }
