package repository

import (
	"context"

	"updatepos/internal/dto"
	"updatepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CelularRepository interface {
	Create(ctx context.Context, c *model.Celular) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Celular, error)
	FindBySerial(ctx context.Context, serial string) (*model.Celular, error)
	List(ctx context.Context, filter dto.CatalogoFilter) ([]model.Celular, error)
	Update(ctx context.Context, c *model.Celular) error
	MarcarVendidaTx(tx *gorm.DB, id uuid.UUID) (int64, error)
}

type celularRepo struct{ db *gorm.DB }

func NewCelularRepository(db *gorm.DB) CelularRepository { return &celularRepo{db: db} }

func (r *celularRepo) Create(ctx context.Context, c *model.Celular) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *celularRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Celular, error) {
	var c model.Celular
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *celularRepo) FindBySerial(ctx context.Context, serial string) (*model.Celular, error) {
	var c model.Celular
	err := r.db.WithContext(ctx).Where("serial = ?", serial).First(&c).Error
	return &c, err
}

func (r *celularRepo) List(ctx context.Context, filter dto.CatalogoFilter) ([]model.Celular, error) {
	var celulares []model.Celular
	q := r.db.WithContext(ctx).Model(&model.Celular{})

	switch filter.Disponible {
	case "false":
		q = q.Where("disponible = false")
	case "all":
	default:
		q = q.Where("disponible = true")
	}
	if filter.Busqueda != "" {
		like := "%" + filter.Busqueda + "%"
		q = q.Where("modelo ILIKE ? OR marca ILIKE ? OR serial ILIKE ?", like, like, like)
	}
	if filter.Sucursal != "" {
		q = q.Where("sucursal = ?", filter.Sucursal)
	}

	err := q.Order("marca ASC, modelo ASC").Find(&celulares).Error
	return celulares, err
}

func (r *celularRepo) Update(ctx context.Context, c *model.Celular) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *celularRepo) MarcarVendidaTx(tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := tx.Model(&model.Celular{}).
		Where("id = ? AND disponible = true", id).
		Update("disponible", false)
	return res.RowsAffected, res.Error
}
