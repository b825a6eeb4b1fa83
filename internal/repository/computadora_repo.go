package repository

import (
	"context"

	"updatepos/internal/dto"
	"updatepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComputadoraRepository is the data access contract for notebooks.
// Services depend on this interface, not on the concrete GORM implementation.
type ComputadoraRepository interface {
	Create(ctx context.Context, c *model.Computadora) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Computadora, error)
	FindBySerial(ctx context.Context, serial string) (*model.Computadora, error)
	List(ctx context.Context, filter dto.CatalogoFilter) ([]model.Computadora, error)
	Update(ctx context.Context, c *model.Computadora) error

	// MarcarVendidaTx flags the unit unavailable inside a sale transaction.
	// Guarded: returns the affected row count so the caller can detect a
	// concurrent sale of the same serial.
	MarcarVendidaTx(tx *gorm.DB, id uuid.UUID) (int64, error)
}

type computadoraRepo struct{ db *gorm.DB }

func NewComputadoraRepository(db *gorm.DB) ComputadoraRepository { return &computadoraRepo{db: db} }

func (r *computadoraRepo) Create(ctx context.Context, c *model.Computadora) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *computadoraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Computadora, error) {
	var c model.Computadora
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *computadoraRepo) FindBySerial(ctx context.Context, serial string) (*model.Computadora, error) {
	var c model.Computadora
	err := r.db.WithContext(ctx).Where("serial = ?", serial).First(&c).Error
	return &c, err
}

func (r *computadoraRepo) List(ctx context.Context, filter dto.CatalogoFilter) ([]model.Computadora, error) {
	var computadoras []model.Computadora
	q := r.db.WithContext(ctx).Model(&model.Computadora{})

	switch filter.Disponible {
	case "false":
		q = q.Where("disponible = false")
	case "all":
		// no filter
	default:
		q = q.Where("disponible = true")
	}
	if filter.Busqueda != "" {
		like := "%" + filter.Busqueda + "%"
		q = q.Where("modelo ILIKE ? OR serial ILIKE ?", like, like)
	}
	if filter.Sucursal != "" {
		q = q.Where("sucursal = ?", filter.Sucursal)
	}

	err := q.Order("modelo ASC").Find(&computadoras).Error
	return computadoras, err
}

func (r *computadoraRepo) Update(ctx context.Context, c *model.Computadora) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *computadoraRepo) MarcarVendidaTx(tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := tx.Model(&model.Computadora{}).
		Where("id = ? AND disponible = true", id).
		Update("disponible", false)
	return res.RowsAffected, res.Error
}
