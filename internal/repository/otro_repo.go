package repository

import (
	"context"

	"updatepos/internal/dto"
	"updatepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OtroRepository interface {
	Create(ctx context.Context, o *model.Otro) error
	CreateTx(tx *gorm.DB, o *model.Otro) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Otro, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Otro, error)
	List(ctx context.Context, filter dto.CatalogoFilter) ([]model.Otro, error)
	Update(ctx context.Context, o *model.Otro) error

	// DescontarStockTx applies a guarded decrement to both branch counters:
	// the UPDATE asserts the quantities read beforehand, so a concurrent
	// checkout of the same product shows up as RowsAffected == 0 and the
	// caller re-reads and retries.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, tomaLaPlata, tomaMitre, prevLaPlata, prevMitre int) (int64, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, sucursal string, delta int) error
}

type otroRepo struct{ db *gorm.DB }

func NewOtroRepository(db *gorm.DB) OtroRepository { return &otroRepo{db: db} }

func (r *otroRepo) Create(ctx context.Context, o *model.Otro) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *otroRepo) CreateTx(tx *gorm.DB, o *model.Otro) error {
	return tx.Create(o).Error
}

func (r *otroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Otro, error) {
	var o model.Otro
	err := r.db.WithContext(ctx).First(&o, id).Error
	return &o, err
}

func (r *otroRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Otro, error) {
	var o model.Otro
	err := tx.First(&o, id).Error
	return &o, err
}

func (r *otroRepo) List(ctx context.Context, filter dto.CatalogoFilter) ([]model.Otro, error) {
	var otros []model.Otro
	q := r.db.WithContext(ctx).Model(&model.Otro{})

	if filter.Busqueda != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Busqueda+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	switch filter.Sucursal {
	case model.SucursalLaPlata:
		q = q.Where("stock_la_plata > 0")
	case model.SucursalMitre:
		q = q.Where("stock_mitre > 0")
	}

	err := q.Order("nombre ASC").Find(&otros).Error
	return otros, err
}

func (r *otroRepo) Update(ctx context.Context, o *model.Otro) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *otroRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, tomaLaPlata, tomaMitre, prevLaPlata, prevMitre int) (int64, error) {
	res := tx.Model(&model.Otro{}).
		Where("id = ? AND stock_la_plata = ? AND stock_mitre = ?", id, prevLaPlata, prevMitre).
		Updates(map[string]interface{}{
			"stock_la_plata": gorm.Expr("stock_la_plata - ?", tomaLaPlata),
			"stock_mitre":    gorm.Expr("stock_mitre - ?", tomaMitre),
		})
	return res.RowsAffected, res.Error
}

func (r *otroRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Otro{}, id).Error
}

func (r *otroRepo) AjustarStock(ctx context.Context, id uuid.UUID, sucursal string, delta int) error {
	col := "stock_la_plata"
	if sucursal == model.SucursalMitre {
		col = "stock_mitre"
	}
	return r.db.WithContext(ctx).Model(&model.Otro{}).
		Where("id = ?", id).
		Update(col, gorm.Expr(col+" + ?", delta)).Error
}
