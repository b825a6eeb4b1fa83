package repository

import (
	"context"

	"updatepos/internal/model"

	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, a *model.Auditoria) error
	List(ctx context.Context, limit int) ([]model.Auditoria, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Create(ctx context.Context, a *model.Auditoria) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auditoriaRepo) List(ctx context.Context, limit int) ([]model.Auditoria, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var eventos []model.Auditoria
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&eventos).Error
	return eventos, err
}
