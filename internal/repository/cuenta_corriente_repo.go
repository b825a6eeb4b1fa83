package repository

import (
	"context"

	"updatepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CuentaCorrienteRepository interface {
	Create(ctx context.Context, m *model.MovimientoCuenta) error
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.MovimientoCuenta, error)
	// SaldoCliente aggregates at read time: debe - haber over all entries.
	SaldoCliente(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error)
}

type cuentaCorrienteRepo struct{ db *gorm.DB }

func NewCuentaCorrienteRepository(db *gorm.DB) CuentaCorrienteRepository {
	return &cuentaCorrienteRepo{db: db}
}

func (r *cuentaCorrienteRepo) Create(ctx context.Context, m *model.MovimientoCuenta) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cuentaCorrienteRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.MovimientoCuenta, error) {
	var movimientos []model.MovimientoCuenta
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("fecha_operacion DESC").
		Find(&movimientos).Error
	return movimientos, err
}

func (r *cuentaCorrienteRepo) SaldoCliente(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error) {
	var saldo decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.MovimientoCuenta{}).
		Select("COALESCE(SUM(CASE WHEN tipo = 'debe' THEN monto ELSE -monto END), 0)").
		Where("cliente_id = ? AND estado = 'pendiente'", clienteID).
		Scan(&saldo).Error
	if err != nil || !saldo.Valid {
		return decimal.Zero, err
	}
	return saldo.Decimal, nil
}
