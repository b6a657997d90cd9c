package repository

import (
	"context"
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// advisory lock key for the single shared drawer; serializes open/close and
// the cash branch of payment settlement across concurrent transactions.
const cajaLockKey = 874001

// MovimientoFilter narrows the movement listing. Empty dates mean "today"
// in the given timezone.
type MovimientoFilter struct {
	FechaInicio *time.Time
	FechaFin    *time.Time
	Tipo        string
	Timezone    string
}

type CajaRepository interface {
	DB() *gorm.DB

	// Reads outside transactions
	FindUltima(ctx context.Context) (*model.Caja, error)
	FindAbierta(ctx context.Context) (*model.Caja, error)
	FindUltimaCerrada(ctx context.Context) (*model.Caja, error)
	SumMovimientos(ctx context.Context, cajaID int64) (ingresos, egresos decimal.Decimal, err error)

	// Transactional variants used by the engines
	LockCajaTx(tx *gorm.DB) error
	FindAbiertaTx(tx *gorm.DB) (*model.Caja, error)
	FindUltimaTx(tx *gorm.DB) (*model.Caja, error)
	FindUltimaCerradaTx(tx *gorm.DB) (*model.Caja, error)
	CreateTx(tx *gorm.DB, c *model.Caja) error
	UpdateTx(tx *gorm.DB, c *model.Caja) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	SumMovimientosTx(tx *gorm.DB, cajaID int64) (ingresos, egresos decimal.Decimal, err error)

	// Reporting
	ListMovimientos(ctx context.Context, f MovimientoFilter) ([]model.MovimientoCaja, error)
	HistorialDelDia(ctx context.Context, empleadoID *int64, tz string) ([]model.MovimientoCaja, error)
	TotalesPorTipo(ctx context.Context, f MovimientoFilter) (ingresos, egresos decimal.Decimal, err error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) FindUltima(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Order("idcaja DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.CajaAbierta).
		Order("idcaja DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindUltimaCerrada(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.CajaCerrada).
		Order("idcaja DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) SumMovimientos(ctx context.Context, cajaID int64) (decimal.Decimal, decimal.Decimal, error) {
	return r.sumMovimientos(r.db.WithContext(ctx), cajaID)
}

// LockCajaTx takes a transaction-scoped advisory lock so that two concurrent
// open/close/settlement attempts never interleave their SELECT-then-INSERT.
func (r *cajaRepo) LockCajaTx(tx *gorm.DB) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", cajaLockKey).Error
}

func (r *cajaRepo) FindAbiertaTx(tx *gorm.DB) (*model.Caja, error) {
	var c model.Caja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("estado = ?", model.CajaAbierta).
		Order("idcaja DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindUltimaTx(tx *gorm.DB) (*model.Caja, error) {
	var c model.Caja
	err := tx.Order("idcaja DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindUltimaCerradaTx(tx *gorm.DB) (*model.Caja, error) {
	var c model.Caja
	err := tx.Where("estado = ?", model.CajaCerrada).
		Order("idcaja DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) CreateTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Create(c).Error
}

func (r *cajaRepo) UpdateTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Save(c).Error
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *cajaRepo) SumMovimientosTx(tx *gorm.DB, cajaID int64) (decimal.Decimal, decimal.Decimal, error) {
	return r.sumMovimientos(tx, cajaID)
}

func (r *cajaRepo) sumMovimientos(db *gorm.DB, cajaID int64) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		TotalIngresos decimal.Decimal
		TotalEgresos  decimal.Decimal
	}
	err := db.Model(&model.MovimientoCaja{}).
		Select(`COALESCE(SUM(CASE WHEN tipo = 'Ingreso' THEN monto ELSE 0 END), 0) AS total_ingresos,
			COALESCE(SUM(CASE WHEN tipo = 'Egreso' THEN monto ELSE 0 END), 0) AS total_egresos`).
		Where("caja_id = ? AND tipo IN ('Ingreso', 'Egreso')", cajaID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.TotalIngresos, row.TotalEgresos, nil
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, f MovimientoFilter) ([]model.MovimientoCaja, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoCaja{}).Preload("Empleado")

	if f.FechaInicio == nil && f.FechaFin == nil {
		// Default: today's movements in the shop's timezone
		q = q.Where("DATE(fecha_hora AT TIME ZONE 'UTC' AT TIME ZONE ?) = (NOW() AT TIME ZONE ?)::date", f.Timezone, f.Timezone)
	} else {
		if f.FechaInicio != nil {
			q = q.Where("fecha_hora >= ?", *f.FechaInicio)
		}
		if f.FechaFin != nil {
			q = q.Where("fecha_hora <= ?", *f.FechaFin)
		}
	}
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}

	var movs []model.MovimientoCaja
	err := q.Order("fecha_hora DESC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) HistorialDelDia(ctx context.Context, empleadoID *int64, tz string) ([]model.MovimientoCaja, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoCaja{}).Preload("Empleado").
		Where("DATE(fecha_hora AT TIME ZONE 'UTC' AT TIME ZONE ?) = (NOW() AT TIME ZONE ?)::date", tz, tz)
	if empleadoID != nil {
		q = q.Where("empleado_id = ?", *empleadoID)
	}
	var movs []model.MovimientoCaja
	err := q.Order("fecha_hora DESC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) TotalesPorTipo(ctx context.Context, f MovimientoFilter) (decimal.Decimal, decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoCaja{}).
		Where("tipo IN ('Ingreso', 'Egreso')")

	if f.FechaInicio == nil && f.FechaFin == nil {
		q = q.Where("DATE(fecha_hora AT TIME ZONE 'UTC' AT TIME ZONE ?) = (NOW() AT TIME ZONE ?)::date", f.Timezone, f.Timezone)
	} else {
		if f.FechaInicio != nil {
			q = q.Where("fecha_hora >= ?", *f.FechaInicio)
		}
		if f.FechaFin != nil {
			q = q.Where("fecha_hora <= ?", *f.FechaFin)
		}
	}

	var row struct {
		TotalIngresos decimal.Decimal
		TotalEgresos  decimal.Decimal
	}
	err := q.Select(`COALESCE(SUM(CASE WHEN tipo = 'Ingreso' THEN monto ELSE 0 END), 0) AS total_ingresos,
		COALESCE(SUM(CASE WHEN tipo = 'Egreso' THEN monto ELSE 0 END), 0) AS total_egresos`).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.TotalIngresos, row.TotalEgresos, nil
}
