package repository

import (
	"context"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"

	"gorm.io/gorm"
)

type EmpleadoRepository interface {
	DB() *gorm.DB

	List(ctx context.Context) ([]model.Empleado, error)
	FindByID(ctx context.Context, id int64) (*model.Empleado, error)
	FindByUsuario(ctx context.Context, usuario string) (*model.Empleado, error)
	Create(ctx context.Context, e *model.Empleado) error
	Update(ctx context.Context, e *model.Empleado) error

	FindActivoByIDTx(tx *gorm.DB, id int64) (*model.Empleado, error)
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepository(db *gorm.DB) EmpleadoRepository { return &empleadoRepo{db: db} }

func (r *empleadoRepo) DB() *gorm.DB { return r.db }

func (r *empleadoRepo) List(ctx context.Context) ([]model.Empleado, error) {
	var empleados []model.Empleado
	err := r.db.WithContext(ctx).
		Where("estado <> ?", model.EstadoEliminado).
		Order("idempleado ASC").
		Find(&empleados).Error
	return empleados, err
}

func (r *empleadoRepo) FindByID(ctx context.Context, id int64) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).
		Where("estado <> ?", model.EstadoEliminado).
		First(&e, "idempleado = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empleadoRepo) FindByUsuario(ctx context.Context, usuario string) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).
		Where("usuario = ? AND estado <> ?", usuario, model.EstadoEliminado).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empleadoRepo) Create(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empleadoRepo) Update(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empleadoRepo) FindActivoByIDTx(tx *gorm.DB, id int64) (*model.Empleado, error) {
	var e model.Empleado
	err := tx.Where("idempleado = ? AND estado = ?", id, model.EstadoActivo).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
