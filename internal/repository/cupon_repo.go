package repository

import (
	"context"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"

	"gorm.io/gorm"
)

type CuponRepository interface {
	DB() *gorm.DB

	List(ctx context.Context, incluirInactivos bool) ([]model.Cupon, error)
	FindByID(ctx context.Context, id int64) (*model.Cupon, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Cupon, error)
	Create(ctx context.Context, c *model.Cupon) error
	Update(ctx context.Context, c *model.Cupon) error

	FindByIDTx(tx *gorm.DB, id int64) (*model.Cupon, error)
	IncrementUsoTx(tx *gorm.DB, id int64) error
}

type cuponRepo struct{ db *gorm.DB }

func NewCuponRepository(db *gorm.DB) CuponRepository { return &cuponRepo{db: db} }

func (r *cuponRepo) DB() *gorm.DB { return r.db }

func (r *cuponRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Cupon, error) {
	q := r.db.WithContext(ctx).Where("estado <> ?", model.EstadoEliminado)
	if !incluirInactivos {
		q = q.Where("estado = ?", model.EstadoActivo)
	}
	var cupones []model.Cupon
	err := q.Order("idcupon DESC").Find(&cupones).Error
	return cupones, err
}

func (r *cuponRepo) FindByID(ctx context.Context, id int64) (*model.Cupon, error) {
	var c model.Cupon
	err := r.db.WithContext(ctx).
		Where("estado <> ?", model.EstadoEliminado).
		First(&c, "idcupon = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuponRepo) FindByNombre(ctx context.Context, nombre string) (*model.Cupon, error) {
	var c model.Cupon
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) = LOWER(?) AND estado <> ?", nombre, model.EstadoEliminado).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuponRepo) Create(ctx context.Context, c *model.Cupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuponRepo) Update(ctx context.Context, c *model.Cupon) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cuponRepo) FindByIDTx(tx *gorm.DB, id int64) (*model.Cupon, error) {
	var c model.Cupon
	if err := tx.First(&c, "idcupon = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuponRepo) IncrementUsoTx(tx *gorm.DB, id int64) error {
	return tx.Model(&model.Cupon{}).
		Where("idcupon = ?", id).
		UpdateColumn("veces_usado", gorm.Expr("veces_usado + 1")).Error
}
