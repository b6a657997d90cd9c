package repository

import (
	"context"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"

	"gorm.io/gorm"
)

type ProductoRepository interface {
	DB() *gorm.DB

	List(ctx context.Context, categoriaID *int64, incluirInactivos bool) ([]model.Producto, error)
	FindByID(ctx context.Context, id int64) (*model.Producto, error)
	Create(ctx context.Context, p *model.Producto) error
	Update(ctx context.Context, p *model.Producto) error

	FindByIDTx(tx *gorm.DB, id int64) (*model.Producto, error)

	ListCategorias(ctx context.Context, incluirInactivas bool) ([]model.Categoria, error)
	FindCategoriaByID(ctx context.Context, id int64) (*model.Categoria, error)
	FindCategoriaByNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	FindCategoriaEliminadaByNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	CreateCategoria(ctx context.Context, c *model.Categoria) error
	UpdateCategoria(ctx context.Context, c *model.Categoria) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) List(ctx context.Context, categoriaID *int64, incluirInactivos bool) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Preload("Categoria").
		Where("estado <> ?", model.EstadoEliminado)
	if !incluirInactivos {
		q = q.Where("estado = ?", model.EstadoActivo)
	}
	if categoriaID != nil {
		q = q.Where("categoria_id = ?", *categoriaID)
	}
	var productos []model.Producto
	err := q.Order("idproducto ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) FindByID(ctx context.Context, id int64) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").
		Where("estado <> ?", model.EstadoEliminado).
		First(&p, "idproducto = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id int64) (*model.Producto, error) {
	var p model.Producto
	if err := tx.First(&p, "idproducto = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) ListCategorias(ctx context.Context, incluirInactivas bool) ([]model.Categoria, error) {
	q := r.db.WithContext(ctx).Where("estado <> ?", model.EstadoEliminado)
	if !incluirInactivas {
		q = q.Where("estado = ?", model.EstadoActivo)
	}
	var categorias []model.Categoria
	err := q.Order("idcategoria ASC").Find(&categorias).Error
	return categorias, err
}

func (r *productoRepo) FindCategoriaByID(ctx context.Context, id int64) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("estado <> ?", model.EstadoEliminado).
		First(&c, "idcategoria = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *productoRepo) FindCategoriaByNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) = LOWER(?) AND estado <> ?", nombre, model.EstadoEliminado).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *productoRepo) FindCategoriaEliminadaByNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) = LOWER(?) AND estado = ?", nombre, model.EstadoEliminado).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *productoRepo) CreateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *productoRepo) UpdateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}
