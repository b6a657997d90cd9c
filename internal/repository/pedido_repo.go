package repository

import (
	"context"
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PedidoFilter filters the order listing. Anulados are always excluded.
type PedidoFilter struct {
	Estado      *int
	FechaInicio *time.Time
	FechaFin    *time.Time
	Timezone    string
	SoloHoy     bool
}

type PedidoRepository interface {
	DB() *gorm.DB

	List(ctx context.Context, f PedidoFilter) ([]model.Pedido, error)
	FindByID(ctx context.Context, id int64) (*model.Pedido, error)
	Create(ctx context.Context, p *model.Pedido) error
	UpdateTx(tx *gorm.DB, p *model.Pedido) error
	ReplaceItemsTx(tx *gorm.DB, pedidoID int64, items []model.DetallePedido) error

	FindByIDTx(tx *gorm.DB, id int64, forUpdate bool) (*model.Pedido, error)
	UpdateEstadoTx(tx *gorm.DB, id int64, estado int) error
	ListItemsTx(tx *gorm.DB, pedidoID int64) ([]model.DetallePedido, error)
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) List(ctx context.Context, f PedidoFilter) ([]model.Pedido, error) {
	q := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Preload("Cupon").
		Preload("Items").
		Preload("Items.Producto").
		Where("estado <> ?", model.PedidoAnulado)

	if f.Estado != nil {
		q = q.Where("estado = ?", *f.Estado)
	}
	if f.SoloHoy {
		q = q.Where("DATE(fecha_hora AT TIME ZONE 'UTC' AT TIME ZONE ?) = (NOW() AT TIME ZONE ?)::date", f.Timezone, f.Timezone)
	} else {
		if f.FechaInicio != nil {
			q = q.Where("fecha_hora >= ?", *f.FechaInicio)
		}
		if f.FechaFin != nil {
			q = q.Where("fecha_hora <= ?", *f.FechaFin)
		}
	}

	var pedidos []model.Pedido
	err := q.Order("idpedido DESC").Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) FindByID(ctx context.Context, id int64) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cupon").
		Preload("Items").
		Preload("Items.Producto").
		First(&p, "idpedido = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) UpdateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Save(p).Error
}

// ReplaceItemsTx swaps an order's lines inside the caller's transaction.
// Editing an order rewrites its detail in full rather than diffing line
// by line.
func (r *pedidoRepo) ReplaceItemsTx(tx *gorm.DB, pedidoID int64, items []model.DetallePedido) error {
	if err := tx.Where("pedido_id = ?", pedidoID).Delete(&model.DetallePedido{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].PedidoID = pedidoID
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *pedidoRepo) FindByIDTx(tx *gorm.DB, id int64, forUpdate bool) (*model.Pedido, error) {
	q := tx
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p model.Pedido
	if err := q.First(&p, "idpedido = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) UpdateEstadoTx(tx *gorm.DB, id int64, estado int) error {
	return tx.Model(&model.Pedido{}).
		Where("idpedido = ?", id).
		Update("estado", estado).Error
}

func (r *pedidoRepo) ListItemsTx(tx *gorm.DB, pedidoID int64) ([]model.DetallePedido, error) {
	var items []model.DetallePedido
	err := tx.Preload("Producto").
		Where("pedido_id = ?", pedidoID).
		Order("iddetalle ASC").
		Find(&items).Error
	return items, err
}
