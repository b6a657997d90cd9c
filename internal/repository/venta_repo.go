package repository

import (
	"context"
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaFilter filters sales listings and aggregates.
type VentaFilter struct {
	FechaInicio *time.Time
	FechaFin    *time.Time
	FormaPago   string
	Timezone    string
	SoloHoy     bool
}

// TotalesVenta splits the aggregate by payment method.
type TotalesVenta struct {
	Total    decimal.Decimal `json:"total"`
	Efectivo decimal.Decimal `json:"efectivo"`
	Qr       decimal.Decimal `json:"qr"`
	Cantidad int64           `json:"cantidad"`
}

type VentaRepository interface {
	DB() *gorm.DB

	CreateTx(tx *gorm.DB, v *model.Venta) error
	ExistsByPedidoTx(tx *gorm.DB, pedidoID int64) (bool, error)

	FindByID(ctx context.Context, id int64) (*model.Venta, error)
	FindByPedido(ctx context.Context, pedidoID int64) (*model.Venta, error)
	List(ctx context.Context, f VentaFilter) ([]model.Venta, error)
	Totales(ctx context.Context, f VentaFilter) (*TotalesVenta, error)
	TopProductos(ctx context.Context, f VentaFilter, limite int) ([]ProductoVendido, error)
}

// ProductoVendido aggregates sale lines per product for reporting.
type ProductoVendido struct {
	ProductoID int64           `json:"idproducto"`
	Nombre     string          `json:"nombre"`
	Cantidad   int64           `json:"cantidad"`
	Importe    decimal.Decimal `json:"importe"`
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) ExistsByPedidoTx(tx *gorm.DB, pedidoID int64) (bool, error) {
	var n int64
	err := tx.Model(&model.Venta{}).Where("pedido_id = ?", pedidoID).Count(&n).Error
	return n > 0, err
}

func (r *ventaRepo) FindByID(ctx context.Context, id int64) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		Preload("Items").
		Preload("Items.Producto").
		First(&v, "idventa = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByPedido(ctx context.Context, pedidoID int64) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		Preload("Items").
		Preload("Items.Producto").
		First(&v, "pedido_id = ?", pedidoID).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context, f VentaFilter) ([]model.Venta, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Venta{}), f).
		Preload("Empleado").
		Preload("Items").
		Preload("Items.Producto")

	var ventas []model.Venta
	err := q.Order("idventa DESC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) Totales(ctx context.Context, f VentaFilter) (*TotalesVenta, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Venta{}), f)

	var row struct {
		Total    decimal.Decimal
		Efectivo decimal.Decimal
		Qr       decimal.Decimal
		Cantidad int64
	}
	err := q.Select(`COALESCE(SUM(total), 0) AS total,
		COALESCE(SUM(CASE WHEN forma_pago = 'Efectivo' THEN total ELSE 0 END), 0) AS efectivo,
		COALESCE(SUM(CASE WHEN forma_pago = 'Qr' THEN total ELSE 0 END), 0) AS qr,
		COUNT(*) AS cantidad`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &TotalesVenta{Total: row.Total, Efectivo: row.Efectivo, Qr: row.Qr, Cantidad: row.Cantidad}, nil
}

func (r *ventaRepo) TopProductos(ctx context.Context, f VentaFilter, limite int) ([]ProductoVendido, error) {
	if limite <= 0 {
		limite = 10
	}
	q := r.db.WithContext(ctx).Model(&model.DetalleVenta{}).
		Joins("JOIN ventas ON ventas.idventa = detalle_venta.venta_id").
		Joins("JOIN productos ON productos.idproducto = detalle_venta.producto_id")

	if f.SoloHoy {
		q = q.Where("DATE(ventas.fecha_hora AT TIME ZONE 'UTC' AT TIME ZONE ?) = (NOW() AT TIME ZONE ?)::date", f.Timezone, f.Timezone)
	} else {
		if f.FechaInicio != nil {
			q = q.Where("ventas.fecha_hora >= ?", *f.FechaInicio)
		}
		if f.FechaFin != nil {
			q = q.Where("ventas.fecha_hora <= ?", *f.FechaFin)
		}
	}

	var top []ProductoVendido
	err := q.Select(`detalle_venta.producto_id AS producto_id,
		productos.nombre AS nombre,
		SUM(detalle_venta.cantidad) AS cantidad,
		SUM(detalle_venta.subtotal_linea) AS importe`).
		Group("detalle_venta.producto_id, productos.nombre").
		Order("cantidad DESC").
		Limit(limite).
		Scan(&top).Error
	return top, err
}

func (r *ventaRepo) applyFilter(q *gorm.DB, f VentaFilter) *gorm.DB {
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
	if f.FormaPago != "" {
		q = q.Where("forma_pago = ?", f.FormaPago)
	}
	return q
}
