package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido. Las transiciones válidas son
// Pendiente→Pagado→Entregado y Pendiente→Anulado; todo lo demás se rechaza.
const (
	PedidoPendiente = 0
	PedidoPagado    = 1
	PedidoEntregado = 2
	PedidoAnulado   = 3
)

// Pedido is a customer order. Total must always equal Subtotal − Descuento.
type Pedido struct {
	ID            int64           `gorm:"column:idpedido;primaryKey;autoIncrement" json:"idpedido"`
	NombreCliente string          `gorm:"not null" json:"nombre_cliente"`
	Tipo          string          `gorm:"type:varchar(30);not null" json:"tipo"`
	Notas         *string         `json:"notas"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Descuento     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"descuento"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CuponID       *int64          `json:"idcupon"`
	EmpleadoID    int64           `gorm:"not null" json:"idempleado"`
	Estado        int             `gorm:"not null;default:0;index" json:"estado"`
	FechaHora     time.Time       `gorm:"autoCreateTime;index" json:"fecha_hora"`

	Cupon *Cupon          `gorm:"foreignKey:CuponID" json:"cupon,omitempty"`
	Items []DetallePedido `gorm:"foreignKey:PedidoID" json:"detalle,omitempty"`
}

func (Pedido) TableName() string { return "pedidos" }

// DetallePedido is one product line of a Pedido. Lines are replaced
// wholesale when the order is edited before payment.
type DetallePedido struct {
	ID             int64           `gorm:"column:iddetalle;primaryKey;autoIncrement" json:"iddetalle"`
	PedidoID       int64           `gorm:"not null;index" json:"idpedido"`
	ProductoID     int64           `gorm:"not null" json:"idproducto"`
	Cantidad       int             `gorm:"not null" json:"cantidad"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio_unitario"`
	SubtotalLinea  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal_linea"`

	Producto *Producto `gorm:"foreignKey:ProductoID" json:"producto,omitempty"`
}

func (DetallePedido) TableName() string { return "detalle_pedido" }
