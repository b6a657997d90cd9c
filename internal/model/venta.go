package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago aceptadas al liquidar un pedido.
const (
	PagoEfectivo = "Efectivo"
	PagoQr       = "Qr"
)

// Venta is the immutable settlement record created exactly once per Pedido
// when payment is processed. Amounts are snapshotted from the order so later
// price changes never alter historical sales.
type Venta struct {
	ID         int64           `gorm:"column:idventa;primaryKey;autoIncrement" json:"idventa"`
	EmpleadoID int64           `gorm:"not null;index" json:"idempleado"`
	PedidoID   int64           `gorm:"not null;uniqueIndex" json:"idpedido"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Descuento  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"descuento"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	FormaPago  string          `gorm:"type:varchar(10);not null" json:"forma_pago"`
	FechaHora  time.Time       `gorm:"autoCreateTime;index" json:"fecha_hora"`

	Empleado *Empleado      `gorm:"foreignKey:EmpleadoID" json:"empleado,omitempty"`
	Items    []DetalleVenta `gorm:"foreignKey:VentaID" json:"detalle,omitempty"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta copies each DetallePedido line into the sale at settlement.
type DetalleVenta struct {
	ID             int64           `gorm:"column:iddetalle;primaryKey;autoIncrement" json:"iddetalle"`
	VentaID        int64           `gorm:"not null;index" json:"idventa"`
	ProductoID     int64           `gorm:"not null" json:"idproducto"`
	Cantidad       int             `gorm:"not null" json:"cantidad"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio_unitario"`
	SubtotalLinea  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal_linea"`

	Producto *Producto `gorm:"foreignKey:ProductoID" json:"producto,omitempty"`
}

func (DetalleVenta) TableName() string { return "detalle_venta" }
