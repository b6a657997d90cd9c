package model

import "github.com/shopspring/decimal"

// Estado compartido por cupones, empleados, productos y categorías:
// 0 activo, 1 inactivo, 2 eliminado (soft delete).
const (
	EstadoActivo    = 0
	EstadoInactivo  = 1
	EstadoEliminado = 2
)

const (
	CuponPorcentaje = "porcentaje"
	CuponFijo       = "fijo"
)

// Cupon is a discount code. VecesUsado increments exactly once per order
// that redeemed it, at the moment that order is paid — never at creation.
type Cupon struct {
	ID         int64           `gorm:"column:idcupon;primaryKey;autoIncrement" json:"idcupon"`
	Nombre     string          `gorm:"not null;index" json:"nombre"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	Tipo       string          `gorm:"type:varchar(15);not null" json:"tipo"`
	VecesUsado int             `gorm:"not null;default:0" json:"veces_usado"`
	Estado     int             `gorm:"not null;default:0" json:"estado"`
}

func (Cupon) TableName() string { return "cupones" }
