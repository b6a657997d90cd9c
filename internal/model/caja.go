package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de caja. Hay una sola caja física compartida entre empleados;
// cada ciclo apertura/cierre crea una fila nueva y la "caja actual" es
// siempre la de mayor idcaja.
const (
	CajaAbierta = "Abierto"
	CajaCerrada = "Cerrado"
)

// Caja represents one open/close cycle of the shared cash drawer.
// MontoCierre stays nil while the session is open, except when cash sales
// keep a running balance on it (see VentaService).
type Caja struct {
	ID            int64            `gorm:"column:idcaja;primaryKey;autoIncrement" json:"idcaja"`
	Estado        string           `gorm:"type:varchar(10);not null;default:'Abierto'" json:"estado"`
	MontoApertura decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"monto_apertura"`
	MontoCierre   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"monto_cierre"`
	EmpleadoID    int64            `gorm:"not null;index" json:"idempleado"`
	FechaApertura time.Time        `gorm:"autoCreateTime" json:"fecha_apertura"`
	FechaCierre   *time.Time       `json:"fecha_cierre"`

	Empleado    *Empleado        `gorm:"foreignKey:EmpleadoID" json:"empleado,omitempty"`
	Movimientos []MovimientoCaja `gorm:"foreignKey:CajaID" json:"movimientos,omitempty"`
}

func (Caja) TableName() string { return "caja" }

// Tipos de movimiento. Apertura y Cierre son informativos (auditoría);
// solo Ingreso y Egreso afectan el saldo.
const (
	MovimientoApertura = "Apertura"
	MovimientoIngreso  = "Ingreso"
	MovimientoEgreso   = "Egreso"
	MovimientoCierre   = "Cierre"
)

// MovimientoCaja is an append-only ledger entry tied to a Caja session.
// Monto is always non-negative; the sign is implied by Tipo.
type MovimientoCaja struct {
	ID          int64           `gorm:"column:idmovimiento;primaryKey;autoIncrement" json:"idmovimiento"`
	CajaID      int64           `gorm:"not null;index" json:"idcaja"`
	Tipo        string          `gorm:"type:varchar(10);not null" json:"tipo"`
	Descripcion string          `gorm:"not null" json:"descripcion"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	EmpleadoID  int64           `gorm:"not null;index" json:"idempleado"`
	FechaHora   time.Time       `gorm:"autoCreateTime;index" json:"fecha_hora"`

	Empleado *Empleado `gorm:"foreignKey:EmpleadoID" json:"empleado,omitempty"`
}

func (MovimientoCaja) TableName() string { return "movimiento_caja" }
