package model

import "time"

// Roles de empleado.
const (
	RolAdministrador = "Administrador"
	RolAyudante      = "Ayudante"
)

// Empleado stores staff accounts with role-based login.
type Empleado struct {
	ID         int64     `gorm:"column:idempleado;primaryKey;autoIncrement" json:"idempleado"`
	Nombres    string    `gorm:"not null" json:"nombres"`
	Apellidos  string    `gorm:"not null" json:"apellidos"`
	Usuario    string    `gorm:"not null" json:"usuario"`
	Contrasena string    `gorm:"column:contrasena;not null" json:"-"`
	Rol        string    `gorm:"type:varchar(20);not null" json:"rol"`
	Estado     int       `gorm:"not null;default:0" json:"estado"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Empleado) TableName() string { return "empleados" }

// NombreCompleto is used in movement history and sales listings.
func (e *Empleado) NombreCompleto() string {
	return e.Nombres + " " + e.Apellidos
}
