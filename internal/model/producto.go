package model

import "github.com/shopspring/decimal"

// Producto belongs to a Categoria. Imagen holds the raw image bytes; the
// API exposes it as base64.
type Producto struct {
	ID          int64           `gorm:"column:idproducto;primaryKey;autoIncrement" json:"idproducto"`
	Nombre      string          `gorm:"not null" json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	CategoriaID int64           `gorm:"not null;index" json:"idcategoria"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio"`
	Imagen      []byte          `gorm:"type:bytea" json:"imagen,omitempty"`
	Estado      int             `gorm:"not null;default:0" json:"estado"`

	Categoria *Categoria `gorm:"foreignKey:CategoriaID" json:"categoria,omitempty"`
}

func (Producto) TableName() string { return "productos" }

type Categoria struct {
	ID     int64  `gorm:"column:idcategoria;primaryKey;autoIncrement" json:"idcategoria"`
	Nombre string `gorm:"not null;index" json:"nombre"`
	Estado int    `gorm:"not null;default:0" json:"estado"`
}

func (Categoria) TableName() string { return "categorias" }
