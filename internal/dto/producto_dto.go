package dto

import "github.com/shopspring/decimal"

type ProductoRequest struct {
	Nombre      string          `json:"nombre" validate:"required,max=100"`
	Descripcion *string         `json:"descripcion" validate:"omitempty,max=500"`
	CategoriaID int64           `json:"idcategoria" validate:"required,gt=0"`
	Precio      decimal.Decimal `json:"precio" validate:"gt=0"`
	Imagen      *string         `json:"imagen" validate:"omitempty"`
}

type CategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=50"`
}
