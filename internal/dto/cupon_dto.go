package dto

import "github.com/shopspring/decimal"

type CuponRequest struct {
	Nombre string          `json:"nombre" validate:"required,max=50"`
	Monto  decimal.Decimal `json:"monto" validate:"gt=0"`
	Tipo   string          `json:"tipo" validate:"required,oneof=porcentaje fijo"`
}

type CambiarEstadoRequest struct {
	Estado int `json:"estado" validate:"min=0,max=1"`
}
