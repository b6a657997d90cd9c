package dto

import "github.com/shopspring/decimal"

type AbrirCajaRequest struct {
	Monto       decimal.Decimal `json:"monto" validate:"min=0"`
	Descripcion string          `json:"descripcion" validate:"max=255"`
}

type CerrarCajaRequest struct {
	Monto       decimal.Decimal `json:"monto" validate:"min=0"`
	Descripcion string          `json:"descripcion" validate:"max=255"`
}

type MovimientoManualRequest struct {
	Tipo        string          `json:"tipo" validate:"required,oneof=Ingreso Egreso"`
	Monto       decimal.Decimal `json:"monto" validate:"gt=0"`
	Descripcion string          `json:"descripcion" validate:"required,max=255"`
}

type SaldoResponse struct {
	Saldo decimal.Decimal `json:"saldo"`
}

type TotalesCajaResponse struct {
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
}
