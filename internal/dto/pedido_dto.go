package dto

type LineaPedidoRequest struct {
	ProductoID int64 `json:"idproducto" validate:"required,gt=0"`
	Cantidad   int   `json:"cantidad" validate:"required,gt=0"`
}

type CrearPedidoRequest struct {
	NombreCliente string               `json:"nombre_cliente" validate:"required,max=100"`
	Tipo          string               `json:"tipo" validate:"required,max=30"`
	Notas         *string              `json:"notas" validate:"omitempty,max=500"`
	CuponID       *int64               `json:"idcupon" validate:"omitempty,gt=0"`
	Lineas        []LineaPedidoRequest `json:"detalle" validate:"required,min=1,dive"`
}

type PagarPedidoRequest struct {
	FormaPago string `json:"forma_pago" validate:"required,oneof=Efectivo Qr"`
}

type ResultadoPagoResponse struct {
	VentaID  int64 `json:"idventa"`
	PedidoID int64 `json:"idpedido"`
}
