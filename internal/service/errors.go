package service

import "errors"

// Sentinel errors shared by the caja and venta engines. Handlers map them to
// HTTP status codes with errors.Is; the message is what the client sees.
var (
	// Caja
	ErrCajaYaAbierta     = errors.New("Ya existe una caja abierta")
	ErrCajaNoAbierta     = errors.New("No hay caja abierta. Debe abrir caja primero.")
	ErrSaldoInsuficiente = errors.New("Saldo insuficiente")
	ErrMontoInvalido     = errors.New("El monto debe ser mayor a cero")
	ErrCierreNoCoincide  = errors.New("El monto de cierre no coincide con el saldo actual")

	// Pedidos / ventas
	ErrPedidoNoEncontrado   = errors.New("Pedido no encontrado")
	ErrEstadoPedidoInvalido = errors.New("El pedido no está en un estado válido para esta operación")
	ErrEmpleadoNoEncontrado = errors.New("Empleado no encontrado o inactivo")
	ErrPedidoSinLineas      = errors.New("El pedido debe tener al menos un producto")
	ErrCantidadInvalida     = errors.New("La cantidad debe ser mayor a cero")
	ErrVentaDuplicada       = errors.New("Ya existe una venta para este pedido")
	ErrVentaNoEncontrada    = errors.New("Venta no encontrada")
	ErrTotalInconsistente   = errors.New("El total no coincide con subtotal menos descuento")
	ErrFormaPagoInvalida    = errors.New("Forma de pago inválida")

	// Cupones
	ErrCuponNoEncontrado = errors.New("Cupón no encontrado")
	ErrCuponDuplicado    = errors.New("Ya existe un cupón con este nombre")

	// Catálogo
	ErrProductoNoEncontrado  = errors.New("Producto no encontrado")
	ErrCategoriaNoEncontrada = errors.New("Categoría no encontrada")
	ErrCategoriaDuplicada    = errors.New("Ya existe una categoría con ese nombre")
	ErrCategoriaInactiva     = errors.New("La categoría seleccionada no existe o no está activa")

	// Usuarios
	ErrUsuarioNoEncontrado = errors.New("Usuario no encontrado")
	ErrUsuarioDuplicado    = errors.New("Ya existe un usuario con ese nombre de usuario")
	ErrCredenciales        = errors.New("Credenciales inválidas")
	ErrUsuarioInactivo     = errors.New("Usuario inactivo")
	ErrRolInvalido         = errors.New("Rol inválido")
)
