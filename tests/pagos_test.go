package tests

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	llamadas int32
	ultimaID int64
}

func (f *fakeEnqueuer) EncolarRecibo(_ context.Context, ventaID int64) {
	atomic.AddInt32(&f.llamadas, 1)
	f.ultimaID = ventaID
}

var _ service.ReciboEnqueuer = (*fakeEnqueuer)(nil)

type ventaFixture struct {
	ventas    *fakeVentaRepo
	pedidos   *fakePedidoRepo
	cupones   *fakeCuponRepo
	empleados *fakeEmpleadoRepo
	caja      *fakeCajaRepo
	enqueuer  *fakeEnqueuer
	svc       service.VentaService
	cajaSvc   service.CajaService
}

func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	f := &ventaFixture{
		ventas:    newFakeVentaRepo(),
		pedidos:   newFakePedidoRepo(),
		cupones:   newFakeCuponRepo(),
		empleados: newFakeEmpleadoRepo(),
		caja:      newFakeCajaRepo(),
		enqueuer:  &fakeEnqueuer{},
	}
	f.cajaSvc = service.NewCajaService(f.caja, "America/La_Paz", zerolog.Nop())
	f.svc = service.NewVentaService(
		f.ventas, f.pedidos, f.cupones, f.empleados,
		f.cajaSvc, f.enqueuer, "America/La_Paz", zerolog.Nop(),
	)

	require.NoError(t, f.empleados.Create(context.Background(), &model.Empleado{
		Nombres:   "Sato",
		Apellidos: "Yamada",
		Usuario:   "sato",
		Rol:       model.RolAyudante,
		Estado:    model.EstadoActivo,
	}))
	return f
}

func (f *ventaFixture) pedidoPendiente(t *testing.T, total string, cuponID *int64) *model.Pedido {
	t.Helper()
	monto := dec(total)
	pedido := &model.Pedido{
		NombreCliente: "Mesa 3",
		Tipo:          "local",
		Subtotal:      monto,
		Descuento:     dec("0"),
		Total:         monto,
		CuponID:       cuponID,
		EmpleadoID:    1,
		Estado:        model.PedidoPendiente,
		Items: []model.DetallePedido{
			{ProductoID: 1, Cantidad: 2, PrecioUnitario: monto.Div(dec("2")), SubtotalLinea: monto},
		},
	}
	require.NoError(t, f.pedidos.Create(context.Background(), pedido))
	return pedido
}

func TestPagoEfectivoAbreCajaAutomaticamente(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()
	pedido := f.pedidoPendiente(t, "80", nil)

	res, err := f.svc.ProcesarPago(ctx, pedido.ID, model.PagoEfectivo, 1)
	require.NoError(t, err)
	assert.Equal(t, pedido.ID, res.PedidoID)

	// A session opened on the fly with apertura cero, holding the sale.
	estado, err := f.cajaSvc.EstadoActual(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CajaAbierta, estado.Estado)
	assert.True(t, estado.MontoApertura.IsZero())
	assert.True(t, estado.Saldo.Equal(dec("80")))
	require.NotNil(t, estado.MontoCierre)
	assert.True(t, estado.MontoCierre.Equal(dec("80")))

	assert.Equal(t, model.PedidoPagado, pedido.Estado)
	assert.Equal(t, int32(1), f.enqueuer.llamadas)
	assert.Equal(t, res.VentaID, f.enqueuer.ultimaID)
}

func TestPagoEfectivoAperturaAutomaticaArrastraCierre(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()

	_, err := f.cajaSvc.Abrir(ctx, dec("100"), "", 1)
	require.NoError(t, err)
	_, err = f.cajaSvc.Cerrar(ctx, dec("100"), "", 1)
	require.NoError(t, err)

	pedido := f.pedidoPendiente(t, "25", nil)
	_, err = f.svc.ProcesarPago(ctx, pedido.ID, model.PagoEfectivo, 1)
	require.NoError(t, err)

	estado, err := f.cajaSvc.EstadoActual(ctx)
	require.NoError(t, err)
	assert.True(t, estado.MontoApertura.Equal(dec("100")))
	assert.True(t, estado.Saldo.Equal(dec("125")))
}

func TestPagoEfectivoConCajaAbierta(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()

	_, err := f.cajaSvc.Abrir(ctx, dec("50"), "", 1)
	require.NoError(t, err)

	pedido := f.pedidoPendiente(t, "30", nil)
	_, err = f.svc.ProcesarPago(ctx, pedido.ID, model.PagoEfectivo, 1)
	require.NoError(t, err)

	saldo, err := f.cajaSvc.Saldo(ctx)
	require.NoError(t, err)
	assert.True(t, saldo.Equal(dec("80")))

	// Only one session was created.
	assert.Len(t, f.caja.cajas, 1)
}

func TestPagoQrNoTocaCaja(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()
	pedido := f.pedidoPendiente(t, "80", nil)

	res, err := f.svc.ProcesarPago(ctx, pedido.ID, model.PagoQr, 1)
	require.NoError(t, err)

	assert.Empty(t, f.caja.cajas)
	assert.Empty(t, f.caja.movimientos)

	venta, err := f.svc.Detalle(ctx, res.VentaID)
	require.NoError(t, err)
	assert.Equal(t, model.PagoQr, venta.FormaPago)
	assert.True(t, venta.Total.Equal(dec("80")))
	assert.Len(t, venta.Items, 1)
}

func TestPagoFormaInvalida(t *testing.T) {
	f := newVentaFixture(t)
	pedido := f.pedidoPendiente(t, "10", nil)

	_, err := f.svc.ProcesarPago(context.Background(), pedido.ID, "Transferencia", 1)
	assert.ErrorIs(t, err, service.ErrFormaPagoInvalida)
}

func TestPagoPedidoInexistente(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.ProcesarPago(context.Background(), 999, model.PagoEfectivo, 1)
	assert.ErrorIs(t, err, service.ErrPedidoNoEncontrado)
}

func TestPagoPedidoAnulado(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()
	pedido := f.pedidoPendiente(t, "10", nil)
	pedido.Estado = model.PedidoAnulado

	_, err := f.svc.ProcesarPago(ctx, pedido.ID, model.PagoEfectivo, 1)
	assert.ErrorIs(t, err, service.ErrPedidoNoEncontrado)
}

func TestPagoPedidoYaPagado(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()
	pedido := f.pedidoPendiente(t, "40", nil)

	_, err := f.svc.ProcesarPago(ctx, pedido.ID, model.PagoEfectivo, 1)
	require.NoError(t, err)

	_, err = f.svc.ProcesarPago(ctx, pedido.ID, model.PagoEfectivo, 1)
	assert.ErrorIs(t, err, service.ErrEstadoPedidoInvalido)

	// Exactly one sale and one income movement for the order.
	assert.Len(t, f.ventas.ventas, 1)
	ingresos := 0
	for _, m := range f.caja.movimientos {
		if m.Tipo == model.MovimientoIngreso {
			ingresos++
		}
	}
	assert.Equal(t, 1, ingresos)
}

func TestPagoEmpleadoInactivo(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()

	inactivo := &model.Empleado{Nombres: "Kato", Apellidos: "Mori", Usuario: "kato", Rol: model.RolAyudante, Estado: model.EstadoInactivo}
	require.NoError(t, f.empleados.Create(ctx, inactivo))

	pedido := f.pedidoPendiente(t, "10", nil)
	_, err := f.svc.ProcesarPago(ctx, pedido.ID, model.PagoEfectivo, inactivo.ID)
	assert.ErrorIs(t, err, service.ErrEmpleadoNoEncontrado)
	assert.Empty(t, f.ventas.ventas)
}

func TestPagoIncrementaUsoDeCupon(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()

	cupon := &model.Cupon{Nombre: "VERANO", Monto: dec("10"), Tipo: model.CuponFijo, Estado: model.EstadoActivo}
	require.NoError(t, f.cupones.Create(ctx, cupon))

	pedido := f.pedidoPendiente(t, "50", &cupon.ID)
	_, err := f.svc.ProcesarPago(ctx, pedido.ID, model.PagoQr, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cupon.VecesUsado)

	// A failed settlement does not touch the counter.
	otro := f.pedidoPendiente(t, "20", &cupon.ID)
	otro.Estado = model.PedidoEntregado
	_, err = f.svc.ProcesarPago(ctx, otro.ID, model.PagoQr, 1)
	assert.ErrorIs(t, err, service.ErrEstadoPedidoInvalido)
	assert.Equal(t, 1, cupon.VecesUsado)
}

func TestVentaCopiaTotalesDelPedido(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()

	pedido := f.pedidoPendiente(t, "100", nil)
	pedido.Descuento = dec("15")
	pedido.Total = dec("85")

	res, err := f.svc.ProcesarPago(ctx, pedido.ID, model.PagoQr, 1)
	require.NoError(t, err)

	venta, err := f.svc.Detalle(ctx, res.VentaID)
	require.NoError(t, err)
	assert.True(t, venta.Subtotal.Equal(dec("100")))
	assert.True(t, venta.Descuento.Equal(dec("15")))
	assert.True(t, venta.Total.Equal(dec("85")))
	assert.True(t, venta.Total.Equal(venta.Subtotal.Sub(venta.Descuento)))
}

func TestMarcarEntregado(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()
	pedido := f.pedidoPendiente(t, "30", nil)

	// Pending orders cannot be delivered.
	err := f.svc.MarcarEntregado(ctx, pedido.ID)
	assert.ErrorIs(t, err, service.ErrEstadoPedidoInvalido)

	_, err = f.svc.ProcesarPago(ctx, pedido.ID, model.PagoQr, 1)
	require.NoError(t, err)

	require.NoError(t, f.svc.MarcarEntregado(ctx, pedido.ID))
	assert.Equal(t, model.PedidoEntregado, pedido.Estado)

	// Delivering twice is rejected.
	err = f.svc.MarcarEntregado(ctx, pedido.ID)
	assert.ErrorIs(t, err, service.ErrEstadoPedidoInvalido)
}

func TestMarcarEntregadoInexistente(t *testing.T) {
	f := newVentaFixture(t)

	err := f.svc.MarcarEntregado(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrPedidoNoEncontrado)
}

func TestTotalesPorFormaPago(t *testing.T) {
	f := newVentaFixture(t)
	ctx := context.Background()

	p1 := f.pedidoPendiente(t, "60", nil)
	p2 := f.pedidoPendiente(t, "40", nil)
	_, err := f.svc.ProcesarPago(ctx, p1.ID, model.PagoEfectivo, 1)
	require.NoError(t, err)
	_, err = f.svc.ProcesarPago(ctx, p2.ID, model.PagoQr, 1)
	require.NoError(t, err)

	totales, err := f.svc.Totales(ctx, repository.VentaFilter{SoloHoy: true})
	require.NoError(t, err)
	assert.True(t, totales.Total.Equal(dec("100")))
	assert.True(t, totales.Efectivo.Equal(dec("60")))
	assert.True(t, totales.Qr.Equal(dec("40")))
	assert.Equal(t, int64(2), totales.Cantidad)
}
