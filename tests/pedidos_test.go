package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type pedidoFixture struct {
	pedidos   *fakePedidoRepo
	productos *fakeProductoRepo
	cupones   *fakeCuponRepo
	svc       service.PedidoService
}

func newPedidoFixture(t *testing.T) *pedidoFixture {
	t.Helper()
	f := &pedidoFixture{
		pedidos:   newFakePedidoRepo(),
		productos: newFakeProductoRepo(),
		cupones:   newFakeCuponRepo(),
	}
	f.svc = service.NewPedidoService(f.pedidos, f.productos, f.cupones, "America/La_Paz", zerolog.Nop())

	ctx := context.Background()
	cat := &model.Categoria{Nombre: "Bebidas", Estado: model.EstadoActivo}
	require.NoError(t, f.productos.CreateCategoria(ctx, cat))
	require.NoError(t, f.productos.Create(ctx, &model.Producto{
		Nombre: "Matcha latte", CategoriaID: cat.ID, Precio: dec("18.50"), Estado: model.EstadoActivo,
	}))
	require.NoError(t, f.productos.Create(ctx, &model.Producto{
		Nombre: "Dorayaki", CategoriaID: cat.ID, Precio: dec("12"), Estado: model.EstadoActivo,
	}))
	require.NoError(t, f.productos.Create(ctx, &model.Producto{
		Nombre: "Descontinuado", CategoriaID: cat.ID, Precio: dec("5"), Estado: model.EstadoInactivo,
	}))
	return f
}

func nuevoPedidoBase(lineas ...service.LineaPedido) service.NuevoPedido {
	return service.NuevoPedido{
		NombreCliente: "Mesa 1",
		Tipo:          "local",
		EmpleadoID:    1,
		Lineas:        lineas,
	}
}

func TestCrearPedidoPreciosDelCatalogo(t *testing.T) {
	f := newPedidoFixture(t)

	pedido, err := f.svc.Crear(context.Background(), nuevoPedidoBase(
		service.LineaPedido{ProductoID: 1, Cantidad: 2},
		service.LineaPedido{ProductoID: 2, Cantidad: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, model.PedidoPendiente, pedido.Estado)
	assert.True(t, pedido.Subtotal.Equal(dec("49")), "2*18.50 + 12")
	assert.True(t, pedido.Descuento.IsZero())
	assert.True(t, pedido.Total.Equal(dec("49")))
	require.Len(t, pedido.Items, 2)
	assert.True(t, pedido.Items[0].PrecioUnitario.Equal(dec("18.50")))
	assert.True(t, pedido.Items[0].SubtotalLinea.Equal(dec("37")))
}

func TestCrearPedidoSinLineas(t *testing.T) {
	f := newPedidoFixture(t)

	_, err := f.svc.Crear(context.Background(), nuevoPedidoBase())
	assert.ErrorIs(t, err, service.ErrPedidoSinLineas)
}

func TestCrearPedidoCantidadInvalida(t *testing.T) {
	f := newPedidoFixture(t)

	_, err := f.svc.Crear(context.Background(), nuevoPedidoBase(
		service.LineaPedido{ProductoID: 1, Cantidad: 0},
	))
	assert.ErrorIs(t, err, service.ErrCantidadInvalida)
}

func TestCrearPedidoProductoInactivo(t *testing.T) {
	f := newPedidoFixture(t)

	_, err := f.svc.Crear(context.Background(), nuevoPedidoBase(
		service.LineaPedido{ProductoID: 3, Cantidad: 1},
	))
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestCrearPedidoConCuponPorcentaje(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	cupon := &model.Cupon{Nombre: "DIEZ", Monto: dec("10"), Tipo: model.CuponPorcentaje, Estado: model.EstadoActivo}
	require.NoError(t, f.cupones.Create(ctx, cupon))

	in := nuevoPedidoBase(service.LineaPedido{ProductoID: 2, Cantidad: 5}) // 60
	in.CuponID = &cupon.ID

	pedido, err := f.svc.Crear(ctx, in)
	require.NoError(t, err)
	assert.True(t, pedido.Descuento.Equal(dec("6")))
	assert.True(t, pedido.Total.Equal(dec("54")))
}

func TestCrearPedidoConCuponFijoTopeadoAlSubtotal(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	cupon := &model.Cupon{Nombre: "MEGA", Monto: dec("100"), Tipo: model.CuponFijo, Estado: model.EstadoActivo}
	require.NoError(t, f.cupones.Create(ctx, cupon))

	in := nuevoPedidoBase(service.LineaPedido{ProductoID: 2, Cantidad: 1}) // 12
	in.CuponID = &cupon.ID

	pedido, err := f.svc.Crear(ctx, in)
	require.NoError(t, err)
	assert.True(t, pedido.Descuento.Equal(dec("12")))
	assert.True(t, pedido.Total.IsZero(), "el total nunca baja de cero")
}

func TestCrearPedidoCuponInactivo(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	cupon := &model.Cupon{Nombre: "VIEJO", Monto: dec("5"), Tipo: model.CuponFijo, Estado: model.EstadoInactivo}
	require.NoError(t, f.cupones.Create(ctx, cupon))

	in := nuevoPedidoBase(service.LineaPedido{ProductoID: 2, Cantidad: 1})
	in.CuponID = &cupon.ID

	_, err := f.svc.Crear(ctx, in)
	assert.ErrorIs(t, err, service.ErrCuponNoEncontrado)
}

func TestEditarPedidoPendiente(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	pedido, err := f.svc.Crear(ctx, nuevoPedidoBase(service.LineaPedido{ProductoID: 1, Cantidad: 1}))
	require.NoError(t, err)

	editado, err := f.svc.Editar(ctx, pedido.ID, nuevoPedidoBase(
		service.LineaPedido{ProductoID: 2, Cantidad: 3},
	))
	require.NoError(t, err)
	assert.True(t, editado.Subtotal.Equal(dec("36")))
	assert.True(t, editado.Total.Equal(dec("36")))
	require.Len(t, editado.Items, 1)
	assert.Equal(t, int64(2), editado.Items[0].ProductoID)
}

// pedidoRepoReplazoFallido rompe la reescritura de líneas para verificar
// que Editar corta la edición completa cuando una de sus escrituras falla.
type pedidoRepoReplazoFallido struct {
	*fakePedidoRepo
}

var errReplazo = errors.New("no se pudieron reescribir las líneas")

func (r *pedidoRepoReplazoFallido) ReplaceItemsTx(_ *gorm.DB, _ int64, _ []model.DetallePedido) error {
	return errReplazo
}

func TestEditarPedidoFallaReescritura(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	pedido, err := f.svc.Crear(ctx, nuevoPedidoBase(service.LineaPedido{ProductoID: 1, Cantidad: 1}))
	require.NoError(t, err)

	roto := service.NewPedidoService(
		&pedidoRepoReplazoFallido{fakePedidoRepo: f.pedidos},
		f.productos, f.cupones, "America/La_Paz", zerolog.Nop(),
	)
	_, err = roto.Editar(ctx, pedido.ID, nuevoPedidoBase(service.LineaPedido{ProductoID: 2, Cantidad: 3}))
	assert.ErrorIs(t, err, errReplazo)
}

func TestEditarPedidoPagado(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	pedido, err := f.svc.Crear(ctx, nuevoPedidoBase(service.LineaPedido{ProductoID: 1, Cantidad: 1}))
	require.NoError(t, err)
	require.NoError(t, f.pedidos.UpdateEstadoTx(nil, pedido.ID, model.PedidoPagado))

	_, err = f.svc.Editar(ctx, pedido.ID, nuevoPedidoBase(service.LineaPedido{ProductoID: 2, Cantidad: 1}))
	assert.ErrorIs(t, err, service.ErrEstadoPedidoInvalido)
}

func TestAnularPedido(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	pedido, err := f.svc.Crear(ctx, nuevoPedidoBase(service.LineaPedido{ProductoID: 1, Cantidad: 1}))
	require.NoError(t, err)

	require.NoError(t, f.svc.Anular(ctx, pedido.ID))

	// Cancelled orders disappear from reads and listings.
	_, err = f.svc.Detalle(ctx, pedido.ID)
	assert.ErrorIs(t, err, service.ErrPedidoNoEncontrado)

	lista, err := f.svc.Listar(ctx, repository.PedidoFilter{})
	require.NoError(t, err)
	assert.Empty(t, lista)

	// And cannot be cancelled again.
	err = f.svc.Anular(ctx, pedido.ID)
	assert.ErrorIs(t, err, service.ErrEstadoPedidoInvalido)
}

func TestAnularPedidoPagado(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	pedido, err := f.svc.Crear(ctx, nuevoPedidoBase(service.LineaPedido{ProductoID: 1, Cantidad: 1}))
	require.NoError(t, err)
	require.NoError(t, f.pedidos.UpdateEstadoTx(nil, pedido.ID, model.PedidoPagado))

	err = f.svc.Anular(ctx, pedido.ID)
	assert.ErrorIs(t, err, service.ErrEstadoPedidoInvalido)
}

func TestListarFiltraPorEstado(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	p1, err := f.svc.Crear(ctx, nuevoPedidoBase(service.LineaPedido{ProductoID: 1, Cantidad: 1}))
	require.NoError(t, err)
	_, err = f.svc.Crear(ctx, nuevoPedidoBase(service.LineaPedido{ProductoID: 2, Cantidad: 1}))
	require.NoError(t, err)
	require.NoError(t, f.pedidos.UpdateEstadoTx(nil, p1.ID, model.PedidoPagado))

	estado := model.PedidoPagado
	lista, err := f.svc.Listar(ctx, repository.PedidoFilter{Estado: &estado})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, p1.ID, lista[0].ID)
}
