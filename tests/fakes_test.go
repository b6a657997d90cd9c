package tests

// In-memory fakes implementing the repository interfaces. Services run with
// a nil *gorm.DB, so transactional variants receive a nil tx and the fakes
// simply mutate their maps; rollback scenarios are asserted through the
// error path instead.

import (
	"context"
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Caja ──────────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	cajas       []*model.Caja
	movimientos []model.MovimientoCaja
	nextCajaID  int64
	nextMovID   int64
}

func newFakeCajaRepo() *fakeCajaRepo { return &fakeCajaRepo{} }

func (r *fakeCajaRepo) DB() *gorm.DB { return nil }

func (r *fakeCajaRepo) FindUltima(_ context.Context) (*model.Caja, error) {
	return r.FindUltimaTx(nil)
}

func (r *fakeCajaRepo) FindAbierta(_ context.Context) (*model.Caja, error) {
	return r.FindAbiertaTx(nil)
}

func (r *fakeCajaRepo) FindUltimaCerrada(_ context.Context) (*model.Caja, error) {
	return r.FindUltimaCerradaTx(nil)
}

func (r *fakeCajaRepo) SumMovimientos(_ context.Context, cajaID int64) (decimal.Decimal, decimal.Decimal, error) {
	return r.SumMovimientosTx(nil, cajaID)
}

func (r *fakeCajaRepo) LockCajaTx(_ *gorm.DB) error { return nil }

func (r *fakeCajaRepo) FindAbiertaTx(_ *gorm.DB) (*model.Caja, error) {
	for i := len(r.cajas) - 1; i >= 0; i-- {
		if r.cajas[i].Estado == model.CajaAbierta {
			return r.cajas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) FindUltimaTx(_ *gorm.DB) (*model.Caja, error) {
	if len(r.cajas) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.cajas[len(r.cajas)-1], nil
}

func (r *fakeCajaRepo) FindUltimaCerradaTx(_ *gorm.DB) (*model.Caja, error) {
	for i := len(r.cajas) - 1; i >= 0; i-- {
		if r.cajas[i].Estado == model.CajaCerrada {
			return r.cajas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) CreateTx(_ *gorm.DB, c *model.Caja) error {
	r.nextCajaID++
	c.ID = r.nextCajaID
	if c.FechaApertura.IsZero() {
		c.FechaApertura = time.Now().UTC()
	}
	r.cajas = append(r.cajas, c)
	return nil
}

func (r *fakeCajaRepo) UpdateTx(_ *gorm.DB, c *model.Caja) error {
	for i, existing := range r.cajas {
		if existing.ID == c.ID {
			r.cajas[i] = c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	r.nextMovID++
	m.ID = r.nextMovID
	if m.FechaHora.IsZero() {
		m.FechaHora = time.Now().UTC()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeCajaRepo) SumMovimientosTx(_ *gorm.DB, cajaID int64) (decimal.Decimal, decimal.Decimal, error) {
	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, m := range r.movimientos {
		if m.CajaID != cajaID {
			continue
		}
		switch m.Tipo {
		case model.MovimientoIngreso:
			ingresos = ingresos.Add(m.Monto)
		case model.MovimientoEgreso:
			egresos = egresos.Add(m.Monto)
		}
	}
	return ingresos, egresos, nil
}

func (r *fakeCajaRepo) ListMovimientos(_ context.Context, f repository.MovimientoFilter) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if f.Tipo != "" && m.Tipo != f.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeCajaRepo) HistorialDelDia(_ context.Context, empleadoID *int64, _ string) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if empleadoID != nil && m.EmpleadoID != *empleadoID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeCajaRepo) TotalesPorTipo(_ context.Context, _ repository.MovimientoFilter) (decimal.Decimal, decimal.Decimal, error) {
	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, m := range r.movimientos {
		switch m.Tipo {
		case model.MovimientoIngreso:
			ingresos = ingresos.Add(m.Monto)
		case model.MovimientoEgreso:
			egresos = egresos.Add(m.Monto)
		}
	}
	return ingresos, egresos, nil
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

// ── Pedidos ───────────────────────────────────────────────────────────────────

type fakePedidoRepo struct {
	pedidos map[int64]*model.Pedido
	items   map[int64][]model.DetallePedido
	nextID  int64
}

func newFakePedidoRepo() *fakePedidoRepo {
	return &fakePedidoRepo{
		pedidos: make(map[int64]*model.Pedido),
		items:   make(map[int64][]model.DetallePedido),
	}
}

func (r *fakePedidoRepo) DB() *gorm.DB { return nil }

func (r *fakePedidoRepo) List(_ context.Context, f repository.PedidoFilter) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.Estado == model.PedidoAnulado {
			continue
		}
		if f.Estado != nil && p.Estado != *f.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePedidoRepo) FindByID(_ context.Context, id int64) (*model.Pedido, error) {
	return r.FindByIDTx(nil, id, false)
}

func (r *fakePedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	r.nextID++
	p.ID = r.nextID
	for i := range p.Items {
		p.Items[i].PedidoID = p.ID
	}
	r.items[p.ID] = p.Items
	r.pedidos[p.ID] = p
	return nil
}

func (r *fakePedidoRepo) UpdateTx(_ *gorm.DB, p *model.Pedido) error {
	if _, ok := r.pedidos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *fakePedidoRepo) ReplaceItemsTx(_ *gorm.DB, pedidoID int64, items []model.DetallePedido) error {
	for i := range items {
		items[i].PedidoID = pedidoID
	}
	r.items[pedidoID] = items
	if p, ok := r.pedidos[pedidoID]; ok {
		p.Items = items
	}
	return nil
}

func (r *fakePedidoRepo) FindByIDTx(_ *gorm.DB, id int64, _ bool) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePedidoRepo) UpdateEstadoTx(_ *gorm.DB, id int64, estado int) error {
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *fakePedidoRepo) ListItemsTx(_ *gorm.DB, pedidoID int64) ([]model.DetallePedido, error) {
	return r.items[pedidoID], nil
}

var _ repository.PedidoRepository = (*fakePedidoRepo)(nil)

// ── Ventas ────────────────────────────────────────────────────────────────────

type fakeVentaRepo struct {
	ventas map[int64]*model.Venta
	nextID int64
}

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{ventas: make(map[int64]*model.Venta)}
}

func (r *fakeVentaRepo) DB() *gorm.DB { return nil }

func (r *fakeVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	r.nextID++
	v.ID = r.nextID
	for i := range v.Items {
		v.Items[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *fakeVentaRepo) ExistsByPedidoTx(_ *gorm.DB, pedidoID int64) (bool, error) {
	for _, v := range r.ventas {
		if v.PedidoID == pedidoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id int64) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fakeVentaRepo) FindByPedido(_ context.Context, pedidoID int64) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.PedidoID == pedidoID {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVentaRepo) List(_ context.Context, _ repository.VentaFilter) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVentaRepo) Totales(_ context.Context, _ repository.VentaFilter) (*repository.TotalesVenta, error) {
	t := &repository.TotalesVenta{Total: decimal.Zero, Efectivo: decimal.Zero, Qr: decimal.Zero}
	for _, v := range r.ventas {
		t.Total = t.Total.Add(v.Total)
		t.Cantidad++
		switch v.FormaPago {
		case model.PagoEfectivo:
			t.Efectivo = t.Efectivo.Add(v.Total)
		case model.PagoQr:
			t.Qr = t.Qr.Add(v.Total)
		}
	}
	return t, nil
}

func (r *fakeVentaRepo) TopProductos(_ context.Context, _ repository.VentaFilter, _ int) ([]repository.ProductoVendido, error) {
	return nil, nil
}

var _ repository.VentaRepository = (*fakeVentaRepo)(nil)

// ── Cupones ───────────────────────────────────────────────────────────────────

type fakeCuponRepo struct {
	cupones map[int64]*model.Cupon
	nextID  int64
}

func newFakeCuponRepo() *fakeCuponRepo {
	return &fakeCuponRepo{cupones: make(map[int64]*model.Cupon)}
}

func (r *fakeCuponRepo) DB() *gorm.DB { return nil }

func (r *fakeCuponRepo) List(_ context.Context, incluirInactivos bool) ([]model.Cupon, error) {
	var out []model.Cupon
	for _, c := range r.cupones {
		if c.Estado == model.EstadoEliminado {
			continue
		}
		if !incluirInactivos && c.Estado != model.EstadoActivo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCuponRepo) FindByID(_ context.Context, id int64) (*model.Cupon, error) {
	c, ok := r.cupones[id]
	if !ok || c.Estado == model.EstadoEliminado {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCuponRepo) FindByNombre(_ context.Context, nombre string) (*model.Cupon, error) {
	for _, c := range r.cupones {
		if c.Nombre == nombre && c.Estado != model.EstadoEliminado {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCuponRepo) Create(_ context.Context, c *model.Cupon) error {
	r.nextID++
	c.ID = r.nextID
	r.cupones[c.ID] = c
	return nil
}

func (r *fakeCuponRepo) Update(_ context.Context, c *model.Cupon) error {
	if _, ok := r.cupones[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.cupones[c.ID] = c
	return nil
}

func (r *fakeCuponRepo) FindByIDTx(_ *gorm.DB, id int64) (*model.Cupon, error) {
	c, ok := r.cupones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCuponRepo) IncrementUsoTx(_ *gorm.DB, id int64) error {
	c, ok := r.cupones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.VecesUsado++
	return nil
}

var _ repository.CuponRepository = (*fakeCuponRepo)(nil)

// ── Empleados ─────────────────────────────────────────────────────────────────

type fakeEmpleadoRepo struct {
	empleados map[int64]*model.Empleado
	nextID    int64
}

func newFakeEmpleadoRepo() *fakeEmpleadoRepo {
	return &fakeEmpleadoRepo{empleados: make(map[int64]*model.Empleado)}
}

func (r *fakeEmpleadoRepo) DB() *gorm.DB { return nil }

func (r *fakeEmpleadoRepo) List(_ context.Context) ([]model.Empleado, error) {
	var out []model.Empleado
	for _, e := range r.empleados {
		if e.Estado != model.EstadoEliminado {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEmpleadoRepo) FindByID(_ context.Context, id int64) (*model.Empleado, error) {
	e, ok := r.empleados[id]
	if !ok || e.Estado == model.EstadoEliminado {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *e
	return &copia, nil
}

func (r *fakeEmpleadoRepo) FindByUsuario(_ context.Context, usuario string) (*model.Empleado, error) {
	for _, e := range r.empleados {
		if e.Usuario == usuario && e.Estado != model.EstadoEliminado {
			copia := *e
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmpleadoRepo) Create(_ context.Context, e *model.Empleado) error {
	r.nextID++
	e.ID = r.nextID
	copia := *e
	r.empleados[e.ID] = &copia
	return nil
}

func (r *fakeEmpleadoRepo) Update(_ context.Context, e *model.Empleado) error {
	if _, ok := r.empleados[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *e
	r.empleados[e.ID] = &copia
	return nil
}

func (r *fakeEmpleadoRepo) FindActivoByIDTx(_ *gorm.DB, id int64) (*model.Empleado, error) {
	e, ok := r.empleados[id]
	if !ok || e.Estado != model.EstadoActivo {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

var _ repository.EmpleadoRepository = (*fakeEmpleadoRepo)(nil)

// ── Productos ─────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos  map[int64]*model.Producto
	categorias map[int64]*model.Categoria
	nextID     int64
	nextCatID  int64
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{
		productos:  make(map[int64]*model.Producto),
		categorias: make(map[int64]*model.Categoria),
	}
}

func (r *fakeProductoRepo) DB() *gorm.DB { return nil }

func (r *fakeProductoRepo) List(_ context.Context, categoriaID *int64, incluirInactivos bool) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Estado == model.EstadoEliminado {
			continue
		}
		if !incluirInactivos && p.Estado != model.EstadoActivo {
			continue
		}
		if categoriaID != nil && p.CategoriaID != *categoriaID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id int64) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok || p.Estado == model.EstadoEliminado {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.nextID++
	p.ID = r.nextID
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) FindByIDTx(_ *gorm.DB, id int64) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductoRepo) ListCategorias(_ context.Context, incluirInactivas bool) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		if c.Estado == model.EstadoEliminado {
			continue
		}
		if !incluirInactivas && c.Estado != model.EstadoActivo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeProductoRepo) FindCategoriaByID(_ context.Context, id int64) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok || c.Estado == model.EstadoEliminado {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeProductoRepo) FindCategoriaByNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre && c.Estado != model.EstadoEliminado {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductoRepo) FindCategoriaEliminadaByNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre && c.Estado == model.EstadoEliminado {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductoRepo) CreateCategoria(_ context.Context, c *model.Categoria) error {
	r.nextCatID++
	c.ID = r.nextCatID
	r.categorias[c.ID] = c
	return nil
}

func (r *fakeProductoRepo) UpdateCategoria(_ context.Context, c *model.Categoria) error {
	if _, ok := r.categorias[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.categorias[c.ID] = c
	return nil
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)
