package service

import (
	"context"
	"errors"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineaPedido is one product line as submitted by the client. The unit
// price and subtotal are looked up and computed server side.
type LineaPedido struct {
	ProductoID int64
	Cantidad   int
}

// NuevoPedido carries everything needed to create or edit an order.
type NuevoPedido struct {
	NombreCliente string
	Tipo          string
	Notas         *string
	CuponID       *int64
	EmpleadoID    int64
	Lineas        []LineaPedido
}

type PedidoService interface {
	Listar(ctx context.Context, f repository.PedidoFilter) ([]model.Pedido, error)
	Detalle(ctx context.Context, id int64) (*model.Pedido, error)
	Crear(ctx context.Context, in NuevoPedido) (*model.Pedido, error)
	Editar(ctx context.Context, id int64, in NuevoPedido) (*model.Pedido, error)
	Anular(ctx context.Context, id int64) error
}

type pedidoService struct {
	pedidos   repository.PedidoRepository
	productos repository.ProductoRepository
	cupones   repository.CuponRepository
	tz        string
	log       zerolog.Logger
}

func NewPedidoService(
	pedidos repository.PedidoRepository,
	productos repository.ProductoRepository,
	cupones repository.CuponRepository,
	tz string,
	log zerolog.Logger,
) PedidoService {
	return &pedidoService{
		pedidos:   pedidos,
		productos: productos,
		cupones:   cupones,
		tz:        tz,
		log:       log.With().Str("service", "pedidos").Logger(),
	}
}

func (s *pedidoService) Listar(ctx context.Context, f repository.PedidoFilter) ([]model.Pedido, error) {
	if f.Timezone == "" {
		f.Timezone = s.tz
	}
	return s.pedidos.List(ctx, f)
}

func (s *pedidoService) Detalle(ctx context.Context, id int64) (*model.Pedido, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPedidoNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	if p.Estado == model.PedidoAnulado {
		return nil, ErrPedidoNoEncontrado
	}
	return p, nil
}

// armarLineas prices each submitted line against the active catalog and
// returns the detail rows plus the order subtotal.
func (s *pedidoService) armarLineas(ctx context.Context, lineas []LineaPedido) ([]model.DetallePedido, decimal.Decimal, error) {
	if len(lineas) == 0 {
		return nil, decimal.Zero, ErrPedidoSinLineas
	}
	subtotal := decimal.Zero
	items := make([]model.DetallePedido, 0, len(lineas))
	for _, l := range lineas {
		if l.Cantidad <= 0 {
			return nil, decimal.Zero, ErrCantidadInvalida
		}
		prod, err := s.productos.FindByID(ctx, l.ProductoID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, ErrProductoNoEncontrado
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		if prod.Estado != model.EstadoActivo {
			return nil, decimal.Zero, ErrProductoNoEncontrado
		}
		linea := prod.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
		items = append(items, model.DetallePedido{
			ProductoID:     prod.ID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: prod.Precio,
			SubtotalLinea:  linea,
		})
		subtotal = subtotal.Add(linea)
	}
	return items, subtotal, nil
}

// descuentoDe resolves the coupon into a discount amount, capping it at the
// subtotal so the total never goes negative.
func (s *pedidoService) descuentoDe(ctx context.Context, cuponID *int64, subtotal decimal.Decimal) (decimal.Decimal, error) {
	if cuponID == nil {
		return decimal.Zero, nil
	}
	cupon, err := s.cupones.FindByID(ctx, *cuponID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, ErrCuponNoEncontrado
	}
	if err != nil {
		return decimal.Zero, err
	}
	if cupon.Estado != model.EstadoActivo {
		return decimal.Zero, ErrCuponNoEncontrado
	}

	var descuento decimal.Decimal
	switch cupon.Tipo {
	case model.CuponPorcentaje:
		descuento = subtotal.Mul(cupon.Monto).Div(decimal.NewFromInt(100)).Round(2)
	default:
		descuento = cupon.Monto
	}
	if descuento.GreaterThan(subtotal) {
		descuento = subtotal
	}
	return descuento, nil
}

func (s *pedidoService) Crear(ctx context.Context, in NuevoPedido) (*model.Pedido, error) {
	items, subtotal, err := s.armarLineas(ctx, in.Lineas)
	if err != nil {
		return nil, err
	}
	descuento, err := s.descuentoDe(ctx, in.CuponID, subtotal)
	if err != nil {
		return nil, err
	}

	pedido := &model.Pedido{
		NombreCliente: in.NombreCliente,
		Tipo:          in.Tipo,
		Notas:         in.Notas,
		Subtotal:      subtotal,
		Descuento:     descuento,
		Total:         subtotal.Sub(descuento),
		CuponID:       in.CuponID,
		EmpleadoID:    in.EmpleadoID,
		Estado:        model.PedidoPendiente,
		FechaHora:     nowUTC(),
		Items:         items,
	}
	if err := s.pedidos.Create(ctx, pedido); err != nil {
		return nil, err
	}
	s.log.Info().Int64("pedido_id", pedido.ID).Str("total", pedido.Total.String()).Msg("pedido creado")
	return pedido, nil
}

// Editar reprices and rewrites a pending order. Paid, delivered and
// cancelled orders are immutable.
func (s *pedidoService) Editar(ctx context.Context, id int64, in NuevoPedido) (*model.Pedido, error) {
	pedido, err := s.Detalle(ctx, id)
	if err != nil {
		return nil, err
	}
	if pedido.Estado != model.PedidoPendiente {
		return nil, ErrEstadoPedidoInvalido
	}

	items, subtotal, err := s.armarLineas(ctx, in.Lineas)
	if err != nil {
		return nil, err
	}
	descuento, err := s.descuentoDe(ctx, in.CuponID, subtotal)
	if err != nil {
		return nil, err
	}

	pedido.NombreCliente = in.NombreCliente
	pedido.Tipo = in.Tipo
	pedido.Notas = in.Notas
	pedido.CuponID = in.CuponID
	pedido.Subtotal = subtotal
	pedido.Descuento = descuento
	pedido.Total = subtotal.Sub(descuento)
	pedido.Items = nil
	// Header and lines commit together; a half-applied edit must not survive.
	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		if err := s.pedidos.UpdateTx(tx, pedido); err != nil {
			return err
		}
		return s.pedidos.ReplaceItemsTx(tx, id, items)
	})
	if err != nil {
		return nil, err
	}
	return s.Detalle(ctx, id)
}

func (s *pedidoService) Anular(ctx context.Context, id int64) error {
	return runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		pedido, err := s.pedidos.FindByIDTx(tx, id, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPedidoNoEncontrado
		}
		if err != nil {
			return err
		}
		if pedido.Estado != model.PedidoPendiente {
			return ErrEstadoPedidoInvalido
		}
		return s.pedidos.UpdateEstadoTx(tx, id, model.PedidoAnulado)
	})
}
