package service

import (
	"context"
	"errors"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ReciboEnqueuer publishes a receipt job after a settlement commits.
// Enqueue failures must not fail the sale; implementations log and move on.
type ReciboEnqueuer interface {
	EncolarRecibo(ctx context.Context, ventaID int64)
}

// ResultadoPago is what the settlement returns to the caller.
type ResultadoPago struct {
	VentaID  int64 `json:"idventa"`
	PedidoID int64 `json:"idpedido"`
}

type VentaService interface {
	ProcesarPago(ctx context.Context, pedidoID int64, formaPago string, empleadoID int64) (*ResultadoPago, error)
	MarcarEntregado(ctx context.Context, pedidoID int64) error

	Detalle(ctx context.Context, ventaID int64) (*model.Venta, error)
	PorPedido(ctx context.Context, pedidoID int64) (*model.Venta, error)
	Listar(ctx context.Context, f repository.VentaFilter) ([]model.Venta, error)
	Totales(ctx context.Context, f repository.VentaFilter) (*repository.TotalesVenta, error)
}

type ventaService struct {
	ventas    repository.VentaRepository
	pedidos   repository.PedidoRepository
	cupones   repository.CuponRepository
	empleados repository.EmpleadoRepository
	caja      CajaService
	recibos   ReciboEnqueuer
	tz        string
	log       zerolog.Logger
}

func NewVentaService(
	ventas repository.VentaRepository,
	pedidos repository.PedidoRepository,
	cupones repository.CuponRepository,
	empleados repository.EmpleadoRepository,
	caja CajaService,
	recibos ReciboEnqueuer,
	tz string,
	log zerolog.Logger,
) VentaService {
	return &ventaService{
		ventas:    ventas,
		pedidos:   pedidos,
		cupones:   cupones,
		empleados: empleados,
		caja:      caja,
		recibos:   recibos,
		tz:        tz,
		log:       log.With().Str("service", "ventas").Logger(),
	}
}

// ProcesarPago converts a pending order into a sale. Everything runs in one
// transaction; a cash payment additionally books the income on the drawer.
// The order row is locked up front so concurrent attempts serialize.
func (s *ventaService) ProcesarPago(ctx context.Context, pedidoID int64, formaPago string, empleadoID int64) (*ResultadoPago, error) {
	if formaPago != model.PagoEfectivo && formaPago != model.PagoQr {
		return nil, ErrFormaPagoInvalida
	}

	var venta *model.Venta
	err := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		pedido, err := s.pedidos.FindByIDTx(tx, pedidoID, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPedidoNoEncontrado
		}
		if err != nil {
			return err
		}
		if pedido.Estado == model.PedidoAnulado {
			return ErrPedidoNoEncontrado
		}
		if pedido.Estado != model.PedidoPendiente {
			return ErrEstadoPedidoInvalido
		}

		if _, err := s.empleados.FindActivoByIDTx(tx, empleadoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmpleadoNoEncontrado
			}
			return err
		}

		// A second settlement racing on the same order must not produce
		// a second sale row.
		dup, err := s.ventas.ExistsByPedidoTx(tx, pedidoID)
		if err != nil {
			return err
		}
		if dup {
			return ErrVentaDuplicada
		}

		if pedido.CuponID != nil {
			if err := s.cupones.IncrementUsoTx(tx, *pedido.CuponID); err != nil {
				return err
			}
		}

		if err := s.pedidos.UpdateEstadoTx(tx, pedidoID, model.PedidoPagado); err != nil {
			return err
		}

		items, err := s.pedidos.ListItemsTx(tx, pedidoID)
		if err != nil {
			return err
		}
		detalle := make([]model.DetalleVenta, 0, len(items))
		for _, it := range items {
			detalle = append(detalle, model.DetalleVenta{
				ProductoID:     it.ProductoID,
				Cantidad:       it.Cantidad,
				PrecioUnitario: it.PrecioUnitario,
				SubtotalLinea:  it.SubtotalLinea,
			})
		}

		venta = &model.Venta{
			EmpleadoID: empleadoID,
			PedidoID:   pedidoID,
			Subtotal:   pedido.Subtotal,
			Descuento:  pedido.Descuento,
			Total:      pedido.Total,
			FormaPago:  formaPago,
			FechaHora:  nowUTC(),
			Items:      detalle,
		}
		if err := s.ventas.CreateTx(tx, venta); err != nil {
			return err
		}

		if formaPago == model.PagoEfectivo {
			if err := s.caja.RegistrarIngresoVentaTx(tx, pedido.Total, pedidoID, empleadoID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("venta_id", venta.ID).
		Int64("pedido_id", pedidoID).
		Str("forma_pago", formaPago).
		Str("total", venta.Total.String()).
		Msg("pago procesado")

	if s.recibos != nil {
		s.recibos.EncolarRecibo(ctx, venta.ID)
	}
	return &ResultadoPago{VentaID: venta.ID, PedidoID: pedidoID}, nil
}

// MarcarEntregado moves a paid order to delivered. Any other prior state
// is rejected.
func (s *ventaService) MarcarEntregado(ctx context.Context, pedidoID int64) error {
	return runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		pedido, err := s.pedidos.FindByIDTx(tx, pedidoID, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPedidoNoEncontrado
		}
		if err != nil {
			return err
		}
		if pedido.Estado != model.PedidoPagado {
			return ErrEstadoPedidoInvalido
		}
		return s.pedidos.UpdateEstadoTx(tx, pedidoID, model.PedidoEntregado)
	})
}

func (s *ventaService) Detalle(ctx context.Context, ventaID int64) (*model.Venta, error) {
	v, err := s.ventas.FindByID(ctx, ventaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVentaNoEncontrada
	}
	return v, err
}

func (s *ventaService) PorPedido(ctx context.Context, pedidoID int64) (*model.Venta, error) {
	v, err := s.ventas.FindByPedido(ctx, pedidoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVentaNoEncontrada
	}
	return v, err
}

func (s *ventaService) Listar(ctx context.Context, f repository.VentaFilter) ([]model.Venta, error) {
	if f.Timezone == "" {
		f.Timezone = s.tz
	}
	return s.ventas.List(ctx, f)
}

func (s *ventaService) Totales(ctx context.Context, f repository.VentaFilter) (*repository.TotalesVenta, error) {
	if f.Timezone == "" {
		f.Timezone = s.tz
	}
	return s.ventas.Totales(ctx, f)
}
