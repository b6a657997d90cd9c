package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// cierreTolerancia absorbs rounding on the operator-counted close amount.
var cierreTolerancia = decimal.NewFromFloat(0.01)

// EstadoCaja describes the current drawer session. When no session exists
// yet the engine reports a synthetic closed state with saldo cero.
type EstadoCaja struct {
	Caja          *model.Caja     `json:"caja"`
	Estado        string          `json:"estado"`
	MontoApertura decimal.Decimal `json:"monto_apertura"`
	MontoCierre   *decimal.Decimal `json:"monto_cierre"`
	Saldo         decimal.Decimal `json:"saldo"`
}

type CajaService interface {
	EstadoActual(ctx context.Context) (*EstadoCaja, error)
	CajaAbierta(ctx context.Context) (*model.Caja, error)
	Saldo(ctx context.Context) (decimal.Decimal, error)
	MontoAperturaSugerido(ctx context.Context) (decimal.Decimal, error)

	Abrir(ctx context.Context, monto decimal.Decimal, descripcion string, empleadoID int64) (*model.MovimientoCaja, error)
	Cerrar(ctx context.Context, monto decimal.Decimal, descripcion string, empleadoID int64) (*model.MovimientoCaja, error)
	RegistrarMovimiento(ctx context.Context, tipo string, monto decimal.Decimal, descripcion string, empleadoID int64) (*model.MovimientoCaja, error)

	// RegistrarIngresoVentaTx runs inside an already-open settlement
	// transaction: it guarantees an open session and books the cash income.
	RegistrarIngresoVentaTx(tx *gorm.DB, total decimal.Decimal, pedidoID, empleadoID int64) error

	Movimientos(ctx context.Context, f repository.MovimientoFilter) ([]model.MovimientoCaja, error)
	HistorialDelDia(ctx context.Context, empleadoID *int64) ([]model.MovimientoCaja, error)
	TotalesDelDia(ctx context.Context) (ingresos, egresos decimal.Decimal, err error)
}

type cajaService struct {
	repo repository.CajaRepository
	tz   string
	log  zerolog.Logger
}

func NewCajaService(repo repository.CajaRepository, tz string, log zerolog.Logger) CajaService {
	return &cajaService{repo: repo, tz: tz, log: log.With().Str("service", "caja").Logger()}
}

func (s *cajaService) EstadoActual(ctx context.Context) (*EstadoCaja, error) {
	caja, err := s.repo.FindUltima(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &EstadoCaja{
			Estado:        model.CajaCerrada,
			MontoApertura: decimal.Zero,
			Saldo:         decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	saldo, err := s.saldoDe(ctx, caja)
	if err != nil {
		return nil, err
	}
	return &EstadoCaja{
		Caja:          caja,
		Estado:        caja.Estado,
		MontoApertura: caja.MontoApertura,
		MontoCierre:   caja.MontoCierre,
		Saldo:         saldo,
	}, nil
}

func (s *cajaService) CajaAbierta(ctx context.Context) (*model.Caja, error) {
	caja, err := s.repo.FindAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCajaNoAbierta
	}
	return caja, err
}

func (s *cajaService) Saldo(ctx context.Context) (decimal.Decimal, error) {
	caja, err := s.repo.FindUltima(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return s.saldoDe(ctx, caja)
}

// saldoDe applies the balance rule: a closed session is worth its stored
// closing amount, an open one is apertura plus the signed movement sum.
func (s *cajaService) saldoDe(ctx context.Context, caja *model.Caja) (decimal.Decimal, error) {
	if caja.Estado == model.CajaCerrada {
		if caja.MontoCierre != nil {
			return *caja.MontoCierre, nil
		}
		return decimal.Zero, nil
	}
	ingresos, egresos, err := s.repo.SumMovimientos(ctx, caja.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return caja.MontoApertura.Add(ingresos).Sub(egresos), nil
}

func saldoDeTx(repo repository.CajaRepository, tx *gorm.DB, caja *model.Caja) (decimal.Decimal, error) {
	ingresos, egresos, err := repo.SumMovimientosTx(tx, caja.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return caja.MontoApertura.Add(ingresos).Sub(egresos), nil
}

// MontoAperturaSugerido returns the closing balance the drawer carries
// forward, so the front end can prefill the open form.
func (s *cajaService) MontoAperturaSugerido(ctx context.Context) (decimal.Decimal, error) {
	caja, err := s.repo.FindUltimaCerrada(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	if caja.MontoCierre == nil {
		return decimal.Zero, nil
	}
	return *caja.MontoCierre, nil
}

func (s *cajaService) Abrir(ctx context.Context, monto decimal.Decimal, descripcion string, empleadoID int64) (*model.MovimientoCaja, error) {
	if monto.IsNegative() {
		return nil, ErrMontoInvalido
	}

	var mov *model.MovimientoCaja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.LockCajaTx(tx); err != nil {
			return err
		}
		if _, err := s.repo.FindAbiertaTx(tx); err == nil {
			return ErrCajaYaAbierta
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// The drawer carries forward its last closing balance; the
		// operator-entered amount is kept only in the opening movement.
		apertura := monto
		ultima, err := s.repo.FindUltimaCerradaTx(tx)
		switch {
		case err == nil:
			if ultima.MontoCierre != nil {
				apertura = *ultima.MontoCierre
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		caja := &model.Caja{
			Estado:        model.CajaAbierta,
			MontoApertura: apertura,
			EmpleadoID:    empleadoID,
			FechaApertura: time.Now().UTC(),
		}
		if err := s.repo.CreateTx(tx, caja); err != nil {
			return err
		}

		mov = &model.MovimientoCaja{
			CajaID:      caja.ID,
			Tipo:        model.MovimientoApertura,
			Descripcion: descripcion,
			Monto:       monto,
			EmpleadoID:  empleadoID,
			FechaHora:   time.Now().UTC(),
		}
		return s.repo.CreateMovimientoTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("caja_id", mov.CajaID).Str("monto", monto.String()).Msg("caja abierta")
	return mov, nil
}

func (s *cajaService) RegistrarMovimiento(ctx context.Context, tipo string, monto decimal.Decimal, descripcion string, empleadoID int64) (*model.MovimientoCaja, error) {
	if tipo != model.MovimientoIngreso && tipo != model.MovimientoEgreso {
		return nil, ErrMontoInvalido
	}
	if !monto.IsPositive() {
		return nil, ErrMontoInvalido
	}

	var mov *model.MovimientoCaja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.LockCajaTx(tx); err != nil {
			return err
		}
		caja, err := s.repo.FindAbiertaTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCajaNoAbierta
		}
		if err != nil {
			return err
		}

		if tipo == model.MovimientoEgreso {
			saldo, err := saldoDeTx(s.repo, tx, caja)
			if err != nil {
				return err
			}
			if monto.GreaterThan(saldo) {
				return ErrSaldoInsuficiente
			}
		}

		mov = &model.MovimientoCaja{
			CajaID:      caja.ID,
			Tipo:        tipo,
			Descripcion: descripcion,
			Monto:       monto,
			EmpleadoID:  empleadoID,
			FechaHora:   time.Now().UTC(),
		}
		return s.repo.CreateMovimientoTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("tipo", tipo).Str("monto", monto.String()).Msg("movimiento registrado")
	return mov, nil
}

func (s *cajaService) Cerrar(ctx context.Context, monto decimal.Decimal, descripcion string, empleadoID int64) (*model.MovimientoCaja, error) {
	var mov *model.MovimientoCaja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.LockCajaTx(tx); err != nil {
			return err
		}
		caja, err := s.repo.FindAbiertaTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCajaNoAbierta
		}
		if err != nil {
			return err
		}

		saldo, err := saldoDeTx(s.repo, tx, caja)
		if err != nil {
			return err
		}
		if monto.Sub(saldo).Abs().GreaterThan(cierreTolerancia) {
			return ErrCierreNoCoincide
		}

		// The computed balance is what gets persisted, never the
		// operator-counted amount.
		now := time.Now().UTC()
		caja.Estado = model.CajaCerrada
		caja.MontoCierre = &saldo
		caja.FechaCierre = &now
		if err := s.repo.UpdateTx(tx, caja); err != nil {
			return err
		}

		mov = &model.MovimientoCaja{
			CajaID:      caja.ID,
			Tipo:        model.MovimientoCierre,
			Descripcion: descripcion,
			Monto:       saldo,
			EmpleadoID:  empleadoID,
			FechaHora:   now,
		}
		return s.repo.CreateMovimientoTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("caja_id", mov.CajaID).Str("monto_cierre", mov.Monto.String()).Msg("caja cerrada")
	return mov, nil
}

// RegistrarIngresoVentaTx guarantees an open session, books the sale's cash
// income, and keeps the session's monto_cierre tracking the running balance.
func (s *cajaService) RegistrarIngresoVentaTx(tx *gorm.DB, total decimal.Decimal, pedidoID, empleadoID int64) error {
	if err := s.repo.LockCajaTx(tx); err != nil {
		return err
	}

	caja, err := s.repo.FindAbiertaTx(tx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		caja, err = s.abrirAutomaticaTx(tx, empleadoID)
	}
	if err != nil {
		return err
	}

	mov := &model.MovimientoCaja{
		CajaID:      caja.ID,
		Tipo:        model.MovimientoIngreso,
		Descripcion: descripcionVenta(pedidoID),
		Monto:       total,
		EmpleadoID:  empleadoID,
		FechaHora:   time.Now().UTC(),
	}
	if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
		return err
	}

	saldo, err := saldoDeTx(s.repo, tx, caja)
	if err != nil {
		return err
	}
	caja.MontoCierre = &saldo
	return s.repo.UpdateTx(tx, caja)
}

// abrirAutomaticaTx opens a session during a cash settlement when none is
// open, carrying forward the last closing balance or zero.
func (s *cajaService) abrirAutomaticaTx(tx *gorm.DB, empleadoID int64) (*model.Caja, error) {
	apertura := decimal.Zero
	ultima, err := s.repo.FindUltimaCerradaTx(tx)
	switch {
	case err == nil:
		if ultima.MontoCierre != nil {
			apertura = *ultima.MontoCierre
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	caja := &model.Caja{
		Estado:        model.CajaAbierta,
		MontoApertura: apertura,
		EmpleadoID:    empleadoID,
		FechaApertura: time.Now().UTC(),
	}
	if err := s.repo.CreateTx(tx, caja); err != nil {
		return nil, err
	}

	mov := &model.MovimientoCaja{
		CajaID:      caja.ID,
		Tipo:        model.MovimientoApertura,
		Descripcion: "Apertura automática por venta en efectivo",
		Monto:       apertura,
		EmpleadoID:  empleadoID,
		FechaHora:   time.Now().UTC(),
	}
	if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
		return nil, err
	}
	s.log.Info().Int64("caja_id", caja.ID).Msg("caja abierta automáticamente")
	return caja, nil
}

func descripcionVenta(pedidoID int64) string {
	return "Venta en efectivo del pedido #" + strconv.FormatInt(pedidoID, 10)
}

func (s *cajaService) Movimientos(ctx context.Context, f repository.MovimientoFilter) ([]model.MovimientoCaja, error) {
	if f.Timezone == "" {
		f.Timezone = s.tz
	}
	return s.repo.ListMovimientos(ctx, f)
}

func (s *cajaService) HistorialDelDia(ctx context.Context, empleadoID *int64) ([]model.MovimientoCaja, error) {
	return s.repo.HistorialDelDia(ctx, empleadoID, s.tz)
}

func (s *cajaService) TotalesDelDia(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return s.repo.TotalesPorTipo(ctx, repository.MovimientoFilter{Timezone: s.tz})
}
