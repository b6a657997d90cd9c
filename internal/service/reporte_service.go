package service

import (
	"context"
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ResumenDia is the daily dashboard: drawer movement totals plus sale
// aggregates split by payment method.
type ResumenDia struct {
	Fecha          string                       `json:"fecha"`
	Ventas         *repository.TotalesVenta     `json:"ventas"`
	IngresosCaja   decimal.Decimal              `json:"ingresos_caja"`
	EgresosCaja    decimal.Decimal              `json:"egresos_caja"`
	TopProductos   []repository.ProductoVendido `json:"top_productos"`
}

type ReporteService interface {
	ResumenDelDia(ctx context.Context) (*ResumenDia, error)
	VentasPorRango(ctx context.Context, desde, hasta time.Time) (*repository.TotalesVenta, error)
	TopProductos(ctx context.Context, desde, hasta *time.Time, limite int) ([]repository.ProductoVendido, error)
}

type reporteService struct {
	ventas repository.VentaRepository
	caja   repository.CajaRepository
	tz     string
	log    zerolog.Logger
}

func NewReporteService(ventas repository.VentaRepository, caja repository.CajaRepository, tz string, log zerolog.Logger) ReporteService {
	return &reporteService{
		ventas: ventas,
		caja:   caja,
		tz:     tz,
		log:    log.With().Str("service", "reportes").Logger(),
	}
}

func (s *reporteService) ResumenDelDia(ctx context.Context) (*ResumenDia, error) {
	f := repository.VentaFilter{SoloHoy: true, Timezone: s.tz}

	totales, err := s.ventas.Totales(ctx, f)
	if err != nil {
		return nil, err
	}
	ingresos, egresos, err := s.caja.TotalesPorTipo(ctx, repository.MovimientoFilter{Timezone: s.tz})
	if err != nil {
		return nil, err
	}
	top, err := s.ventas.TopProductos(ctx, f, 5)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(s.tz)
	if err != nil {
		loc = time.UTC
	}
	return &ResumenDia{
		Fecha:        time.Now().In(loc).Format("2006-01-02"),
		Ventas:       totales,
		IngresosCaja: ingresos,
		EgresosCaja:  egresos,
		TopProductos: top,
	}, nil
}

func (s *reporteService) VentasPorRango(ctx context.Context, desde, hasta time.Time) (*repository.TotalesVenta, error) {
	return s.ventas.Totales(ctx, repository.VentaFilter{
		FechaInicio: &desde,
		FechaFin:    &hasta,
		Timezone:    s.tz,
	})
}

func (s *reporteService) TopProductos(ctx context.Context, desde, hasta *time.Time, limite int) ([]repository.ProductoVendido, error) {
	f := repository.VentaFilter{FechaInicio: desde, FechaFin: hasta, Timezone: s.tz}
	if desde == nil && hasta == nil {
		f.SoloHoy = true
	}
	return s.ventas.TopProductos(ctx, f, limite)
}
