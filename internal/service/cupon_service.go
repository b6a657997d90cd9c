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

type DatosCupon struct {
	Nombre string
	Monto  decimal.Decimal
	Tipo   string
}

type CuponService interface {
	Listar(ctx context.Context, incluirInactivos bool) ([]model.Cupon, error)
	Detalle(ctx context.Context, id int64) (*model.Cupon, error)
	ValidarPorNombre(ctx context.Context, nombre string) (*model.Cupon, error)
	Crear(ctx context.Context, in DatosCupon) (*model.Cupon, error)
	Actualizar(ctx context.Context, id int64, in DatosCupon) (*model.Cupon, error)
	CambiarEstado(ctx context.Context, id int64, estado int) error
	Eliminar(ctx context.Context, id int64) error
}

type cuponService struct {
	repo repository.CuponRepository
	log  zerolog.Logger
}

func NewCuponService(repo repository.CuponRepository, log zerolog.Logger) CuponService {
	return &cuponService{repo: repo, log: log.With().Str("service", "cupones").Logger()}
}

func (s *cuponService) Listar(ctx context.Context, incluirInactivos bool) ([]model.Cupon, error) {
	return s.repo.List(ctx, incluirInactivos)
}

func (s *cuponService) Detalle(ctx context.Context, id int64) (*model.Cupon, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCuponNoEncontrado
	}
	return c, err
}

// ValidarPorNombre resolves a coupon by its code for the order screen.
// Inactive and deleted coupons are indistinguishable from missing ones.
func (s *cuponService) ValidarPorNombre(ctx context.Context, nombre string) (*model.Cupon, error) {
	cupon, err := s.repo.FindByNombre(ctx, nombre)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCuponNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	if cupon.Estado != model.EstadoActivo {
		return nil, ErrCuponNoEncontrado
	}
	return cupon, nil
}

func validarCupon(in DatosCupon) error {
	if !in.Monto.IsPositive() {
		return ErrMontoInvalido
	}
	if in.Tipo == model.CuponPorcentaje && in.Monto.GreaterThan(decimal.NewFromInt(100)) {
		return ErrMontoInvalido
	}
	return nil
}

func (s *cuponService) Crear(ctx context.Context, in DatosCupon) (*model.Cupon, error) {
	if err := validarCupon(in); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByNombre(ctx, in.Nombre); err == nil {
		return nil, ErrCuponDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cupon := &model.Cupon{
		Nombre: in.Nombre,
		Monto:  in.Monto,
		Tipo:   in.Tipo,
		Estado: model.EstadoActivo,
	}
	if err := s.repo.Create(ctx, cupon); err != nil {
		return nil, err
	}
	s.log.Info().Int64("cupon_id", cupon.ID).Str("nombre", cupon.Nombre).Msg("cupón creado")
	return cupon, nil
}

func (s *cuponService) Actualizar(ctx context.Context, id int64, in DatosCupon) (*model.Cupon, error) {
	if err := validarCupon(in); err != nil {
		return nil, err
	}
	cupon, err := s.Detalle(ctx, id)
	if err != nil {
		return nil, err
	}
	if otro, err := s.repo.FindByNombre(ctx, in.Nombre); err == nil && otro.ID != id {
		return nil, ErrCuponDuplicado
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cupon.Nombre = in.Nombre
	cupon.Monto = in.Monto
	cupon.Tipo = in.Tipo
	if err := s.repo.Update(ctx, cupon); err != nil {
		return nil, err
	}
	return cupon, nil
}

func (s *cuponService) CambiarEstado(ctx context.Context, id int64, estado int) error {
	if estado != model.EstadoActivo && estado != model.EstadoInactivo {
		return ErrMontoInvalido
	}
	cupon, err := s.Detalle(ctx, id)
	if err != nil {
		return err
	}
	cupon.Estado = estado
	return s.repo.Update(ctx, cupon)
}

// Eliminar is a soft delete; usage history referenced by old sales survives.
func (s *cuponService) Eliminar(ctx context.Context, id int64) error {
	cupon, err := s.Detalle(ctx, id)
	if err != nil {
		return err
	}
	cupon.Estado = model.EstadoEliminado
	return s.repo.Update(ctx, cupon)
}
