package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/infra"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ReciboService renders receipt PDFs for settled sales. The background
// worker persists them to disk; Generar serves on demand with a cache hit
// when the worker already ran.
type ReciboService interface {
	Generar(ctx context.Context, ventaID int64) ([]byte, error)
	GuardarEnDisco(ctx context.Context, ventaID int64) (string, error)
}

type reciboService struct {
	ventas      repository.VentaRepository
	storagePath string
	log         zerolog.Logger
}

func NewReciboService(ventas repository.VentaRepository, storagePath string, log zerolog.Logger) ReciboService {
	return &reciboService{
		ventas:      ventas,
		storagePath: storagePath,
		log:         log.With().Str("service", "recibos").Logger(),
	}
}

func (s *reciboService) rutaDe(ventaID int64) string {
	return filepath.Join(s.storagePath, "recibo_"+strconv.FormatInt(ventaID, 10)+".pdf")
}

func (s *reciboService) Generar(ctx context.Context, ventaID int64) ([]byte, error) {
	if data, err := os.ReadFile(s.rutaDe(ventaID)); err == nil {
		return data, nil
	}

	venta, err := s.ventas.FindByID(ctx, ventaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVentaNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return infra.GenerarReciboPDF(venta)
}

func (s *reciboService) GuardarEnDisco(ctx context.Context, ventaID int64) (string, error) {
	venta, err := s.ventas.FindByID(ctx, ventaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrVentaNoEncontrada
	}
	if err != nil {
		return "", err
	}
	path, err := infra.GuardarReciboPDF(venta, s.storagePath)
	if err != nil {
		return "", err
	}
	s.log.Info().Int64("venta_id", ventaID).Str("path", path).Msg("recibo generado")
	return path, nil
}
