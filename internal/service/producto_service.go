package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DatosProducto struct {
	Nombre      string
	Descripcion *string
	CategoriaID int64
	Precio      decimal.Decimal
	// ImagenBase64 optionally carries the product photo, with or without
	// a data URI prefix.
	ImagenBase64 *string
}

type ProductoService interface {
	Listar(ctx context.Context, categoriaID *int64, incluirInactivos bool) ([]model.Producto, error)
	Detalle(ctx context.Context, id int64) (*model.Producto, error)
	Crear(ctx context.Context, in DatosProducto) (*model.Producto, error)
	Actualizar(ctx context.Context, id int64, in DatosProducto) (*model.Producto, error)
	CambiarEstado(ctx context.Context, id int64, estado int) error
	Eliminar(ctx context.Context, id int64) error

	ListarCategorias(ctx context.Context, incluirInactivas bool) ([]model.Categoria, error)
	CrearCategoria(ctx context.Context, nombre string) (*model.Categoria, error)
	ActualizarCategoria(ctx context.Context, id int64, nombre string) (*model.Categoria, error)
	CambiarEstadoCategoria(ctx context.Context, id int64, estado int) error
	EliminarCategoria(ctx context.Context, id int64) error
}

type productoService struct {
	repo repository.ProductoRepository
	log  zerolog.Logger
}

func NewProductoService(repo repository.ProductoRepository, log zerolog.Logger) ProductoService {
	return &productoService{repo: repo, log: log.With().Str("service", "productos").Logger()}
}

func (s *productoService) Listar(ctx context.Context, categoriaID *int64, incluirInactivos bool) ([]model.Producto, error) {
	return s.repo.List(ctx, categoriaID, incluirInactivos)
}

func (s *productoService) Detalle(ctx context.Context, id int64) (*model.Producto, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductoNoEncontrado
	}
	return p, err
}

func decodificarImagen(b64 *string) ([]byte, error) {
	if b64 == nil || *b64 == "" {
		return nil, nil
	}
	raw := *b64
	if i := strings.Index(raw, ","); i >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[i+1:]
	}
	return base64.StdEncoding.DecodeString(raw)
}

func (s *productoService) validarCategoria(ctx context.Context, id int64) error {
	cat, err := s.repo.FindCategoriaByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoriaInactiva
	}
	if err != nil {
		return err
	}
	if cat.Estado != model.EstadoActivo {
		return ErrCategoriaInactiva
	}
	return nil
}

func (s *productoService) Crear(ctx context.Context, in DatosProducto) (*model.Producto, error) {
	if !in.Precio.IsPositive() {
		return nil, ErrMontoInvalido
	}
	if err := s.validarCategoria(ctx, in.CategoriaID); err != nil {
		return nil, err
	}
	imagen, err := decodificarImagen(in.ImagenBase64)
	if err != nil {
		return nil, err
	}

	prod := &model.Producto{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		CategoriaID: in.CategoriaID,
		Precio:      in.Precio,
		Imagen:      imagen,
		Estado:      model.EstadoActivo,
	}
	if err := s.repo.Create(ctx, prod); err != nil {
		return nil, err
	}
	s.log.Info().Int64("producto_id", prod.ID).Str("nombre", prod.Nombre).Msg("producto creado")
	return prod, nil
}

func (s *productoService) Actualizar(ctx context.Context, id int64, in DatosProducto) (*model.Producto, error) {
	if !in.Precio.IsPositive() {
		return nil, ErrMontoInvalido
	}
	prod, err := s.Detalle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validarCategoria(ctx, in.CategoriaID); err != nil {
		return nil, err
	}

	prod.Nombre = in.Nombre
	prod.Descripcion = in.Descripcion
	prod.CategoriaID = in.CategoriaID
	prod.Precio = in.Precio
	if in.ImagenBase64 != nil {
		imagen, err := decodificarImagen(in.ImagenBase64)
		if err != nil {
			return nil, err
		}
		prod.Imagen = imagen
	}
	if err := s.repo.Update(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *productoService) CambiarEstado(ctx context.Context, id int64, estado int) error {
	if estado != model.EstadoActivo && estado != model.EstadoInactivo {
		return ErrMontoInvalido
	}
	prod, err := s.Detalle(ctx, id)
	if err != nil {
		return err
	}
	prod.Estado = estado
	return s.repo.Update(ctx, prod)
}

// Eliminar is a soft delete; sale lines keep their product reference.
func (s *productoService) Eliminar(ctx context.Context, id int64) error {
	prod, err := s.Detalle(ctx, id)
	if err != nil {
		return err
	}
	prod.Estado = model.EstadoEliminado
	return s.repo.Update(ctx, prod)
}

func (s *productoService) ListarCategorias(ctx context.Context, incluirInactivas bool) ([]model.Categoria, error) {
	return s.repo.ListCategorias(ctx, incluirInactivas)
}

func (s *productoService) CrearCategoria(ctx context.Context, nombre string) (*model.Categoria, error) {
	if _, err := s.repo.FindCategoriaByNombre(ctx, nombre); err == nil {
		return nil, ErrCategoriaDuplicada
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	// Re-creating a deleted name revives the original row so existing
	// products keep their categoría reference.
	if cat, err := s.repo.FindCategoriaEliminadaByNombre(ctx, nombre); err == nil {
		cat.Nombre = nombre
		cat.Estado = model.EstadoActivo
		if err := s.repo.UpdateCategoria(ctx, cat); err != nil {
			return nil, err
		}
		return cat, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cat := &model.Categoria{Nombre: nombre, Estado: model.EstadoActivo}
	if err := s.repo.CreateCategoria(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *productoService) ActualizarCategoria(ctx context.Context, id int64, nombre string) (*model.Categoria, error) {
	cat, err := s.repo.FindCategoriaByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoriaNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	if otra, err := s.repo.FindCategoriaByNombre(ctx, nombre); err == nil && otra.ID != id {
		return nil, ErrCategoriaDuplicada
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cat.Nombre = nombre
	if err := s.repo.UpdateCategoria(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *productoService) CambiarEstadoCategoria(ctx context.Context, id int64, estado int) error {
	if estado != model.EstadoActivo && estado != model.EstadoInactivo {
		return ErrMontoInvalido
	}
	cat, err := s.repo.FindCategoriaByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoriaNoEncontrada
	}
	if err != nil {
		return err
	}
	cat.Estado = estado
	return s.repo.UpdateCategoria(ctx, cat)
}

func (s *productoService) EliminarCategoria(ctx context.Context, id int64) error {
	cat, err := s.repo.FindCategoriaByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoriaNoEncontrada
	}
	if err != nil {
		return err
	}
	cat.Estado = model.EstadoEliminado
	return s.repo.UpdateCategoria(ctx, cat)
}
