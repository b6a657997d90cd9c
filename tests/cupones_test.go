package tests

import (
	"context"
	"testing"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCuponService(repo *fakeCuponRepo) service.CuponService {
	return service.NewCuponService(repo, zerolog.Nop())
}

func TestCrearCupon(t *testing.T) {
	svc := newCuponService(newFakeCuponRepo())

	cupon, err := svc.Crear(context.Background(), service.DatosCupon{
		Nombre: "BIENVENIDA", Monto: dec("15"), Tipo: model.CuponPorcentaje,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoActivo, cupon.Estado)
	assert.Equal(t, 0, cupon.VecesUsado, "el contador arranca en cero")
}

func TestCrearCuponNombreDuplicado(t *testing.T) {
	svc := newCuponService(newFakeCuponRepo())
	ctx := context.Background()

	_, err := svc.Crear(ctx, service.DatosCupon{Nombre: "PROMO", Monto: dec("5"), Tipo: model.CuponFijo})
	require.NoError(t, err)

	_, err = svc.Crear(ctx, service.DatosCupon{Nombre: "PROMO", Monto: dec("8"), Tipo: model.CuponFijo})
	assert.ErrorIs(t, err, service.ErrCuponDuplicado)
}

func TestCrearCuponMontoInvalido(t *testing.T) {
	svc := newCuponService(newFakeCuponRepo())
	ctx := context.Background()

	_, err := svc.Crear(ctx, service.DatosCupon{Nombre: "CERO", Monto: dec("0"), Tipo: model.CuponFijo})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)

	// A percentage above 100 would produce negative totals.
	_, err = svc.Crear(ctx, service.DatosCupon{Nombre: "TODO", Monto: dec("150"), Tipo: model.CuponPorcentaje})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)

	// 150 as fixed amount is fine.
	_, err = svc.Crear(ctx, service.DatosCupon{Nombre: "FIJO", Monto: dec("150"), Tipo: model.CuponFijo})
	assert.NoError(t, err)
}

func TestActualizarCupon(t *testing.T) {
	svc := newCuponService(newFakeCuponRepo())
	ctx := context.Background()

	cupon, err := svc.Crear(ctx, service.DatosCupon{Nombre: "PROMO", Monto: dec("5"), Tipo: model.CuponFijo})
	require.NoError(t, err)

	actualizado, err := svc.Actualizar(ctx, cupon.ID, service.DatosCupon{
		Nombre: "PROMO2", Monto: dec("20"), Tipo: model.CuponPorcentaje,
	})
	require.NoError(t, err)
	assert.Equal(t, "PROMO2", actualizado.Nombre)
	assert.True(t, actualizado.Monto.Equal(dec("20")))
}

func TestActualizarCuponNombreAjeno(t *testing.T) {
	svc := newCuponService(newFakeCuponRepo())
	ctx := context.Background()

	_, err := svc.Crear(ctx, service.DatosCupon{Nombre: "UNO", Monto: dec("5"), Tipo: model.CuponFijo})
	require.NoError(t, err)
	dos, err := svc.Crear(ctx, service.DatosCupon{Nombre: "DOS", Monto: dec("5"), Tipo: model.CuponFijo})
	require.NoError(t, err)

	_, err = svc.Actualizar(ctx, dos.ID, service.DatosCupon{Nombre: "UNO", Monto: dec("5"), Tipo: model.CuponFijo})
	assert.ErrorIs(t, err, service.ErrCuponDuplicado)
}

func TestCambiarEstadoYEliminarCupon(t *testing.T) {
	repo := newFakeCuponRepo()
	svc := newCuponService(repo)
	ctx := context.Background()

	cupon, err := svc.Crear(ctx, service.DatosCupon{Nombre: "PROMO", Monto: dec("5"), Tipo: model.CuponFijo})
	require.NoError(t, err)

	require.NoError(t, svc.CambiarEstado(ctx, cupon.ID, model.EstadoInactivo))

	activos, err := svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.Listar(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	require.NoError(t, svc.Eliminar(ctx, cupon.ID))

	// Soft deleted: gone from every listing and read, row still in storage.
	todos, err = svc.Listar(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, todos)
	_, err = svc.Detalle(ctx, cupon.ID)
	assert.ErrorIs(t, err, service.ErrCuponNoEncontrado)
	assert.Len(t, repo.cupones, 1)
}

func TestValidarCuponPorNombre(t *testing.T) {
	svc := newCuponService(newFakeCuponRepo())
	ctx := context.Background()

	cupon, err := svc.Crear(ctx, service.DatosCupon{Nombre: "VERANO", Monto: dec("10"), Tipo: model.CuponPorcentaje})
	require.NoError(t, err)

	encontrado, err := svc.ValidarPorNombre(ctx, "VERANO")
	require.NoError(t, err)
	assert.Equal(t, cupon.ID, encontrado.ID)

	_, err = svc.ValidarPorNombre(ctx, "INVIERNO")
	assert.ErrorIs(t, err, service.ErrCuponNoEncontrado)

	// Once deactivated the code stops validating.
	require.NoError(t, svc.CambiarEstado(ctx, cupon.ID, model.EstadoInactivo))
	_, err = svc.ValidarPorNombre(ctx, "VERANO")
	assert.ErrorIs(t, err, service.ErrCuponNoEncontrado)
}

func TestDetalleCuponInexistente(t *testing.T) {
	svc := newCuponService(newFakeCuponRepo())

	_, err := svc.Detalle(context.Background(), 77)
	assert.ErrorIs(t, err, service.ErrCuponNoEncontrado)
}
