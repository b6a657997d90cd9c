package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/apierror"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service sentinel errors to HTTP status codes. Anything
// unrecognized is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPedidoNoEncontrado),
		errors.Is(err, service.ErrVentaNoEncontrada),
		errors.Is(err, service.ErrEmpleadoNoEncontrado),
		errors.Is(err, service.ErrCuponNoEncontrado),
		errors.Is(err, service.ErrProductoNoEncontrado),
		errors.Is(err, service.ErrCategoriaNoEncontrada),
		errors.Is(err, service.ErrUsuarioNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))

	case errors.Is(err, service.ErrCajaYaAbierta),
		errors.Is(err, service.ErrVentaDuplicada),
		errors.Is(err, service.ErrCuponDuplicado),
		errors.Is(err, service.ErrCategoriaDuplicada),
		errors.Is(err, service.ErrUsuarioDuplicado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))

	case errors.Is(err, service.ErrCajaNoAbierta),
		errors.Is(err, service.ErrSaldoInsuficiente),
		errors.Is(err, service.ErrMontoInvalido),
		errors.Is(err, service.ErrCierreNoCoincide),
		errors.Is(err, service.ErrEstadoPedidoInvalido),
		errors.Is(err, service.ErrFormaPagoInvalida),
		errors.Is(err, service.ErrPedidoSinLineas),
		errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrCategoriaInactiva),
		errors.Is(err, service.ErrTotalInconsistente),
		errors.Is(err, service.ErrRolInvalido):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))

	case errors.Is(err, service.ErrCredenciales),
		errors.Is(err, service.ErrUsuarioInactivo):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))

	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return 0, false
	}
	return id, true
}

// parseRango reads optional fecha_inicio / fecha_fin query params in
// YYYY-MM-DD format. The end date is inclusive (extended to end of day).
func parseRango(c *gin.Context) (inicio, fin *time.Time, ok bool) {
	const layout = "2006-01-02"
	if v := c.Query("fecha_inicio"); v != "" {
		t, err := time.Parse(layout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha_inicio inválida, use YYYY-MM-DD"))
			return nil, nil, false
		}
		inicio = &t
	}
	if v := c.Query("fecha_fin"); v != "" {
		t, err := time.Parse(layout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha_fin inválida, use YYYY-MM-DD"))
			return nil, nil, false
		}
		t = t.Add(24*time.Hour - time.Second)
		fin = &t
	}
	return inicio, fin, true
}
