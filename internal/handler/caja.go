package handler

import (
	"errors"
	"net/http"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/apierror"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/dto"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/middleware"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Estado returns the most recent session, open or closed. When no session
// has ever existed a synthetic closed state is reported.
func (h *CajaHandler) Estado(c *gin.Context) {
	estado, err := h.svc.EstadoActual(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estado)
}

// Actual returns the currently open session, 404 when none.
func (h *CajaHandler) Actual(c *gin.Context) {
	caja, err := h.svc.CajaAbierta(c.Request.Context())
	if errors.Is(err, service.ErrCajaNoAbierta) {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, caja)
}

func (h *CajaHandler) Saldo(c *gin.Context) {
	saldo, err := h.svc.Saldo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SaldoResponse{Saldo: saldo})
}

func (h *CajaHandler) MontoSugerido(c *gin.Context) {
	monto, err := h.svc.MontoAperturaSugerido(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monto": monto})
}

func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	mov, err := h.svc.Abrir(c.Request.Context(), req.Monto, req.Descripcion, claims.EmpleadoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}

func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	mov, err := h.svc.Cerrar(c.Request.Context(), req.Monto, req.Descripcion, claims.EmpleadoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}

func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	mov, err := h.svc.RegistrarMovimiento(c.Request.Context(), req.Tipo, req.Monto, req.Descripcion, claims.EmpleadoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}

// Movimientos lists cash movements, defaulting to today when no range is
// given.
func (h *CajaHandler) Movimientos(c *gin.Context) {
	inicio, fin, ok := parseRango(c)
	if !ok {
		return
	}
	movs, err := h.svc.Movimientos(c.Request.Context(), repository.MovimientoFilter{
		FechaInicio: inicio,
		FechaFin:    fin,
		Tipo:        c.Query("tipo"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movs)
}

func (h *CajaHandler) Historial(c *gin.Context) {
	var empleadoID *int64
	claims := middleware.GetClaims(c)
	// Ayudantes only see their own movements; administrators see everything.
	if claims.Rol != model.RolAdministrador {
		empleadoID = &claims.EmpleadoID
	}
	movs, err := h.svc.HistorialDelDia(c.Request.Context(), empleadoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movs)
}

func (h *CajaHandler) Totales(c *gin.Context) {
	ingresos, egresos, err := h.svc.TotalesDelDia(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalesCajaResponse{Ingresos: ingresos, Egresos: egresos})
}
