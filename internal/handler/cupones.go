package handler

import (
	"net/http"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/dto"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/gin-gonic/gin"
)

type CuponHandler struct{ svc service.CuponService }

func NewCuponHandler(svc service.CuponService) *CuponHandler { return &CuponHandler{svc: svc} }

func (h *CuponHandler) Listar(c *gin.Context) {
	cupones, err := h.svc.Listar(c.Request.Context(), c.Query("todos") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cupones)
}

func (h *CuponHandler) Detalle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cupon, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cupon)
}

func (h *CuponHandler) Validar(c *gin.Context) {
	cupon, err := h.svc.ValidarPorNombre(c.Request.Context(), c.Param("nombre"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cupon)
}

func (h *CuponHandler) Crear(c *gin.Context) {
	var req dto.CuponRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cupon, err := h.svc.Crear(c.Request.Context(), service.DatosCupon{
		Nombre: req.Nombre,
		Monto:  req.Monto,
		Tipo:   req.Tipo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cupon)
}

func (h *CuponHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CuponRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cupon, err := h.svc.Actualizar(c.Request.Context(), id, service.DatosCupon{
		Nombre: req.Nombre,
		Monto:  req.Monto,
		Tipo:   req.Tipo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cupon)
}

func (h *CuponHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CuponHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
