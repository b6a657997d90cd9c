package handler

import (
	"net/http"
	"strconv"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/apierror"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/gin-gonic/gin"
)

type ReporteHandler struct{ svc service.ReporteService }

func NewReporteHandler(svc service.ReporteService) *ReporteHandler {
	return &ReporteHandler{svc: svc}
}

func (h *ReporteHandler) ResumenDelDia(c *gin.Context) {
	resumen, err := h.svc.ResumenDelDia(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumen)
}

func (h *ReporteHandler) VentasPorRango(c *gin.Context) {
	inicio, fin, ok := parseRango(c)
	if !ok {
		return
	}
	if inicio == nil || fin == nil {
		c.JSON(http.StatusBadRequest, apierror.New("fecha_inicio y fecha_fin son obligatorias"))
		return
	}
	if fin.Before(*inicio) {
		c.JSON(http.StatusBadRequest, apierror.New("fecha_fin debe ser posterior a fecha_inicio"))
		return
	}
	totales, err := h.svc.VentasPorRango(c.Request.Context(), *inicio, *fin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totales)
}

func (h *ReporteHandler) TopProductos(c *gin.Context) {
	inicio, fin, ok := parseRango(c)
	if !ok {
		return
	}
	limite, _ := strconv.Atoi(c.DefaultQuery("limite", "10"))
	if limite < 1 || limite > 100 {
		limite = 10
	}
	top, err := h.svc.TopProductos(c.Request.Context(), inicio, fin, limite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, top)
}
