package handler

import (
	"net/http"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/gin-gonic/gin"
)

type VentaHandler struct {
	svc     service.VentaService
	recibos service.ReciboService
}

func NewVentaHandler(svc service.VentaService, recibos service.ReciboService) *VentaHandler {
	return &VentaHandler{svc: svc, recibos: recibos}
}

func (h *VentaHandler) filtro(c *gin.Context) (repository.VentaFilter, bool) {
	f := repository.VentaFilter{
		SoloHoy:   c.Query("hoy") == "true",
		FormaPago: c.Query("forma_pago"),
	}
	if !f.SoloHoy {
		inicio, fin, ok := parseRango(c)
		if !ok {
			return f, false
		}
		f.FechaInicio, f.FechaFin = inicio, fin
	}
	return f, true
}

func (h *VentaHandler) Listar(c *gin.Context) {
	f, ok := h.filtro(c)
	if !ok {
		return
	}
	ventas, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventas)
}

func (h *VentaHandler) Detalle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	venta, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venta)
}

func (h *VentaHandler) Totales(c *gin.Context) {
	f, ok := h.filtro(c)
	if !ok {
		return
	}
	totales, err := h.svc.Totales(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totales)
}

// Recibo streams the sale's PDF receipt, generating it on demand if the
// background worker hasn't produced it yet.
func (h *VentaHandler) Recibo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pdf, err := h.recibos.Generar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="recibo.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
