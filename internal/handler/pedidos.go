package handler

import (
	"net/http"
	"strconv"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/apierror"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/dto"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/middleware"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidoHandler struct {
	pedidos service.PedidoService
	ventas  service.VentaService
}

func NewPedidoHandler(pedidos service.PedidoService, ventas service.VentaService) *PedidoHandler {
	return &PedidoHandler{pedidos: pedidos, ventas: ventas}
}

func lineasDe(req []dto.LineaPedidoRequest) []service.LineaPedido {
	lineas := make([]service.LineaPedido, 0, len(req))
	for _, l := range req {
		lineas = append(lineas, service.LineaPedido{ProductoID: l.ProductoID, Cantidad: l.Cantidad})
	}
	return lineas
}

// Listar returns non-cancelled orders, optionally filtered by estado or
// restricted to today.
func (h *PedidoHandler) Listar(c *gin.Context) {
	f := repository.PedidoFilter{SoloHoy: c.Query("hoy") == "true"}
	if v := c.Query("estado"); v != "" {
		estado, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("estado inválido"))
			return
		}
		f.Estado = &estado
	}
	if !f.SoloHoy {
		inicio, fin, ok := parseRango(c)
		if !ok {
			return
		}
		f.FechaInicio, f.FechaFin = inicio, fin
	}

	pedidos, err := h.pedidos.Listar(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedidos)
}

func (h *PedidoHandler) Detalle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pedido, err := h.pedidos.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

func (h *PedidoHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	pedido, err := h.pedidos.Crear(c.Request.Context(), service.NuevoPedido{
		NombreCliente: req.NombreCliente,
		Tipo:          req.Tipo,
		Notas:         req.Notas,
		CuponID:       req.CuponID,
		EmpleadoID:    claims.EmpleadoID,
		Lineas:        lineasDe(req.Lineas),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pedido)
}

func (h *PedidoHandler) Editar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	pedido, err := h.pedidos.Editar(c.Request.Context(), id, service.NuevoPedido{
		NombreCliente: req.NombreCliente,
		Tipo:          req.Tipo,
		Notas:         req.Notas,
		CuponID:       req.CuponID,
		EmpleadoID:    claims.EmpleadoID,
		Lineas:        lineasDe(req.Lineas),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

func (h *PedidoHandler) Anular(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.pedidos.Anular(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Pagar settles a pending order as a sale.
func (h *PedidoHandler) Pagar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PagarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	res, err := h.ventas.ProcesarPago(c.Request.Context(), id, req.FormaPago, claims.EmpleadoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResultadoPagoResponse{VentaID: res.VentaID, PedidoID: res.PedidoID})
}

func (h *PedidoHandler) Entregar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ventas.MarcarEntregado(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"idpedido": id, "estado": "Entregado"})
}
