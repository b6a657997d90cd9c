package handler

import (
	"net/http"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/dto"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/middleware"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sesion, err := h.svc.Login(c.Request.Context(), req.Usuario, req.Contrasena)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sesion)
}

// Verify lets the front end confirm a stored token is still usable.
func (h *AuthHandler) Verify(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		respondError(c, service.ErrCredenciales)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"idempleado": claims.EmpleadoID,
		"usuario":    claims.Usuario,
		"rol":        claims.Rol,
	})
}

func (h *AuthHandler) ListarEmpleados(c *gin.Context) {
	empleados, err := h.svc.ListarEmpleados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, empleados)
}

func (h *AuthHandler) DetalleEmpleado(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	emp, err := h.svc.DetalleEmpleado(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *AuthHandler) CrearEmpleado(c *gin.Context) {
	var req dto.EmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	emp, err := h.svc.CrearEmpleado(c.Request.Context(), service.DatosEmpleado{
		Nombres:    req.Nombres,
		Apellidos:  req.Apellidos,
		Usuario:    req.Usuario,
		Contrasena: req.Contrasena,
		Rol:        req.Rol,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

func (h *AuthHandler) ActualizarEmpleado(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.EmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	emp, err := h.svc.ActualizarEmpleado(c.Request.Context(), id, service.DatosEmpleado{
		Nombres:    req.Nombres,
		Apellidos:  req.Apellidos,
		Usuario:    req.Usuario,
		Contrasena: req.Contrasena,
		Rol:        req.Rol,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *AuthHandler) CambiarEstadoEmpleado(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarEstadoEmpleado(c.Request.Context(), id, req.Estado); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) EliminarEmpleado(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarEmpleado(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
