package handler

import (
	"net/http"

	"github.com/MateoRicci/gestion-cec-sub000/internal/apierror"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/middleware"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentaHandler struct {
	svc service.VentaService
}

func NewVentaHandler(svc service.VentaService) *VentaHandler {
	return &VentaHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar venta
// @Description  Confirma el carrito armado en la pantalla de venta. Los precios se recalculan en el servidor.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RegistrarVentaRequest true "Carrito y medio de pago"
// @Success      201 {object} dto.VentaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentaHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token sin usuario valido"))
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancelar godoc
// @Summary      Cancelar venta
// @Description  Marca la venta como cancelada y registra el movimiento de anulacion en la caja.
// @Tags         ventas
// @Accept       json
// @Security     BearerAuth
// @Param        id      path string                    true "ID de la venta"
// @Param        request body dto.CancelarVentaRequest true "Motivo de la cancelacion"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventas/{id} [delete]
func (h *VentaHandler) Cancelar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CancelarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Obtener godoc
// @Summary      Detalle de una venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID de la venta"
// @Success      200 {object} dto.VentaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id} [get]
func (h *VentaHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorSesion godoc
// @Summary      Ventas de una sesion de caja
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        sesionId path string true "ID de la sesion de caja"
// @Success      200 {object} dto.VentaListResponse
// @Router       /v1/ventas/sesion/{sesionId} [get]
func (h *VentaHandler) ListarPorSesion(c *gin.Context) {
	sesionID, ok := parseUUIDParam(c, "sesionId")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorSesion(c.Request.Context(), sesionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudieron listar las ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
