package handler

import (
	"net/http"

	"github.com/MateoRicci/gestion-cec-sub000/internal/apierror"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct {
	svc service.CatalogoService
}

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ListarConvenios godoc
// @Summary      Listar convenios
// @Tags         catalogos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ConvenioResponse
// @Router       /v1/convenios [get]
func (h *CatalogoHandler) ListarConvenios(c *gin.Context) {
	resp, err := h.svc.ListarConvenios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudieron listar los convenios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearConvenio godoc
// @Summary      Crear convenio
// @Description  Todo convenio nuevo declara la lista de precios que le corresponde.
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CrearConvenioRequest true "Datos del convenio"
// @Success      201 {object} dto.ConvenioResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/convenios [post]
func (h *CatalogoHandler) CrearConvenio(c *gin.Context) {
	var req dto.CrearConvenioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearConvenio(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPuntosVenta godoc
// @Summary      Listar puntos de venta
// @Tags         catalogos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PuntoVentaResponse
// @Router       /v1/puntos-venta [get]
func (h *CatalogoHandler) ListarPuntosVenta(c *gin.Context) {
	resp, err := h.svc.ListarPuntosVenta(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudieron listar los puntos de venta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMediosPago godoc
// @Summary      Listar medios de pago
// @Tags         catalogos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.MedioPagoResponse
// @Router       /v1/medios-pago [get]
func (h *CatalogoHandler) ListarMediosPago(c *gin.Context) {
	resp, err := h.svc.ListarMediosPago(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudieron listar los medios de pago"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
