package handler

import (
	"net/http"

	"github.com/MateoRicci/gestion-cec-sub000/internal/apierror"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprobanteHandler struct {
	svc service.ComprobanteService
}

func NewComprobanteHandler(svc service.ComprobanteService) *ComprobanteHandler {
	return &ComprobanteHandler{svc: svc}
}

// ObtenerPorVenta godoc
// @Summary      Comprobante de una venta
// @Tags         comprobantes
// @Produce      json
// @Security     BearerAuth
// @Param        ventaId path string true "ID de la venta"
// @Success      200 {object} dto.ComprobanteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/comprobantes/venta/{ventaId} [get]
func (h *ComprobanteHandler) ObtenerPorVenta(c *gin.Context) {
	ventaID, ok := parseUUIDParam(c, "ventaId")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorVenta(c.Request.Context(), ventaID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary      Descargar PDF del comprobante
// @Tags         comprobantes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "ID del comprobante"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/comprobantes/pdf/{id} [get]
func (h *ComprobanteHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.ObtenerPDFPath(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "comprobante_"+id.String()+".pdf")
}

// Reintentar godoc
// @Summary      Reintentar generacion de un comprobante
// @Description  Reencola el trabajo de generacion para un comprobante en error.
// @Tags         comprobantes
// @Security     BearerAuth
// @Param        id path string true "ID del comprobante"
// @Success      202
// @Failure      404 {object} apierror.APIError
// @Router       /v1/comprobantes/{id}/reintentar [post]
func (h *ComprobanteHandler) Reintentar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Reintentar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusAccepted)
}
