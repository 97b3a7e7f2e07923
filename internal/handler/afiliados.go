package handler

import (
	"net/http"

	"github.com/MateoRicci/gestion-cec-sub000/internal/apierror"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AfiliadoHandler struct {
	svc service.AfiliadoService
}

func NewAfiliadoHandler(svc service.AfiliadoService) *AfiliadoHandler {
	return &AfiliadoHandler{svc: svc}
}

// BuscarPorDocumento godoc
// @Summary      Buscar afiliado por documento
// @Description  Lookup de la pantalla de venta. El documento "0" responde con el Consumidor Final.
// @Tags         afiliados
// @Produce      json
// @Security     BearerAuth
// @Param        documento path string true "DNI del afiliado, o 0 para consumidor final"
// @Success      200 {object} dto.AfiliadoLookupResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/afiliados/buscar-por-documento/{documento} [get]
func (h *AfiliadoHandler) BuscarPorDocumento(c *gin.Context) {
	documento := c.Param("documento")
	resp, err := h.svc.BuscarPorDocumento(c.Request.Context(), documento)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Alta de afiliado
// @Tags         afiliados
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CrearAfiliadoRequest true "Datos del afiliado"
// @Success      201 {object} dto.AfiliadoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/afiliados [post]
func (h *AfiliadoHandler) Crear(c *gin.Context) {
	var req dto.CrearAfiliadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar afiliados
// @Tags         afiliados
// @Produce      json
// @Security     BearerAuth
// @Param        incluir_inactivos query bool false "Incluir afiliados dados de baja"
// @Success      200 {array} dto.AfiliadoResponse
// @Router       /v1/afiliados [get]
func (h *AfiliadoHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudieron listar los afiliados"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar afiliado
// @Tags         afiliados
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                        true "ID del afiliado"
// @Param        request body dto.ActualizarAfiliadoRequest true "Campos a modificar"
// @Success      200 {object} dto.AfiliadoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/afiliados/{id} [put]
func (h *AfiliadoHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarAfiliadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarFamiliar godoc
// @Summary      Agregar familiar a un afiliado
// @Tags         afiliados
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                   true "ID del afiliado titular"
// @Param        request body dto.CrearFamiliarRequest true "Datos del familiar"
// @Success      201
// @Failure      409 {object} apierror.APIError
// @Router       /v1/afiliados/{id}/familiares [post]
func (h *AfiliadoHandler) AgregarFamiliar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearFamiliarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AgregarFamiliar(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}

// QuitarFamiliar godoc
// @Summary      Quitar familiar
// @Tags         afiliados
// @Security     BearerAuth
// @Param        familiarId path string true "ID del familiar"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/afiliados/familiares/{familiarId} [delete]
func (h *AfiliadoHandler) QuitarFamiliar(c *gin.Context) {
	familiarID, ok := parseUUIDParam(c, "familiarId")
	if !ok {
		return
	}
	if err := h.svc.QuitarFamiliar(c.Request.Context(), familiarID); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
