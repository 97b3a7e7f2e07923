package handler

import (
	"net/http"

	"github.com/MateoRicci/gestion-cec-sub000/internal/apierror"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductoHandler struct {
	svc service.ProductoService
}

func NewProductoHandler(svc service.ProductoService) *ProductoHandler {
	return &ProductoHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar productos
// @Description  Catalogo con precios por lista. Filtrable por punto de venta.
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        punto_venta_id query string false "Filtrar por punto de venta"
// @Success      200 {array} dto.ProductoResponse
// @Router       /v1/productos [get]
func (h *ProductoHandler) Listar(c *gin.Context) {
	var pvID *uuid.UUID
	if raw := c.Query("punto_venta_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("punto_venta_id debe ser un UUID valido"))
			return
		}
		pvID = &id
	}
	resp, err := h.svc.Listar(c.Request.Context(), pvID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudieron listar los productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CrearProductoRequest true "Datos del producto"
// @Success      201 {object} dto.ProductoResponse
// @Router       /v1/productos [post]
func (h *ProductoHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                        true "ID del producto"
// @Param        request body dto.ActualizarProductoRequest true "Campos a modificar"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [put]
func (h *ProductoHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
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

// Precios godoc
// @Summary      Precios de un producto
// @Description  Devuelve el precio del producto en cada lista.
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID del producto"
// @Success      200 {object} dto.PreciosProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/precios [get]
func (h *ProductoHandler) Precios(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Precios(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPrecio godoc
// @Summary      Fijar precio de un producto en una lista
// @Tags         productos
// @Accept       json
// @Security     BearerAuth
// @Param        id      path string                      true "ID del producto"
// @Param        request body dto.ActualizarPrecioRequest true "Lista y precio"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/precios [put]
func (h *ProductoHandler) ActualizarPrecio(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarPrecio(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListasPrecios godoc
// @Summary      Listar listas de precios
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ListaPrecioResponse
// @Router       /v1/listas-precios [get]
func (h *ProductoHandler) ListasPrecios(c *gin.Context) {
	resp, err := h.svc.ListasPrecios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudieron listar las listas de precios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
