package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MateoRicci/gestion-cec-sub000/internal/apierror"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/middleware"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CajaHandler struct {
	svc    service.CajaService
	estado *service.EstadoCache
}

func NewCajaHandler(svc service.CajaService, estado *service.EstadoCache) *CajaHandler {
	return &CajaHandler{svc: svc, estado: estado}
}

// Abrir godoc
// @Summary      Abrir caja
// @Description  Abre una sesion de caja en el punto de venta con el monto inicial declarado.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AbrirCajaRequest true "Punto de venta y monto inicial"
// @Success      201 {object} dto.SesionCajaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token sin usuario valido"))
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Ingreso godoc
// @Summary      Registrar ingreso manual de efectivo
// @Tags         caja
// @Accept       json
// @Security     BearerAuth
// @Param        request body dto.MovimientoManualRequest true "Monto y descripcion"
// @Success      201
// @Failure      409 {object} apierror.APIError
// @Router       /v1/caja/ingreso [post]
func (h *CajaHandler) Ingreso(c *gin.Context) {
	h.movimientoManual(c, model.MovIngresoManual)
}

// Egreso godoc
// @Summary      Registrar egreso manual de efectivo
// @Tags         caja
// @Accept       json
// @Security     BearerAuth
// @Param        request body dto.MovimientoManualRequest true "Monto y descripcion"
// @Success      201
// @Failure      409 {object} apierror.APIError
// @Router       /v1/caja/egreso [post]
func (h *CajaHandler) Egreso(c *gin.Context) {
	h.movimientoManual(c, model.MovEgresoManual)
}

func (h *CajaHandler) movimientoManual(c *gin.Context, tipo string) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RegistrarMovimiento(c.Request.Context(), tipo, req); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}

// Cerrar godoc
// @Summary      Cerrar caja
// @Description  Cierra la sesion, calcula el arqueo y genera el ticket de cierre en PDF.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "ID de la sesion de caja"
// @Param        request body dto.CerrarCajaRequest true "Observaciones del cierre"
// @Success      200 {object} dto.CierreCajaResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Failure      500 {object} apierror.APIError
// @Router       /v1/caja/{id}/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSesionNoEncontrada):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrSesionCerrada), errors.Is(err, service.ErrCierreEnCurso):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			log.Error().Err(err).Str("sesion_id", id.String()).Msg("cierre de caja fallido")
			c.JSON(http.StatusInternalServerError, apierror.New("no se pudo cerrar la caja"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estado godoc
// @Summary      Estado de la caja de un punto de venta
// @Description  Devuelve la sesion abierta del punto de venta, o 404 si la caja esta cerrada.
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        puntoVentaId path string true "ID del punto de venta"
// @Success      200 {object} dto.SesionCajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caja/estado/{puntoVentaId} [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	pvID, ok := parseUUIDParam(c, "puntoVentaId")
	if !ok {
		return
	}

	if h.estado != nil {
		if cached, hit := h.estado.Get(c.Request.Context(), pvID); hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	resp, err := h.svc.Estado(c.Request.Context(), pvID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	if h.estado != nil {
		h.estado.Set(c.Request.Context(), pvID, resp)
	}
	c.JSON(http.StatusOK, resp)
}

// Movimientos godoc
// @Summary      Movimientos de una sesion de caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID de la sesion de caja"
// @Success      200 {array} dto.MovimientoResponse
// @Router       /v1/caja/{id}/movimientos [get]
func (h *CajaHandler) Movimientos(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Movimientos(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudieron listar los movimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial godoc
// @Summary      Historial de cierres de caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Pagina (desde 1)"
// @Param        limit query int false "Resultados por pagina (max 100)"
// @Success      200 {object} map[string]interface{}
// @Router       /v1/caja/historial [get]
func (h *CajaHandler) Historial(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	cierres, total, err := h.svc.Historial(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudo obtener el historial"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cierres": cierres,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
