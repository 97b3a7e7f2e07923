package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/apierror"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReporteHandler struct {
	svc service.ReporteService
}

func NewReporteHandler(svc service.ReporteService) *ReporteHandler {
	return &ReporteHandler{svc: svc}
}

// rangoFechas reads desde/hasta query params, defaulting to the current day.
func rangoFechas(c *gin.Context) (string, string, bool) {
	hoy := time.Now().Format("2006-01-02")
	desde := c.DefaultQuery("desde", hoy)
	hasta := c.DefaultQuery("hasta", hoy)
	for _, f := range []string{desde, hasta} {
		if _, err := time.Parse("2006-01-02", f); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("las fechas deben tener formato YYYY-MM-DD"))
			return "", "", false
		}
	}
	return desde, hasta, true
}

// IngresosPorConvenio godoc
// @Summary      Ingresos por convenio
// @Description  Ventas, personas y total recaudado por convenio en el rango de fechas.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha inicial YYYY-MM-DD (default hoy)"
// @Param        hasta query string false "Fecha final YYYY-MM-DD (default hoy)"
// @Success      200 {object} dto.ReporteIngresosResponse
// @Router       /v1/reportes/ingresos-por-convenio [get]
func (h *ReporteHandler) IngresosPorConvenio(c *gin.Context) {
	desde, hasta, ok := rangoFechas(c)
	if !ok {
		return
	}
	resp, err := h.svc.IngresosPorConvenio(c.Request.Context(), desde, hasta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudo generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarIngresos godoc
// @Summary      Exportar ingresos por convenio a Excel
// @Tags         reportes
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        desde query string false "Fecha inicial YYYY-MM-DD (default hoy)"
// @Param        hasta query string false "Fecha final YYYY-MM-DD (default hoy)"
// @Success      200 {file} binary
// @Router       /v1/reportes/ingresos-por-convenio/xlsx [get]
func (h *ReporteHandler) ExportarIngresos(c *gin.Context) {
	desde, hasta, ok := rangoFechas(c)
	if !ok {
		return
	}
	buf, err := h.svc.ExportarIngresosXLSX(c.Request.Context(), desde, hasta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("no se pudo exportar el reporte"))
		return
	}
	filename := fmt.Sprintf("ingresos_%s_%s.xlsx", desde, hasta)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
