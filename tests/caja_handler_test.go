package tests

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/handler"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// cajaServiceStub overrides only Cerrar; the embedded interface panics on
// anything else, which is what we want in these tests.
type cajaServiceStub struct {
	service.CajaService
	cerrarErr error
}

func (s *cajaServiceStub) Cerrar(context.Context, uuid.UUID, dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error) {
	if s.cerrarErr != nil {
		return nil, s.cerrarErr
	}
	return &dto.CierreCajaResponse{}, nil
}

func TestCerrarCajaHandlerMapeaErrores(t *testing.T) {
	gin.SetMode(gin.TestMode)

	casos := []struct {
		nombre string
		err    error
		status int
	}{
		{"cierre ok", nil, http.StatusOK},
		{"sesion inexistente", service.ErrSesionNoEncontrada, http.StatusNotFound},
		{"ya cerrada", service.ErrSesionCerrada, http.StatusConflict},
		{"cierre en curso", service.ErrCierreEnCurso, http.StatusConflict},
		// Repository/infra failures are not the caller's fault.
		{"falla de base", errors.New("conexion perdida"), http.StatusInternalServerError},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			h := handler.NewCajaHandler(&cajaServiceStub{cerrarErr: c.err}, nil)
			r := gin.New()
			r.POST("/caja/:id/cerrar", h.Cerrar)

			req := httptest.NewRequest(http.MethodPost, "/caja/"+uuid.NewString()+"/cerrar", bytes.NewBufferString(`{}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, c.status, w.Code)
		})
	}
}
