package tests

import (
	"context"
	"testing"

	"github.com/MateoRicci/gestion-cec-sub000/internal/config"
	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (service.AuthService, *memUsuarioRepo) {
	repo := newMemUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func crearCajero(t *testing.T, svc service.AuthService) *dto.UsuarioResponse {
	t.Helper()
	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "mgomez",
		Password: "clave-segura",
		Nombre:   "Marta",
		Apellido: "Gomez",
		Rol:      "cajero",
	})
	require.NoError(t, err)
	return resp
}

func TestLoginOK(t *testing.T) {
	svc, _ := newAuthFixture()
	crearCajero(t, svc)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "clave-segura"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "cajero", resp.User.Rol)
}

func TestLoginClaveIncorrecta(t *testing.T) {
	svc, _ := newAuthFixture()
	crearCajero(t, svc)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "otra"})
	require.Error(t, err)
	assert.Equal(t, "credenciales invalidas", err.Error())
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "credenciales invalidas", err.Error())
}

func TestLoginUsuarioDesactivado(t *testing.T) {
	svc, _ := newAuthFixture()
	usuario := crearCajero(t, svc)
	require.NoError(t, svc.DesactivarUsuario(context.Background(), uuid.MustParse(usuario.ID)))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "clave-segura"})
	require.Error(t, err)
}

func TestRefreshDevuelveTokensNuevos(t *testing.T) {
	svc, _ := newAuthFixture()
	crearCajero(t, svc)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "clave-segura"})
	require.NoError(t, err)

	refrescado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refrescado.AccessToken)
	assert.Equal(t, login.User.ID, refrescado.User.ID)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}

func TestActualizarUsuarioCambiaRolYClave(t *testing.T) {
	svc, _ := newAuthFixture()
	usuario := crearCajero(t, svc)

	rol := "supervisor"
	clave := "clave-nueva"
	resp, err := svc.ActualizarUsuario(context.Background(), uuid.MustParse(usuario.ID), dto.ActualizarUsuarioRequest{
		Rol:      &rol,
		Password: &clave,
	})
	require.NoError(t, err)
	assert.Equal(t, "supervisor", resp.Rol)

	// Old password stops working, new one logs in.
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "clave-segura"})
	require.Error(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "mgomez", Password: "clave-nueva"})
	require.NoError(t, err)
}

func TestListarUsuariosExcluyeInactivosPorDefecto(t *testing.T) {
	svc, _ := newAuthFixture()
	usuario := crearCajero(t, svc)
	require.NoError(t, svc.DesactivarUsuario(context.Background(), uuid.MustParse(usuario.ID)))

	activos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}
