package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func firmarToken(t *testing.T, secret, rol string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id_cliente":   int64(42),
		"email":        "maria@example.com",
		"tipo_cliente": "Natural",
		"rol":          rol,
		"exp":          exp.Unix(),
		"iat":          time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := r.Group("/", JWTAuth(testSecret))
	auth.GET("/perfil", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"id_cliente": claims.IDCliente, "rol": claims.Rol})
	})
	auth.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_TokenValido(t *testing.T) {
	r := setupRouter()
	token := firmarToken(t, testSecret, RolCliente, time.Now().Add(time.Hour))

	w := doRequest(r, "/perfil", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id_cliente":42`)
}

func TestJWTAuth_SinHeader(t *testing.T) {
	r := setupRouter()

	w := doRequest(r, "/perfil", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_EsquemaIncorrecto(t *testing.T) {
	r := setupRouter()
	token := firmarToken(t, testSecret, RolCliente, time.Now().Add(time.Hour))

	w := doRequest(r, "/perfil", "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_FirmaInvalida(t *testing.T) {
	r := setupRouter()
	token := firmarToken(t, "otro-secreto", RolCliente, time.Now().Add(time.Hour))

	w := doRequest(r, "/perfil", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_TokenExpirado(t *testing.T) {
	r := setupRouter()
	token := firmarToken(t, testSecret, RolCliente, time.Now().Add(-time.Minute))

	w := doRequest(r, "/perfil", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_RechazaCliente(t *testing.T) {
	r := setupRouter()
	token := firmarToken(t, testSecret, RolCliente, time.Now().Add(time.Hour))

	w := doRequest(r, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_PermiteAdmin(t *testing.T) {
	r := setupRouter()
	token := firmarToken(t, testSecret, RolAdmin, time.Now().Add(time.Hour))

	w := doRequest(r, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
