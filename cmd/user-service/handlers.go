package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/cafe-altura/internal/httpx"
	"github.com/MikeMC777/cafe-altura/internal/user"
)

func newRouter(svc *user.Service, m *httpx.Metrics) *gin.Engine {
	r := httpx.NewRouter(m)
	g := r.Group("/api/usuarios")
	g.POST("/registro", registerHandler(svc))
	g.POST("/login", loginHandler(svc))
	return r
}

// registerHandler godoc
// @Summary Registra un cliente
// @Tags    usuarios
// @Accept  json
// @Produce json
// @Param   body body     user.RegisterRequest true "datos de registro"
// @Success 201  {object} map[string]string
// @Failure 400  {object} product.HTTPError
// @Router  /api/usuarios/registro [post]
func registerHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		if _, err := svc.Register(c.Request.Context(), req); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "user registered"})
	}
}

// loginHandler godoc
// @Summary Inicia sesión y devuelve un token
// @Tags    usuarios
// @Accept  json
// @Produce json
// @Param   body body     user.LoginRequest true "credenciales"
// @Success 200  {object} user.LoginResponse
// @Failure 400  {object} product.HTTPError
// @Router  /api/usuarios/login [post]
func loginHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		res, err := svc.Login(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
