package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/cafe-altura/internal/apperr"
	"github.com/MikeMC777/cafe-altura/internal/httpx"
	prod "github.com/MikeMC777/cafe-altura/internal/product"
)

func newRouter(repo prod.Repository, m *httpx.Metrics) *gin.Engine {
	r := httpx.NewRouter(m)
	r.GET("/api/granos", listProductsHandler(repo))
	r.GET("/api/granos/:id", getProductHandler(repo))
	return r
}

// listProductsHandler godoc
// @Summary Lista el catálogo completo
// @Tags    granos
// @Produce json
// @Success 200 {array} product.Product
// @Router  /api/granos [get]
func listProductsHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			httpx.Fail(c, apperr.Wrap(err, "list products"))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// getProductHandler godoc
// @Summary Obtiene un grano
// @Tags    granos
// @Produce json
// @Param   id  path     string true "product id"
// @Success 200 {object} product.Product
// @Failure 404 {object} product.HTTPError
// @Router  /api/granos/{id} [get]
func getProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, prod.ErrNotFound) {
			httpx.Fail(c, apperr.NotFoundf("product not found"))
			return
		}
		if err != nil {
			httpx.Fail(c, apperr.Wrap(err, "get product"))
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
