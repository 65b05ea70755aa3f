package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/cafe-altura/internal/auth"
	"github.com/MikeMC777/cafe-altura/internal/httpx"
	"github.com/MikeMC777/cafe-altura/internal/order"
)

type routerOpts struct {
	metrics     *httpx.Metrics
	jwtSecret   string
	requireAuth bool
	swagger     bool
}

func newRouter(svc *order.Service, opts routerOpts) *gin.Engine {
	r := httpx.NewRouter(opts.metrics)
	if opts.swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	g := r.Group("/api/pedidos")
	if opts.requireAuth {
		g.Use(auth.Middleware(opts.jwtSecret), auth.RequireRole(auth.RoleAdmin))
	}
	g.GET("", listOrdersHandler(svc))
	g.POST("", createOrderHandler(svc))
	g.GET("/:id", getOrderHandler(svc))
	g.PUT("/:id/estado", updateOrderStatusHandler(svc))
	return r
}

// listOrdersHandler godoc
// @Summary  Lista pedidos, más recientes primero
// @Tags     pedidos
// @Produce  json
// @Security BearerAuth
// @Success  200 {array}  order.Order
// @Failure  401 {object} product.HTTPError
// @Router   /api/pedidos [get]
func listOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.List(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// createOrderHandler godoc
// @Summary  Crea un pedido en estado Pending
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body     order.CreateOrderRequest true "pedido"
// @Success  201  {object} order.Order
// @Failure  400  {object} product.HTTPError
// @Router   /api/pedidos [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		o, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// getOrderHandler godoc
// @Summary  Obtiene un pedido
// @Tags     pedidos
// @Produce  json
// @Security BearerAuth
// @Param    id  path     string true "order id"
// @Success  200 {object} order.Order
// @Failure  404 {object} product.HTTPError
// @Router   /api/pedidos/{id} [get]
func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// updateOrderStatusHandler godoc
// @Summary  Cambia el estado de un pedido
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path     string                    true "order id"
// @Param    body body     order.UpdateStatusRequest true "nuevo estado"
// @Success  200  {object} order.Order
// @Failure  400  {object} product.HTTPError
// @Failure  404  {object} product.HTTPError
// @Router   /api/pedidos/{id}/estado [put]
func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		o, err := svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
