package metricsController

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controller struct{}

func New() *Controller {
	return &Controller{}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
