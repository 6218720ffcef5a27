package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP API. allowedOrigins feeds the CORS policy.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, PredictionModelHeader},
	}))

	api := r.Group("/api")
	api.GET("/news", h.GetNews)
	api.POST("/predict", h.PostPredict)
	api.GET("/stocks/gainers", h.GetTopGainers)
	api.GET("/stocks/losers", h.GetTopLosers)
	api.GET("/stocks/:symbol/history", h.GetHistory)

	r.GET("/health", h.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
