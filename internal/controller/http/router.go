package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/service"
)

// NewRouter собирает HTTP-маршрутизатор сервиса записи
func NewRouter(
	receptionService *service.ReceptionService,
	doctorService *service.DoctorService,
	env string,
	logger *zap.Logger,
) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	NewReceptionController(receptionService, logger).RegisterRoutes(router)
	NewDoctorController(doctorService, logger).RegisterRoutes(router)

	return router
}
