package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/model"
	"github.com/medpoint/reception/internal/service"
)

// DoctorController административные операции над справочником врачей
type DoctorController struct {
	doctorService *service.DoctorService
	logger        *zap.Logger
}

func NewDoctorController(doctorService *service.DoctorService, logger *zap.Logger) *DoctorController {
	return &DoctorController{
		doctorService: doctorService,
		logger:        logger,
	}
}

func (c *DoctorController) RegisterRoutes(router *gin.Engine) {
	doctors := router.Group("/doctors")
	{
		doctors.POST("", c.createDoctor)
		doctors.GET("", c.listDoctors)
		doctors.DELETE("/:id", c.deleteDoctor)
	}
}

type createDoctorRequest struct {
	Name       string `json:"name" binding:"required"`
	Surname    string `json:"surname" binding:"required"`
	Patronymic string `json:"patronymic"`
}

func (c *DoctorController) createDoctor(ctx *gin.Context) {
	var req createDoctorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	doctor, err := c.doctorService.CreateDoctor(
		ctx.Request.Context(), req.Name, req.Surname, req.Patronymic)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	ctx.JSON(http.StatusCreated, doctor)
}

func (c *DoctorController) listDoctors(ctx *gin.Context) {
	doctors, err := c.doctorService.ListDoctors(ctx.Request.Context())
	if err != nil {
		c.logger.Error("Failed to list doctors", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "error": "internal server error"})
		return
	}

	if doctors == nil {
		doctors = []*model.Doctor{}
	}

	ctx.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (c *DoctorController) deleteDoctor(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "invalid doctor id")
		return
	}

	err = c.doctorService.DeleteDoctor(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrDoctorNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "error": err.Error()})
			return
		}
		c.logger.Error("Failed to delete doctor", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "error": "internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
