package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/model"
	"github.com/medpoint/reception/internal/service"
)

type ReceptionController struct {
	receptionService *service.ReceptionService
	logger           *zap.Logger
}

func NewReceptionController(receptionService *service.ReceptionService, logger *zap.Logger) *ReceptionController {
	return &ReceptionController{
		receptionService: receptionService,
		logger:           logger,
	}
}

func (c *ReceptionController) RegisterRoutes(router *gin.Engine) {
	router.GET("/reception/get-free-time-choices", c.freeTimeChoices)
	router.POST("/reception/new", c.createReception)
}

type createReceptionRequest struct {
	DoctorID    int64  `json:"doctor_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        *int   `json:"time" binding:"required"`
	PatientName string `json:"patient_name" binding:"required"`
}

type createReceptionResponse struct {
	ID          int64  `json:"id"`
	DoctorID    int64  `json:"doctor_id"`
	Date        string `json:"date"`
	Time        int    `json:"time"`
	VerboseTime string `json:"verbose_time"`
	PatientName string `json:"patient_name"`
}

type freeTimeResponse struct {
	FreeTime []model.TimeSlot `json:"free_time"`
}

// freeTimeChoices отдаёт свободное время приёма врача на дату
func (c *ReceptionController) freeTimeChoices(ctx *gin.Context) {
	doctorID, err := strconv.ParseInt(ctx.Query("doctor_id"), 10, 64)
	if err != nil {
		badRequest(ctx, "invalid doctor_id")
		return
	}

	date, err := time.Parse(model.DateLayout, ctx.Query("date"))
	if err != nil {
		badRequest(ctx, "invalid date, expected DD.MM.YYYY")
		return
	}

	freeSlots, err := c.receptionService.FreeSlots(ctx.Request.Context(), doctorID, date)
	if err != nil {
		c.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, freeTimeResponse{FreeTime: freeSlots})
}

// createReception создаёт карточку записи на приём
func (c *ReceptionController) createReception(ctx *gin.Context) {
	var req createReceptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		badRequest(ctx, "invalid date, expected DD.MM.YYYY")
		return
	}

	reception, err := c.receptionService.CreateReception(
		ctx.Request.Context(), req.DoctorID, date, *req.Time, req.PatientName)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, createReceptionResponse{
		ID:          reception.ID,
		DoctorID:    reception.DoctorID,
		Date:        reception.DateString(),
		Time:        reception.TimeSlot,
		VerboseTime: reception.VerboseTime(),
		PatientName: reception.PatientName,
	})
}

// writeError транслирует ошибку валидации в HTTP-ответ
func (c *ReceptionController) writeError(ctx *gin.Context, err error) {
	var dayOff *model.DayOffError
	var pastDate *model.PastDateError

	switch {
	case errors.As(err, &dayOff):
		ctx.JSON(http.StatusBadRequest, gin.H{"kind": "day_off", "error": dayOff.Error()})
	case errors.As(err, &pastDate):
		ctx.JSON(http.StatusBadRequest, gin.H{"kind": "past_date", "error": pastDate.Error()})
	case errors.Is(err, model.ErrUnknownSlot):
		ctx.JSON(http.StatusBadRequest, gin.H{"kind": "unknown_slot", "error": err.Error()})
	case errors.Is(err, model.ErrReceptionExists):
		ctx.JSON(http.StatusConflict, gin.H{"kind": "already_booked", "error": err.Error()})
	case errors.Is(err, model.ErrDoctorNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "error": err.Error()})
	case errors.Is(err, model.ErrEmptyPatient):
		badRequest(ctx, err.Error())
	default:
		c.internalError(ctx, err)
	}
}

func (c *ReceptionController) internalError(ctx *gin.Context, err error) {
	c.logger.Error("Request failed",
		zap.Error(err),
		zap.String("request_id", ctx.GetString("request_id")),
	)
	ctx.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "error": "internal server error"})
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"kind": "bad_request", "error": message})
}
