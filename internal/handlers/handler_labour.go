package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
	"github.com/shopkhata/shopkhata-backend/internal/middleware"
)

// LabourHandler handles labourer profiles and the daily entry surface.
type LabourHandler struct {
	labourerService portssvc.LabourerSvcFacade
	dailyService    portssvc.DailyLedgerSvcFacade
}

// NewLabourHandler creates a new LabourHandler.
func NewLabourHandler(ls portssvc.LabourerSvcFacade, ds portssvc.DailyLedgerSvcFacade) *LabourHandler {
	return &LabourHandler{labourerService: ls, dailyService: ds}
}

// RegisterLabourRoutes sets up the labourer CRUD and daily view routes.
func RegisterLabourRoutes(rg *gin.RouterGroup, ls portssvc.LabourerSvcFacade, ds portssvc.DailyLedgerSvcFacade) {
	h := NewLabourHandler(ls, ds)

	labour := rg.Group("/labour")
	{
		labour.POST("", h.CreateLabourer)
		labour.GET("", h.ListLabourers)
		labour.GET("/daily", h.GetDailyView)
		labour.POST("/daily", h.UpdateDailyView)
		labour.GET("/:labourerID", h.GetLabourer)
		labour.PUT("/:labourerID", h.UpdateLabourer)
		labour.DELETE("/:labourerID", h.DeleteLabourer)
	}
}

// CreateLabourer godoc
// @Summary Create a labourer
// @Description Adds a labourer profile with a default daily wage.
// @Tags labour
// @Accept json
// @Produce json
// @Param labourer body dto.CreateLabourerRequest true "Labourer"
// @Success 201 {object} dto.LabourerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour [post]
func (h *LabourHandler) CreateLabourer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	var req dto.CreateLabourerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	labourer, err := h.labourerService.CreateLabourer(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to create labourer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create labourer"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToLabourerResponse(labourer))
}

// ListLabourers godoc
// @Summary List labourers
// @Description Returns all non-deleted labourers ordered by name.
// @Tags labour
// @Produce json
// @Success 200 {array} dto.LabourerResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour [get]
func (h *LabourHandler) ListLabourers(c *gin.Context) {
	labourers, err := h.labourerService.ListLabourers(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list labourers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list labourers"})
		return
	}
	responses := make([]dto.LabourerResponse, len(labourers))
	for i := range labourers {
		responses[i] = dto.ToLabourerResponse(&labourers[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetLabourer godoc
// @Summary Get a labourer
// @Tags labour
// @Produce json
// @Param labourerID path string true "Labourer ID"
// @Success 200 {object} dto.LabourerResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/{labourerID} [get]
func (h *LabourHandler) GetLabourer(c *gin.Context) {
	labourer, err := h.labourerService.GetLabourerByID(c.Request.Context(), c.Param("labourerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Labourer not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get labourer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get labourer"})
		return
	}
	c.JSON(http.StatusOK, dto.ToLabourerResponse(labourer))
}

// UpdateLabourer godoc
// @Summary Update a labourer
// @Description Updates the name and/or default daily wage. Wage changes only affect unsettled days.
// @Tags labour
// @Accept json
// @Produce json
// @Param labourerID path string true "Labourer ID"
// @Param labourer body dto.UpdateLabourerRequest true "Fields to update"
// @Success 200 {object} dto.LabourerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/{labourerID} [put]
func (h *LabourHandler) UpdateLabourer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	var req dto.UpdateLabourerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	labourer, err := h.labourerService.UpdateLabourer(c.Request.Context(), userID, c.Param("labourerID"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Labourer not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to update labourer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update labourer"})
		return
	}
	c.JSON(http.StatusOK, dto.ToLabourerResponse(labourer))
}

// DeleteLabourer godoc
// @Summary Delete a labourer
// @Description Soft-deletes the labourer; ledger history stays attributable.
// @Tags labour
// @Produce json
// @Param labourerID path string true "Labourer ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/{labourerID} [delete]
func (h *LabourHandler) DeleteLabourer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	err := h.labourerService.DeleteLabourer(c.Request.Context(), userID, c.Param("labourerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Labourer not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to delete labourer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete labourer"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDailyView godoc
// @Summary Get the daily labour view
// @Description Returns one merged row per labourer for the given date.
// @Tags labour
// @Produce json
// @Param date query string true "Calendar day (YYYY-MM-DD)"
// @Success 200 {array} dto.DailyViewRow
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/daily [get]
func (h *LabourHandler) GetDailyView(c *gin.Context) {
	day, err := domain.ParseCalendarDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or missing date parameter, expected YYYY-MM-DD"})
		return
	}
	rows, err := h.dailyService.GetDailyView(c.Request.Context(), day)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get daily view", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get daily view"})
		return
	}
	responses := make([]dto.DailyViewRow, len(rows))
	for i := range rows {
		responses[i] = dto.ToDailyViewRow(&rows[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateDailyView godoc
// @Summary Apply a daily batch
// @Description Applies attendance and payment rows for one day atomically and reports per-row outcomes. Rows inside a settled period are skipped or rejected depending on server policy.
// @Tags labour
// @Accept json
// @Produce json
// @Param batch body dto.UpdateDailyRequest true "Daily batch"
// @Success 200 {object} dto.UpdateDailyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A row targets a settled period and policy is reject"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/daily [post]
func (h *LabourHandler) UpdateDailyView(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	var req dto.UpdateDailyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	day, err := domain.ParseCalendarDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}
	results, err := h.dailyService.UpdateDailyView(c.Request.Context(), userID, day, req.Updates)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrImmutablePeriod) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to apply daily batch", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply daily batch"})
		return
	}
	c.JSON(http.StatusOK, dto.UpdateDailyResponse{Success: true, Results: results})
}
