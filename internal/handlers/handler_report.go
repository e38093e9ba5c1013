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

// ReportHandler serves reconstructed ledger reports.
type ReportHandler struct {
	reportService portssvc.LabourReportSvcFacade
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs portssvc.LabourReportSvcFacade) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// RegisterReportRoutes sets up the report route.
func RegisterReportRoutes(rg *gin.RouterGroup, rs portssvc.LabourReportSvcFacade) {
	h := NewReportHandler(rs)
	rg.GET("/labour/report", h.GetReport)
}

// GetReport godoc
// @Summary Get labour reports
// @Description Reconstructs per-labourer ledger windows. Without settlementId the report is live: the current unsettled period at the current wage. With settlementId it replays that settlement's frozen window at the snapshotted wage.
// @Tags labour
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param labourerId query string false "Restrict to one labourer"
// @Param settlementId query string false "Replay this settlement's frozen window"
// @Success 200 {array} dto.LabourReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	var params dto.ReportParams

	if s := c.Query("from"); s != "" {
		day, err := domain.ParseCalendarDay(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		params.From = &day
	}
	if s := c.Query("to"); s != "" {
		day, err := domain.ParseCalendarDay(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		params.To = &day
	}
	if params.From != nil && params.To != nil && params.From.After(*params.To) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must not be after to"})
		return
	}
	if s := c.Query("labourerId"); s != "" {
		params.LabourerID = &s
	}
	if s := c.Query("settlementId"); s != "" {
		params.SettlementID = &s
	}

	reports, err := h.reportService.GetReport(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Labourer or settlement not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to build report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	responses := make([]dto.LabourReportResponse, len(reports))
	for i := range reports {
		responses[i] = dto.ToLabourReportResponse(&reports[i])
	}
	c.JSON(http.StatusOK, responses)
}
