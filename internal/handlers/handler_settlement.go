package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
	"github.com/shopkhata/shopkhata-backend/internal/middleware"
)

// SettlementHandler handles settlement creation, history and statement export.
type SettlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(ss portssvc.SettlementSvcFacade) *SettlementHandler {
	return &SettlementHandler{settlementService: ss}
}

// RegisterSettlementRoutes sets up the settlement routes under /labour/:labourerID.
func RegisterSettlementRoutes(rg *gin.RouterGroup, ss portssvc.SettlementSvcFacade) {
	h := NewSettlementHandler(ss)

	labour := rg.Group("/labour/:labourerID")
	{
		labour.POST("/settle", h.CreateSettlement)
		labour.GET("/settlements", h.ListSettlements)
		labour.GET("/settlements/:settlementID/statement", h.DownloadStatement)
	}
}

// CreateSettlement godoc
// @Summary Settle a labourer's period
// @Description Closes all entries up to the cut-off date into an immutable snapshot. The cut-off must be after the labourer's latest settlement.
// @Tags settlements
// @Accept json
// @Produce json
// @Param labourerID path string true "Labourer ID"
// @Param settlement body dto.CreateSettlementRequest true "Settlement"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Cut-off not after latest settlement"
// @Failure 422 {object} ErrorResponse "Nothing to settle"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/{labourerID}/settle [post]
func (h *SettlementHandler) CreateSettlement(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	snap, err := h.settlementService.CreateSettlement(c.Request.Context(), userID, c.Param("labourerID"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Labourer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrPreconditionFailed):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to create settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create settlement"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToSettlementResponse(snap))
}

// ListSettlements godoc
// @Summary List a labourer's settlements
// @Description Returns the labourer's settlement history, newest first.
// @Tags settlements
// @Produce json
// @Param labourerID path string true "Labourer ID"
// @Success 200 {array} dto.SettlementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/{labourerID}/settlements [get]
func (h *SettlementHandler) ListSettlements(c *gin.Context) {
	snaps, err := h.settlementService.ListSettlements(c.Request.Context(), c.Param("labourerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Labourer not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list settlements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list settlements"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponses(snaps))
}

// DownloadStatement godoc
// @Summary Download a settlement statement
// @Description Renders the settlement's frozen window as a PDF or XLSX document.
// @Tags settlements
// @Produce application/pdf
// @Param labourerID path string true "Labourer ID"
// @Param settlementID path string true "Settlement ID"
// @Param format query string false "pdf or xlsx" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /labour/{labourerID}/settlements/{settlementID}/statement [get]
func (h *SettlementHandler) DownloadStatement(c *gin.Context) {
	format := c.DefaultQuery("format", portssvc.StatementFormatPDF)
	settlementID := c.Param("settlementID")

	data, contentType, err := h.settlementService.BuildStatement(c.Request.Context(), c.Param("labourerID"), settlementID, format)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Settlement not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to build statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build statement"})
		}
		return
	}

	filename := fmt.Sprintf("settlement-%s.%s", settlementID, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
