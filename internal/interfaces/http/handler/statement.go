package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	financeapp "github.com/strivehq/backend/internal/application/finance"
	"github.com/strivehq/backend/internal/infrastructure/config"
	"github.com/strivehq/backend/internal/infrastructure/spreadsheet"
	"github.com/strivehq/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// periodDateLayout is the expected format for period form fields
const periodDateLayout = "2006-01-02"

// StatementHandler handles financial statement uploads and derived data
type StatementHandler struct {
	BaseHandler
	statementService *financeapp.StatementService
	ingestionService *financeapp.IngestionService
	syncService      *financeapp.KPISyncService
	uploadCfg        config.UploadConfig
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(
	statementService *financeapp.StatementService,
	ingestionService *financeapp.IngestionService,
	syncService *financeapp.KPISyncService,
	uploadCfg config.UploadConfig,
) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
		ingestionService: ingestionService,
		syncService:      syncService,
		uploadCfg:        uploadCfg,
	}
}

// RegisterRoutes registers statement routes on the given group
func (h *StatementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	statements := rg.Group("/statements")
	{
		statements.POST("/upload", h.Upload)
		statements.GET("/metrics", h.ListMetrics)
		statements.POST("/sync-kpis", h.SyncKPIs)
	}
}

// Upload accepts a trial balance file plus its reporting period, ingests it,
// and returns the computed metrics.
func (h *StatementHandler) Upload(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file in form data")
		return
	}

	if h.uploadCfg.MaxFileSize > 0 && fileHeader.Size > h.uploadCfg.MaxFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBadRequest, "File exceeds maximum allowed size")
		return
	}
	if !h.extensionAllowed(fileHeader.Filename) {
		h.Error(c, http.StatusUnsupportedMediaType, dto.ErrCodeUnsupportedFormat, "Unsupported file type")
		return
	}

	periodStart, err := time.Parse(periodDateLayout, c.PostForm("period_start"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing period_start, expected YYYY-MM-DD")
		return
	}
	periodEnd, err := time.Parse(periodDateLayout, c.PostForm("period_end"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing period_end, expected YYYY-MM-DD")
		return
	}
	if periodEnd.Before(periodStart) {
		h.BadRequest(c, "period_end must not be before period_start")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	result, err := h.statementService.Upload(c.Request.Context(), ownerID, financeapp.UploadStatementRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	if err != nil {
		h.handleStatementError(c, err)
		return
	}
	h.Created(c, result)
}

// ListMetrics returns the metrics of the owner's latest financial record
func (h *StatementHandler) ListMetrics(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.ingestionService.ListMetrics(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncKPIs binds the owner's financial KPIs to the latest ingested metrics
func (h *StatementHandler) SyncKPIs(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.syncService.Sync(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *StatementHandler) extensionAllowed(fileName string) bool {
	if len(h.uploadCfg.AllowedExtensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range h.uploadCfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// handleStatementError maps spreadsheet reader errors before falling back to
// the generic domain error handling.
func (h *StatementHandler) handleStatementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		h.Error(c, http.StatusUnsupportedMediaType, dto.ErrCodeUnsupportedFormat, "Unsupported file type")
	case errors.Is(err, spreadsheet.ErrEmptyFile), errors.Is(err, spreadsheet.ErrNoSheets):
		h.UnprocessableEntity(c, dto.ErrCodeEmptyData, "Uploaded file contains no data")
	case errors.Is(err, spreadsheet.ErrInvalidEncoding):
		h.UnprocessableEntity(c, dto.ErrCodeInvalidInput, "File is not valid UTF-8")
	default:
		h.HandleError(c, err)
	}
}
