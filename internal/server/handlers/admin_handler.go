package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/domain/models"
	"github.com/visijn/haccp/internal/service/backup"
	"github.com/visijn/haccp/internal/service/records"
	"github.com/visijn/haccp/internal/service/report"
	"github.com/visijn/haccp/pkg/clients/anthropic"
)

const maxImportBytes = 32 << 20

// AdminHandler serves reports, backups, settings and the assistant relay.
type AdminHandler struct {
	recordsSvc *records.Service
	backupSvc  *backup.Service
	reports    *report.Generator
	assistant  anthropic.Client
	loc        *time.Location
	logger     *zap.Logger
}

// NewAdminHandler constructs the administrative HTTP handler. assistant may
// be nil when no API key is configured.
func NewAdminHandler(recordsSvc *records.Service, backupSvc *backup.Service, reports *report.Generator, assistant anthropic.Client, loc *time.Location, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AdminHandler{
		recordsSvc: recordsSvc,
		backupSvc:  backupSvc,
		reports:    reports,
		assistant:  assistant,
		loc:        loc,
		logger:     logger,
	}
}

// DailyReport renders and streams the compliance report for the requested
// day, defaulting to today.
func (h *AdminHandler) DailyReport(c *gin.Context) {
	day := time.Now().In(h.loc)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, raw, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	pdf, err := h.reports.Daily(h.recordsSvc.Snapshot(), day)
	if err != nil {
		h.logger.Error("report generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to generate report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.reports.Filename(day)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportBackup streams the full state package as a JSON download.
func (h *AdminHandler) ExportBackup(c *gin.Context) {
	blob, filename, err := h.backupSvc.Export()
	if err != nil {
		h.logger.Error("backup export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to export backup"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", blob)
}

// ImportBackup restores the full state from an uploaded package.
func (h *AdminHandler) ImportBackup(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read upload"})
		return
	}

	if err := h.backupSvc.Import(c.Request.Context(), data); err != nil {
		if errors.Is(err, models.ErrInvalidImport) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is not a valid backup package"})
			return
		}
		h.logger.Error("backup import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to import backup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"storage_full": h.recordsSvc.StorageFull()})
}

// ResetState wipes the application back to first-run defaults. Destructive
// and irreversible, so the caller must confirm explicitly.
func (h *AdminHandler) ResetState(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset requires confirm=true"})
		return
	}
	h.recordsSvc.Reset(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"state": h.recordsSvc.Snapshot()})
}

// Settings returns the current configuration.
func (h *AdminHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.recordsSvc.Snapshot().Settings)
}

// UpdateSettings overwrites the configuration wholesale.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	h.recordsSvc.UpdateSettings(c.Request.Context(), settings)
	c.JSON(http.StatusOK, gin.H{"storage_full": h.recordsSvc.StorageFull()})
}

// ImportEquipment reads a bulk equipment list (one name per line) and merges
// it into the settings.
func (h *AdminHandler) ImportEquipment(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read upload"})
		return
	}

	names := backup.ParseEquipmentList(string(data))
	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no equipment names found"})
		return
	}

	settings := h.recordsSvc.Snapshot().Settings
	settings.EquipmentList = append(settings.EquipmentList, names...)
	h.recordsSvc.UpdateSettings(c.Request.Context(), settings)
	c.JSON(http.StatusOK, gin.H{"imported": len(names)})
}

// ImportCleaningPlan reads a bulk cleaning plan (`area, task, frequency` per
// line) and appends the templates to the schedule.
func (h *AdminHandler) ImportCleaningPlan(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read upload"})
		return
	}

	templates := h.backupSvc.ParseCleaningTemplates(string(data))
	if len(templates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no cleaning tasks found"})
		return
	}

	settings := h.recordsSvc.Snapshot().Settings
	settings.CleaningSchedule = append(settings.CleaningSchedule, templates...)
	h.recordsSvc.UpdateSettings(c.Request.Context(), settings)
	c.JSON(http.StatusOK, gin.H{"imported": len(templates)})
}

// Chat relays a conversation turn to the assistant.
func (h *AdminHandler) Chat(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var req struct {
		History []anthropic.Message `json:"history"`
		Message string              `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	reply, err := h.assistant.SendMessage(c.Request.Context(), req.History, req.Message)
	if err != nil {
		h.logger.Error("assistant request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
