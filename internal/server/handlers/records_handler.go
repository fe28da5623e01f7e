package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/domain/models"
	"github.com/visijn/haccp/internal/service/records"
	"github.com/visijn/haccp/pkg/media"
)

// RecordsHandler exposes the mutation API over HTTP.
type RecordsHandler struct {
	svc    *records.Service
	logger *zap.Logger
}

// NewRecordsHandler constructs the HTTP handler adapter for record mutations.
func NewRecordsHandler(svc *records.Service, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{svc: svc, logger: logger}
}

// State returns the full application state for UI hydration.
func (h *RecordsHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":        h.svc.Snapshot(),
		"storage_full": h.svc.StorageFull(),
	})
}

// AddTemperature records a storage temperature reading.
func (h *RecordsHandler) AddTemperature(c *gin.Context) {
	var in records.TemperatureInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid temperature payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec := h.svc.AddTemperature(c.Request.Context(), in)
	h.created(c, rec)
}

// EditTemperature replaces a same-day temperature reading.
func (h *RecordsHandler) EditTemperature(c *gin.Context) {
	var in records.TemperatureInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.EditTemperature(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	h.updated(c, rec)
}

// AddDelivery records an incoming goods inspection.
func (h *RecordsHandler) AddDelivery(c *gin.Context) {
	var in records.DeliveryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid delivery payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec := h.svc.AddDelivery(c.Request.Context(), in)
	h.created(c, rec)
}

// EditDelivery replaces a same-day delivery record.
func (h *RecordsHandler) EditDelivery(c *gin.Context) {
	var in records.DeliveryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.EditDelivery(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	h.updated(c, rec)
}

// AddCooling records a rapid-cooling cycle.
func (h *RecordsHandler) AddCooling(c *gin.Context) {
	var in records.CoolingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid cooling payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.AddCooling(c.Request.Context(), in)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	h.created(c, rec)
}

// EditCooling replaces a same-day cooling cycle.
func (h *RecordsHandler) EditCooling(c *gin.Context) {
	var in records.CoolingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.EditCooling(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	h.updated(c, rec)
}

// AddOil records a frying oil check.
func (h *RecordsHandler) AddOil(c *gin.Context) {
	var in records.OilInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid oil payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec := h.svc.AddOil(c.Request.Context(), in)
	h.created(c, rec)
}

// EditOil replaces a same-day oil check.
func (h *RecordsHandler) EditOil(c *gin.Context) {
	var in records.OilInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.EditOil(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	h.updated(c, rec)
}

// DeleteOil removes an oil check.
func (h *RecordsHandler) DeleteOil(c *gin.Context) {
	if err := h.svc.DeleteOil(c.Request.Context(), c.Param("id")); err != nil {
		h.mutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"storage_full": h.svc.StorageFull()})
}

// AddLabel records a printed label.
func (h *RecordsHandler) AddLabel(c *gin.Context) {
	var in records.LabelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid label payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec := h.svc.AddLabel(c.Request.Context(), in)
	h.created(c, rec)
}

// EditLabel replaces a same-day label record.
func (h *RecordsHandler) EditLabel(c *gin.Context) {
	var in records.LabelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	rec, err := h.svc.EditLabel(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	h.updated(c, rec)
}

// AddDocument files an uploaded document into the digital safe. The payload
// arrives as a multipart form so the binary conversion happens server-side.
func (h *RecordsHandler) AddDocument(c *gin.Context) {
	category := models.DocCategory(c.PostForm("category"))
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	fileData := ""
	file, err := c.FormFile("file")
	if err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read file"})
			return
		}
		defer src.Close()
		fileData, err = media.EncodeDocument(src, file.Header.Get("Content-Type"))
		if err != nil {
			h.logger.Warn("document encoding failed", zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unable to encode file"})
			return
		}
	}

	rec := h.svc.AddDocument(c.Request.Context(), records.DocumentInput{
		Category: category,
		Title:    title,
		FileData: fileData,
	})
	h.created(c, rec)
}

// DeleteDocument removes a document from the safe.
func (h *RecordsHandler) DeleteDocument(c *gin.Context) {
	if err := h.svc.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
		h.mutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"storage_full": h.svc.StorageFull()})
}

// ToggleCleaning marks a cleaning task done or reopens it.
func (h *RecordsHandler) ToggleCleaning(c *gin.Context) {
	var req struct {
		Done       bool   `json:"done"`
		User       string `json:"user"`
		ProofPhoto string `json:"proof_photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	task, err := h.svc.ToggleCleaningTask(c.Request.Context(), c.Param("id"), req.Done, req.User, req.ProofPhoto)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	h.updated(c, task)
}

// UploadPhoto converts an uploaded image into its storable data URL. The
// caller attaches the result to a delivery or cleaning task afterwards.
func (h *RecordsHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read file"})
		return
	}
	defer src.Close()

	dataURL, err := media.EncodePhoto(src)
	if err != nil {
		h.logger.Warn("photo encoding failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unable to encode photo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data_url": dataURL})
}

func (h *RecordsHandler) created(c *gin.Context, record interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"record":       record,
		"storage_full": h.svc.StorageFull(),
	})
}

func (h *RecordsHandler) updated(c *gin.Context, record interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"record":       record,
		"storage_full": h.svc.StorageFull(),
	})
}

func (h *RecordsHandler) mutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, models.ErrEditWindowClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "record is no longer editable"})
	case errors.Is(err, records.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "end time precedes start time"})
	default:
		h.logger.Error("mutation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
	}
}
