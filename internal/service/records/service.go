// Package records implements the mutation API over the state store: one add
// and, where the record type supports it, one edit per collection, plus the
// explicit deletes and the cleaning task toggle.
package records

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/domain/models"
	"github.com/visijn/haccp/internal/store"
)

// ErrInvalidTimeRange indicates a cooling cycle whose end precedes its start.
var ErrInvalidTimeRange = errors.New("cycle end time precedes start time")

// Service applies record mutations to the store. Every accepted mutation is
// immediately visible to subsequent reads and triggers a snapshot save.
type Service struct {
	store  *store.Store
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
	newID  func() string
}

// NewService wires a mutation service. loc fixes the calendar-day convention
// used for the same-day edit window.
func NewService(st *store.Store, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:  st,
		logger: logger,
		loc:    loc,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Snapshot exposes a read-only copy of the full state.
func (s *Service) Snapshot() models.Snapshot {
	return s.store.Snapshot()
}

// StorageFull reports the standing storage warning.
func (s *Service) StorageFull() bool {
	return s.store.StorageFull()
}

// Reset wipes every collection back to first-run defaults and clears the
// persisted slot.
func (s *Service) Reset(ctx context.Context) {
	s.store.Reset(ctx)
	s.logger.Warn("application state reset to defaults")
}

// TemperatureInput carries the caller-supplied fields of a temperature reading.
type TemperatureInput struct {
	Equipment   string           `json:"equipment" binding:"required"`
	Temperature float64          `json:"temperature"`
	Timestamp   models.Timestamp `json:"timestamp"`
	User        string           `json:"user"`
}

// AddTemperature records a storage temperature reading.
func (s *Service) AddTemperature(ctx context.Context, in TemperatureInput) models.TemperatureRecord {
	rec := models.TemperatureRecord{
		ID:          s.newID(),
		Equipment:   in.Equipment,
		Temperature: in.Temperature,
		Timestamp:   s.timestampOrNow(in.Timestamp),
		Status:      models.ClassifyStorageTemp(in.Temperature),
		User:        in.User,
	}
	s.store.Update(ctx, func(snap *models.Snapshot) {
		snap.TempLogs = append([]models.TemperatureRecord{rec}, snap.TempLogs...)
	})
	s.logger.Debug("temperature recorded", zap.String("equipment", rec.Equipment), zap.String("status", string(rec.Status)))
	return rec
}

// EditTemperature replaces a same-day temperature reading in place.
func (s *Service) EditTemperature(ctx context.Context, id string, in TemperatureInput) (models.TemperatureRecord, error) {
	var out models.TemperatureRecord
	err := s.edit(ctx, func(snap *models.Snapshot) (models.Timestamp, bool) {
		for i, rec := range snap.TempLogs {
			if rec.ID != id {
				continue
			}
			updated := rec
			updated.Equipment = in.Equipment
			updated.Temperature = in.Temperature
			if !in.Timestamp.IsZero() {
				updated.Timestamp = in.Timestamp
			}
			if in.User != "" {
				updated.User = in.User
			}
			updated.Status = models.ClassifyStorageTemp(updated.Temperature)
			snap.TempLogs[i] = updated
			out = updated
			return rec.OccurrenceDate(), true
		}
		return models.Timestamp{}, false
	})
	return out, err
}

// DeliveryInput carries the caller-supplied fields of a goods inspection.
type DeliveryInput struct {
	Supplier    string           `json:"supplier" binding:"required"`
	Product     string           `json:"product" binding:"required"`
	Temperature float64          `json:"temperature"`
	BatchNumber string           `json:"batch_number"`
	PhotoURL    string           `json:"photo_url"`
	Timestamp   models.Timestamp `json:"timestamp"`
	Comment     string           `json:"comment"`
}

// AddDelivery records an incoming goods inspection.
func (s *Service) AddDelivery(ctx context.Context, in DeliveryInput) models.DeliveryRecord {
	rec := models.DeliveryRecord{
		ID:          s.newID(),
		Supplier:    in.Supplier,
		Product:     in.Product,
		Temperature: in.Temperature,
		BatchNumber: in.BatchNumber,
		PhotoURL:    in.PhotoURL,
		Status:      models.ClassifyDeliveryTemp(in.Temperature),
		Timestamp:   s.timestampOrNow(in.Timestamp),
		Comment:     in.Comment,
	}
	s.store.Update(ctx, func(snap *models.Snapshot) {
		snap.DeliveryLogs = append([]models.DeliveryRecord{rec}, snap.DeliveryLogs...)
	})
	s.logger.Debug("delivery recorded", zap.String("supplier", rec.Supplier), zap.String("status", string(rec.Status)))
	return rec
}

// EditDelivery replaces a same-day delivery record in place.
func (s *Service) EditDelivery(ctx context.Context, id string, in DeliveryInput) (models.DeliveryRecord, error) {
	var out models.DeliveryRecord
	err := s.edit(ctx, func(snap *models.Snapshot) (models.Timestamp, bool) {
		for i, rec := range snap.DeliveryLogs {
			if rec.ID != id {
				continue
			}
			updated := rec
			updated.Supplier = in.Supplier
			updated.Product = in.Product
			updated.Temperature = in.Temperature
			updated.BatchNumber = in.BatchNumber
			if in.PhotoURL != "" {
				updated.PhotoURL = in.PhotoURL
			}
			if !in.Timestamp.IsZero() {
				updated.Timestamp = in.Timestamp
			}
			updated.Comment = in.Comment
			updated.Status = models.ClassifyDeliveryTemp(updated.Temperature)
			snap.DeliveryLogs[i] = updated
			out = updated
			return rec.OccurrenceDate(), true
		}
		return models.Timestamp{}, false
	})
	return out, err
}

// CoolingInput carries the caller-supplied fields of a rapid-cooling cycle.
type CoolingInput struct {
	Product         string           `json:"product" binding:"required"`
	BatchNumber     string           `json:"batch_number"`
	StartTime       models.Timestamp `json:"start_time"`
	StartTemp       float64          `json:"start_temp"`
	EndTime         models.Timestamp `json:"end_time"`
	EndTemp         float64          `json:"end_temp"`
	DurationMinutes int              `json:"duration_minutes"`
	User            string           `json:"user"`
}

// AddCooling records a finished rapid-cooling cycle. The duration is derived
// from the elapsed time when not supplied.
func (s *Service) AddCooling(ctx context.Context, in CoolingInput) (models.CoolingCycle, error) {
	rec, err := s.buildCooling(s.newID(), in)
	if err != nil {
		return models.CoolingCycle{}, err
	}
	s.store.Update(ctx, func(snap *models.Snapshot) {
		snap.CoolingLogs = append([]models.CoolingCycle{rec}, snap.CoolingLogs...)
	})
	s.logger.Debug("cooling cycle recorded", zap.String("product", rec.Product), zap.String("status", string(rec.Status)))
	return rec, nil
}

// EditCooling replaces a same-day cooling cycle in place.
func (s *Service) EditCooling(ctx context.Context, id string, in CoolingInput) (models.CoolingCycle, error) {
	updated, err := s.buildCooling(id, in)
	if err != nil {
		return models.CoolingCycle{}, err
	}
	var out models.CoolingCycle
	err = s.edit(ctx, func(snap *models.Snapshot) (models.Timestamp, bool) {
		for i, rec := range snap.CoolingLogs {
			if rec.ID != id {
				continue
			}
			if updated.User == "" {
				updated.User = rec.User
			}
			snap.CoolingLogs[i] = updated
			out = updated
			return rec.OccurrenceDate(), true
		}
		return models.Timestamp{}, false
	})
	return out, err
}

func (s *Service) buildCooling(id string, in CoolingInput) (models.CoolingCycle, error) {
	end := in.EndTime
	if end.IsZero() {
		end = models.NewTimestamp(s.now())
	}
	start := in.StartTime
	if start.IsZero() {
		start = end
	}
	if end.Before(start.Time) {
		return models.CoolingCycle{}, ErrInvalidTimeRange
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = int(end.Sub(start.Time).Minutes())
	}

	return models.CoolingCycle{
		ID:              id,
		Product:         in.Product,
		BatchNumber:     in.BatchNumber,
		StartTime:       start,
		StartTemp:       in.StartTemp,
		EndTime:         end,
		EndTemp:         in.EndTemp,
		DurationMinutes: duration,
		Status:          models.ClassifyCooling(duration, in.EndTemp),
		User:            in.User,
	}, nil
}

// OilInput carries the caller-supplied fields of a frying oil check.
type OilInput struct {
	FryerName  string           `json:"fryer_name" binding:"required"`
	TPMValue   float64          `json:"tpm_value"`
	OilChanged bool             `json:"oil_changed"`
	Signature  string           `json:"signature"`
	Timestamp  models.Timestamp `json:"timestamp"`
}

// AddOil records a frying oil quality check.
func (s *Service) AddOil(ctx context.Context, in OilInput) models.OilCheck {
	rec := models.OilCheck{
		ID:         s.newID(),
		FryerName:  in.FryerName,
		TPMValue:   in.TPMValue,
		OilChanged: in.OilChanged,
		Signature:  in.Signature,
		Timestamp:  s.timestampOrNow(in.Timestamp),
		Status:     models.ClassifyOil(in.TPMValue, in.OilChanged),
	}
	s.store.Update(ctx, func(snap *models.Snapshot) {
		snap.OilLogs = append([]models.OilCheck{rec}, snap.OilLogs...)
	})
	s.logger.Debug("oil check recorded", zap.String("fryer", rec.FryerName), zap.String("status", string(rec.Status)))
	return rec
}

// EditOil replaces a same-day oil check in place.
func (s *Service) EditOil(ctx context.Context, id string, in OilInput) (models.OilCheck, error) {
	var out models.OilCheck
	err := s.edit(ctx, func(snap *models.Snapshot) (models.Timestamp, bool) {
		for i, rec := range snap.OilLogs {
			if rec.ID != id {
				continue
			}
			updated := rec
			updated.FryerName = in.FryerName
			updated.TPMValue = in.TPMValue
			updated.OilChanged = in.OilChanged
			if in.Signature != "" {
				updated.Signature = in.Signature
			}
			if !in.Timestamp.IsZero() {
				updated.Timestamp = in.Timestamp
			}
			updated.Status = models.ClassifyOil(updated.TPMValue, updated.OilChanged)
			snap.OilLogs[i] = updated
			out = updated
			return rec.OccurrenceDate(), true
		}
		return models.Timestamp{}, false
	})
	return out, err
}

// DeleteOil removes an oil check from its collection.
func (s *Service) DeleteOil(ctx context.Context, id string) error {
	return s.delete(ctx, func(snap *models.Snapshot) bool {
		for i, rec := range snap.OilLogs {
			if rec.ID == id {
				snap.OilLogs = append(snap.OilLogs[:i], snap.OilLogs[i+1:]...)
				return true
			}
		}
		return false
	})
}

// LabelInput carries the caller-supplied fields of a printed label.
type LabelInput struct {
	ProductName   string           `json:"product_name" binding:"required"`
	BatchNumber   string           `json:"batch_number"`
	PrepDate      models.Timestamp `json:"prep_date"`
	ShelfLifeDays int              `json:"shelf_life_days"`
	User          string           `json:"user"`
}

// AddLabel records a printed label, computing the use-by date from the
// preparation date plus shelf life.
func (s *Service) AddLabel(ctx context.Context, in LabelInput) models.LabelRecord {
	prep := s.timestampOrNow(in.PrepDate)
	days := in.ShelfLifeDays
	if days <= 0 {
		days = 3
	}
	rec := models.LabelRecord{
		ID:          s.newID(),
		ProductName: in.ProductName,
		BatchNumber: in.BatchNumber,
		PrepDate:    prep,
		ExpiryDate:  models.NewTimestamp(prep.AddDate(0, 0, days)),
		User:        in.User,
	}
	s.store.Update(ctx, func(snap *models.Snapshot) {
		snap.LabelHistory = append([]models.LabelRecord{rec}, snap.LabelHistory...)
	})
	s.logger.Debug("label recorded", zap.String("product", rec.ProductName))
	return rec
}

// EditLabel replaces a same-day label record in place, recomputing the expiry.
func (s *Service) EditLabel(ctx context.Context, id string, in LabelInput) (models.LabelRecord, error) {
	var out models.LabelRecord
	err := s.edit(ctx, func(snap *models.Snapshot) (models.Timestamp, bool) {
		for i, rec := range snap.LabelHistory {
			if rec.ID != id {
				continue
			}
			updated := rec
			updated.ProductName = in.ProductName
			updated.BatchNumber = in.BatchNumber
			if !in.PrepDate.IsZero() {
				updated.PrepDate = in.PrepDate
			}
			if in.ShelfLifeDays > 0 {
				updated.ExpiryDate = models.NewTimestamp(updated.PrepDate.AddDate(0, 0, in.ShelfLifeDays))
			}
			if in.User != "" {
				updated.User = in.User
			}
			snap.LabelHistory[i] = updated
			out = updated
			return rec.OccurrenceDate(), true
		}
		return models.Timestamp{}, false
	})
	return out, err
}

// DocumentInput carries the caller-supplied fields of a safe document.
type DocumentInput struct {
	Category models.DocCategory `json:"category" binding:"required"`
	Title    string             `json:"title" binding:"required"`
	FileData string             `json:"file_data"`
}

// AddDocument files a document into the digital safe.
func (s *Service) AddDocument(ctx context.Context, in DocumentInput) models.DocumentRecord {
	rec := models.DocumentRecord{
		ID:         s.newID(),
		Category:   in.Category,
		Title:      in.Title,
		UploadDate: models.NewTimestamp(s.now()),
		FileData:   in.FileData,
	}
	s.store.Update(ctx, func(snap *models.Snapshot) {
		snap.Documents = append([]models.DocumentRecord{rec}, snap.Documents...)
	})
	s.logger.Debug("document filed", zap.String("title", rec.Title), zap.String("category", string(rec.Category)))
	return rec
}

// DeleteDocument removes a document from the safe.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	return s.delete(ctx, func(snap *models.Snapshot) bool {
		for i, rec := range snap.Documents {
			if rec.ID == id {
				snap.Documents = append(snap.Documents[:i], snap.Documents[i+1:]...)
				return true
			}
		}
		return false
	})
}

// ToggleCleaningTask marks a cleaning task done or reopens it. Completing a
// task stamps the time, operator and optional proof photo; reopening clears
// all three.
func (s *Service) ToggleCleaningTask(ctx context.Context, id string, done bool, user, proofPhoto string) (models.CleaningTask, error) {
	var out models.CleaningTask
	found := false
	s.store.Update(ctx, func(snap *models.Snapshot) {
		for i, task := range snap.CleaningTasks {
			if task.ID != id {
				continue
			}
			if done {
				task.IsDone = true
				task.DoneAt = models.NewTimestamp(s.now())
				task.User = user
				task.ProofPhoto = proofPhoto
			} else {
				task.IsDone = false
				task.DoneAt = models.Timestamp{}
				task.User = ""
				task.ProofPhoto = ""
			}
			snap.CleaningTasks[i] = task
			out = task
			found = true
			return
		}
	})
	if !found {
		return models.CleaningTask{}, models.ErrNotFound
	}
	return out, nil
}

// UpdateSettings overwrites the configuration wholesale and rebuilds the
// cleaning plan from the new templates, carrying over completion state for
// tasks that survive by identifier.
func (s *Service) UpdateSettings(ctx context.Context, settings models.Settings) {
	s.store.Update(ctx, func(snap *models.Snapshot) {
		previous := make(map[string]models.CleaningTask, len(snap.CleaningTasks))
		for _, task := range snap.CleaningTasks {
			previous[task.ID] = task
		}

		tasks := make([]models.CleaningTask, 0, len(settings.CleaningSchedule))
		for _, tpl := range settings.CleaningSchedule {
			if tpl.ID == "" {
				tpl.ID = s.newID()
			}
			if old, ok := previous[tpl.ID]; ok {
				tpl.IsDone = old.IsDone
				tpl.DoneAt = old.DoneAt
				tpl.User = old.User
				tpl.ProofPhoto = old.ProofPhoto
			}
			tasks = append(tasks, tpl)
		}

		snap.Settings = settings
		snap.CleaningTasks = tasks
	})
	s.logger.Info("settings updated", zap.Int("equipment", len(settings.EquipmentList)), zap.Int("cleaning_templates", len(settings.CleaningSchedule)))
}

// edit runs an in-place replacement. The locator returns the original
// occurrence date so the same-day window is checked against the record as it
// was, and reports whether the identifier matched; missing identifiers are a
// NotFound error rather than a silent no-op.
func (s *Service) edit(ctx context.Context, locate func(*models.Snapshot) (models.Timestamp, bool)) error {
	probe := s.store.Snapshot()
	occurred, found := locate(&probe)
	if !found {
		return models.ErrNotFound
	}
	if !occurred.SameDay(models.NewTimestamp(s.now()), s.loc) {
		return models.ErrEditWindowClosed
	}

	s.store.Update(ctx, func(snap *models.Snapshot) {
		locate(snap)
	})
	return nil
}

func (s *Service) delete(ctx context.Context, remove func(*models.Snapshot) bool) error {
	found := false
	s.store.Update(ctx, func(snap *models.Snapshot) {
		found = remove(snap)
	})
	if !found {
		return models.ErrNotFound
	}
	return nil
}

func (s *Service) timestampOrNow(ts models.Timestamp) models.Timestamp {
	if ts.IsZero() {
		return models.NewTimestamp(s.now())
	}
	return ts
}
