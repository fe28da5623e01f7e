// Package backup handles the portable state package: full-snapshot export,
// wholesale restore from an imported file and bulk list imports.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/domain/models"
	"github.com/visijn/haccp/internal/store"
)

var whitespace = regexp.MustCompile(`\s+`)

// Service implements backup export/import over the state store.
type Service struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a backup service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger, now: time.Now, newID: uuid.NewString}
}

// Export serializes the full snapshot, pretty-printed, and returns the bytes
// with the download filename built from the organization name and the date.
func (s *Service) Export() ([]byte, string, error) {
	snap := s.store.Snapshot()

	blob, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed serializing backup: %w", err)
	}

	company := whitespace.ReplaceAllString(strings.TrimSpace(snap.Settings.CompanyName), "_")
	if company == "" {
		company = "HACCP"
	}
	filename := fmt.Sprintf("PACKAGE_VISIJN_%s_%s.json", company, s.now().UTC().Format(models.DateLayout))

	s.logger.Info("backup exported", zap.Int("bytes", len(blob)), zap.String("filename", filename))
	return blob, filename, nil
}

// Import parses a previously exported package and wholesale-replaces the
// state. A file that does not parse is rejected and the current state is
// left untouched.
func (s *Service) Import(ctx context.Context, data []byte) error {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("rejected backup import", zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrInvalidImport, err)
	}

	s.store.Restore(ctx, snap)
	s.logger.Info("backup imported",
		zap.Int("temp_logs", len(snap.TempLogs)),
		zap.Int("delivery_logs", len(snap.DeliveryLogs)),
		zap.Int("documents", len(snap.Documents)))
	return nil
}

// ParseEquipmentList reads a bulk equipment import: one bare equipment name
// per line, blank lines skipped.
func ParseEquipmentList(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// ParseCleaningTemplates reads a bulk cleaning plan import: `area, task,
// frequency` per line. Frequency text recognized as weekly (case-insensitive
// "weekly" or "hebdo") maps to the weekly recurrence; everything else is daily.
func (s *Service) ParseCleaningTemplates(text string) []models.CleaningTask {
	out := []models.CleaningTask{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}

		freq := models.FrequencyDaily
		if len(parts) > 2 {
			switch strings.ToLower(strings.TrimSpace(parts[2])) {
			case "weekly", "hebdo":
				freq = models.FrequencyWeekly
			}
		}

		out = append(out, models.CleaningTask{
			ID:        s.newID(),
			Area:      strings.TrimSpace(parts[0]),
			TaskName:  strings.TrimSpace(parts[1]),
			Frequency: freq,
		})
	}
	return out
}
