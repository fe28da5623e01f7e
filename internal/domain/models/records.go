package models

// Status tags the compliance outcome derived from a record's measured values.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusRefused  Status = "refused"
)

// Frequency enumerates cleaning task recurrences.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// DocCategory enumerates document safe categories.
type DocCategory string

const (
	DocTraining    DocCategory = "training"
	DocLabAnalysis DocCategory = "lab-analysis"
	DocPestControl DocCategory = "pest-control"
	DocOther       DocCategory = "other"
)

// TemperatureRecord captures a storage equipment temperature reading.
type TemperatureRecord struct {
	ID          string    `json:"id"`
	Equipment   string    `json:"equipment"`
	Temperature float64   `json:"temperature"`
	Timestamp   Timestamp `json:"timestamp"`
	Status      Status    `json:"status"`
	User        string    `json:"user"`
}

// DeliveryRecord captures an incoming goods inspection.
type DeliveryRecord struct {
	ID          string    `json:"id"`
	Supplier    string    `json:"supplier"`
	Product     string    `json:"product"`
	Temperature float64   `json:"temperature"`
	BatchNumber string    `json:"batch_number"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Status      Status    `json:"status"`
	Timestamp   Timestamp `json:"timestamp"`
	Comment     string    `json:"comment,omitempty"`
}

// CoolingCycle captures a rapid-cooling run from cooking temperature down to storage.
type CoolingCycle struct {
	ID              string    `json:"id"`
	Product         string    `json:"product"`
	BatchNumber     string    `json:"batch_number"`
	StartTime       Timestamp `json:"start_time"`
	StartTemp       float64   `json:"start_temp"`
	EndTime         Timestamp `json:"end_time"`
	EndTemp         float64   `json:"end_temp"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          Status    `json:"status"`
	User            string    `json:"user"`
}

// OilCheck captures a frying oil polar-compound measurement.
type OilCheck struct {
	ID         string    `json:"id"`
	FryerName  string    `json:"fryer_name"`
	TPMValue   float64   `json:"tpm_value"`
	OilChanged bool      `json:"oil_changed"`
	Signature  string    `json:"signature"`
	Timestamp  Timestamp `json:"timestamp"`
	Status     Status    `json:"status"`
}

// CleaningTask captures one entry of the cleaning plan, template or instance.
type CleaningTask struct {
	ID         string    `json:"id"`
	Area       string    `json:"area"`
	TaskName   string    `json:"task_name"`
	Frequency  Frequency `json:"frequency"`
	IsDone     bool      `json:"is_done"`
	DoneAt     Timestamp `json:"done_at,omitempty"`
	User       string    `json:"user,omitempty"`
	ProofPhoto string    `json:"proof_photo,omitempty"`
}

// LabelRecord captures a printed secondary label with its computed expiry.
type LabelRecord struct {
	ID          string    `json:"id"`
	ProductName string    `json:"product_name"`
	BatchNumber string    `json:"batch_number"`
	PrepDate    Timestamp `json:"prep_date"`
	ExpiryDate  Timestamp `json:"expiry_date"`
	User        string    `json:"user"`
}

// DocumentRecord captures an uploaded compliance document in the digital safe.
type DocumentRecord struct {
	ID         string      `json:"id"`
	Category   DocCategory `json:"category"`
	Title      string      `json:"title"`
	UploadDate Timestamp   `json:"upload_date"`
	FileData   string      `json:"file_data,omitempty"`
}

// OccurrenceDate returns the timestamp that anchors the record to a calendar
// day for the same-day edit window.
func (r TemperatureRecord) OccurrenceDate() Timestamp { return r.Timestamp }

// OccurrenceDate returns the delivery inspection time.
func (r DeliveryRecord) OccurrenceDate() Timestamp { return r.Timestamp }

// OccurrenceDate returns the cycle end time; a cycle belongs to the day it finished.
func (r CoolingCycle) OccurrenceDate() Timestamp { return r.EndTime }

// OccurrenceDate returns the check time.
func (r OilCheck) OccurrenceDate() Timestamp { return r.Timestamp }

// OccurrenceDate returns the preparation time.
func (r LabelRecord) OccurrenceDate() Timestamp { return r.PrepDate }
