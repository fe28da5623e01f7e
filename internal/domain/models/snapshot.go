package models

import "slices"

// Settings holds the establishment configuration carried inside the snapshot.
type Settings struct {
	EquipmentList    []string       `json:"equipment_list"`
	CleaningSchedule []CleaningTask `json:"cleaning_schedule"`
	APIKey           string         `json:"api_key,omitempty"`
	CompanyName      string         `json:"company_name"`
	ManagerName      string         `json:"manager_name"`
}

// Snapshot is the full application state: every record collection plus the
// configuration, persisted as one blob and restored wholesale.
type Snapshot struct {
	TempLogs      []TemperatureRecord `json:"temp_logs"`
	DeliveryLogs  []DeliveryRecord    `json:"delivery_logs"`
	CleaningTasks []CleaningTask      `json:"cleaning_tasks"`
	CoolingLogs   []CoolingCycle      `json:"cooling_logs"`
	LabelHistory  []LabelRecord       `json:"label_history"`
	OilLogs       []OilCheck          `json:"oil_logs"`
	Documents     []DocumentRecord    `json:"documents"`
	Settings      Settings            `json:"settings"`
}

// DefaultSnapshot returns the first-run state: empty collections and the
// stock equipment list and cleaning plan.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		TempLogs:      []TemperatureRecord{},
		DeliveryLogs:  []DeliveryRecord{},
		CleaningTasks: defaultCleaningTasks(),
		CoolingLogs:   []CoolingCycle{},
		LabelHistory:  []LabelRecord{},
		OilLogs:       []OilCheck{},
		Documents:     []DocumentRecord{},
		Settings: Settings{
			EquipmentList:    defaultEquipmentList(),
			CleaningSchedule: defaultCleaningTasks(),
			CompanyName:      "Mon Entreprise",
			ManagerName:      "Responsable",
		},
	}
}

func defaultEquipmentList() []string {
	return []string{"Chambre Froide 1", "Chambre Froide 2", "Congélateur A", "Vitrine Réfrigérée"}
}

func defaultCleaningTasks() []CleaningTask {
	return []CleaningTask{
		{ID: "task-1", Area: "Cuisine", TaskName: "Désinfection plans de travail", Frequency: FrequencyDaily},
		{ID: "task-2", Area: "Cuisine", TaskName: "Nettoyage sols", Frequency: FrequencyDaily},
		{ID: "task-3", Area: "Plonge", TaskName: "Vidange lave-vaisselle", Frequency: FrequencyDaily},
		{ID: "task-4", Area: "Stockage", TaskName: "Nettoyage étagères", Frequency: FrequencyWeekly},
	}
}

// Normalize replaces nil collections with empty ones so older snapshots that
// predate a collection deserialize into a usable state.
func (s *Snapshot) Normalize() {
	if s.TempLogs == nil {
		s.TempLogs = []TemperatureRecord{}
	}
	if s.DeliveryLogs == nil {
		s.DeliveryLogs = []DeliveryRecord{}
	}
	if s.CleaningTasks == nil {
		s.CleaningTasks = defaultCleaningTasks()
	}
	if s.CoolingLogs == nil {
		s.CoolingLogs = []CoolingCycle{}
	}
	if s.LabelHistory == nil {
		s.LabelHistory = []LabelRecord{}
	}
	if s.OilLogs == nil {
		s.OilLogs = []OilCheck{}
	}
	if s.Documents == nil {
		s.Documents = []DocumentRecord{}
	}
	if s.Settings.EquipmentList == nil {
		s.Settings.EquipmentList = defaultEquipmentList()
	}
	if s.Settings.CleaningSchedule == nil {
		s.Settings.CleaningSchedule = defaultCleaningTasks()
	}
	if s.Settings.CompanyName == "" {
		s.Settings.CompanyName = "Mon Entreprise"
	}
	if s.Settings.ManagerName == "" {
		s.Settings.ManagerName = "Responsable"
	}
}

// Clone returns a deep copy of the snapshot so report generation and export
// never observe later mutations. Empty collections stay empty rather than
// becoming nil, so they keep serializing as JSON arrays.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.TempLogs = slices.Clone(s.TempLogs)
	out.DeliveryLogs = slices.Clone(s.DeliveryLogs)
	out.CleaningTasks = slices.Clone(s.CleaningTasks)
	out.CoolingLogs = slices.Clone(s.CoolingLogs)
	out.LabelHistory = slices.Clone(s.LabelHistory)
	out.OilLogs = slices.Clone(s.OilLogs)
	out.Documents = slices.Clone(s.Documents)
	out.Settings.EquipmentList = slices.Clone(s.Settings.EquipmentList)
	out.Settings.CleaningSchedule = slices.Clone(s.Settings.CleaningSchedule)
	return out
}
