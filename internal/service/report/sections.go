// Package report turns a state snapshot into the daily HACCP compliance
// document: one section per record category, filtered to a target day.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/visijn/haccp/internal/domain/models"
)

const timeOfDayLayout = "15:04"

// Section is one rendered block of the daily report: a titled table, or its
// empty-state line when the day produced no rows.
type Section struct {
	Title     string
	Columns   []string
	Rows      [][]string
	EmptyText string
	HeadColor [3]uint8
}

// Header carries the report title block fields.
type Header struct {
	Company     string
	Manager     string
	Date        string
	GeneratedAt string
}

func statusLabel(status models.Status) string {
	switch status {
	case models.StatusOK:
		return "OK"
	case models.StatusWarning:
		return "ATTENTION"
	case models.StatusCritical:
		return "CRITIQUE"
	case models.StatusRefused:
		return "REFUSE"
	default:
		return strings.ToUpper(string(status))
	}
}

func yesNo(b bool) string {
	if b {
		return "OUI"
	}
	return "NON"
}

// buildSections assembles the six report sections in their fixed order. The
// day filter is calendar-date equality in loc; cleaning tasks are listed by
// completion flag regardless of date. The snapshot is never mutated.
func buildSections(snap models.Snapshot, day models.Timestamp, loc *time.Location) []Section {
	sections := make([]Section, 0, 6)

	temp := Section{
		Title:     "1. Relevés de Températures (Stockage)",
		Columns:   []string{"Heure", "Équipement", "T°C", "Statut", "Utilisateur"},
		EmptyText: "Aucun relevé de température enregistré ce jour.",
		HeadColor: [3]uint8{59, 130, 246},
	}
	for _, rec := range snap.TempLogs {
		if !rec.Timestamp.SameDay(day, loc) {
			continue
		}
		temp.Rows = append(temp.Rows, []string{
			rec.Timestamp.In(loc).Format(timeOfDayLayout),
			rec.Equipment,
			fmt.Sprintf("%.1f°C", rec.Temperature),
			statusLabel(rec.Status),
			rec.User,
		})
	}
	sections = append(sections, temp)

	delivery := Section{
		Title:     "2. Réception Marchandises (Traçabilité)",
		Columns:   []string{"Heure", "Fournisseur", "Produit", "Lot", "T°C", "Photo", "Statut"},
		EmptyText: "Aucune livraison enregistrée ce jour.",
		HeadColor: [3]uint8{22, 163, 74},
	}
	for _, rec := range snap.DeliveryLogs {
		if !rec.Timestamp.SameDay(day, loc) {
			continue
		}
		status := "ACCEPTE"
		if rec.Status != models.StatusOK {
			status = "REFUSE"
		}
		delivery.Rows = append(delivery.Rows, []string{
			rec.Timestamp.In(loc).Format(timeOfDayLayout),
			rec.Supplier,
			rec.Product,
			rec.BatchNumber,
			fmt.Sprintf("%.1f°C", rec.Temperature),
			yesNo(rec.PhotoURL != ""),
			status,
		})
	}
	sections = append(sections, delivery)

	cooling := Section{
		Title:     "3. Cycles de Refroidissement",
		Columns:   []string{"Produit", "Lot", "Début", "Fin", "Durée", "T° Début", "T° Fin", "Statut"},
		EmptyText: "Aucun cycle de refroidissement ce jour.",
		HeadColor: [3]uint8{8, 145, 178},
	}
	for _, rec := range snap.CoolingLogs {
		if !rec.EndTime.SameDay(day, loc) {
			continue
		}
		status := "CONFORME"
		if rec.Status != models.StatusOK {
			status = "NON CONFORME"
		}
		cooling.Rows = append(cooling.Rows, []string{
			rec.Product,
			rec.BatchNumber,
			rec.StartTime.In(loc).Format(timeOfDayLayout),
			rec.EndTime.In(loc).Format(timeOfDayLayout),
			fmt.Sprintf("%d min", rec.DurationMinutes),
			fmt.Sprintf("%.0f°C", rec.StartTemp),
			fmt.Sprintf("%.0f°C", rec.EndTemp),
			status,
		})
	}
	sections = append(sections, cooling)

	oil := Section{
		Title:     "4. Contrôle Huiles (TPM)",
		Columns:   []string{"Équipement", "Heure", "TPM %", "Changée ?", "Opérateur", "Statut"},
		EmptyText: "Aucun contrôle d'huile effectué ce jour.",
		HeadColor: [3]uint8{202, 138, 4},
	}
	for _, rec := range snap.OilLogs {
		if !rec.Timestamp.SameDay(day, loc) {
			continue
		}
		tpm := fmt.Sprintf("%.1f%%", rec.TPMValue)
		if rec.OilChanged {
			tpm = "NEW"
		}
		oil.Rows = append(oil.Rows, []string{
			rec.FryerName,
			rec.Timestamp.In(loc).Format(timeOfDayLayout),
			tpm,
			yesNo(rec.OilChanged),
			rec.Signature,
			statusLabel(rec.Status),
		})
	}
	sections = append(sections, oil)

	labels := Section{
		Title:     "5. Production & Étiquetage",
		Columns:   []string{"Produit", "Lot", "Préparé à", "DLC", "Utilisateur"},
		EmptyText: "Aucune étiquette produite ce jour.",
		HeadColor: [3]uint8{147, 51, 234},
	}
	for _, rec := range snap.LabelHistory {
		if !rec.PrepDate.SameDay(day, loc) {
			continue
		}
		labels.Rows = append(labels.Rows, []string{
			rec.ProductName,
			rec.BatchNumber,
			rec.PrepDate.In(loc).Format(timeOfDayLayout),
			rec.ExpiryDate.DateIn(loc),
			rec.User,
		})
	}
	sections = append(sections, labels)

	cleaning := Section{
		Title:     "6. Plan de Nettoyage",
		Columns:   []string{"Zone", "Tâche", "Fait par", "Heure", "Preuve Photo"},
		EmptyText: "Aucune tâche de nettoyage validée pour le moment.",
		HeadColor: [3]uint8{234, 88, 12},
	}
	for _, task := range snap.CleaningTasks {
		if !task.IsDone {
			continue
		}
		user := task.User
		if user == "" {
			user = "-"
		}
		doneAt := "-"
		if !task.DoneAt.IsZero() {
			doneAt = task.DoneAt.In(loc).Format(timeOfDayLayout)
		}
		photo := "-"
		if task.ProofPhoto != "" {
			photo = "OUI"
		}
		cleaning.Rows = append(cleaning.Rows, []string{task.Area, task.TaskName, user, doneAt, photo})
	}
	sections = append(sections, cleaning)

	return sections
}
