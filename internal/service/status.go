package service

import (
	"time"

	"github.com/wellpath/portal/internal/model"
)

type PatientStatus string

const (
	StatusOnTrack          PatientStatus = "On Track"
	StatusNoRecentActivity PatientStatus = "No Recent Activity"
	StatusMissedCheckup    PatientStatus = "Missed Preventive Checkup"
)

// DeriveStatus summarises a patient for the provider roster. An overdue
// reminder outranks missing activity.
func DeriveStatus(p *model.Patient, now time.Time) PatientStatus {
	for _, r := range p.Reminders {
		if r.IsOverdue(now) {
			return StatusMissedCheckup
		}
	}

	if LastLog(p) == nil {
		return StatusNoRecentActivity
	}

	return StatusOnTrack
}

// LastLog is the entry with the latest date across all goals.
func LastLog(p *model.Patient) *model.GoalLog {
	var last *model.GoalLog
	for _, g := range p.Goals {
		for _, l := range g.Logs {
			if last == nil || l.Date.After(last.Date) {
				last = l
			}
		}
	}
	return last
}
