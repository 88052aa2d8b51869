package handler

import (
	"github.com/wellpath/portal/internal/model"
	"github.com/wellpath/portal/internal/service"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

type userView struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

func newUserView(u *model.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type profileView struct {
	userView
	ConsentGiven bool   `json:"consentGiven"`
	Allergies    string `json:"allergies"`
	Medications  string `json:"medications"`
}

func newProfileView(u *model.User) profileView {
	return profileView{
		userView:     newUserView(u),
		ConsentGiven: u.ConsentGiven,
		Allergies:    u.Allergies,
		Medications:  u.Medications,
	}
}

// providerMeView is a provider's own record: the patient profile shape with
// empty allergies and medications, plus the assigned patients.
type providerMeView struct {
	profileView
	AssignedPatientIDs []string `json:"assignedPatientIds"`
}

func newProviderMeView(p *model.Provider) providerMeView {
	view := providerMeView{profileView: newProfileView(&p.User), AssignedPatientIDs: p.AssignedPatientIDs}
	view.Allergies = ""
	view.Medications = ""
	if view.AssignedPatientIDs == nil {
		view.AssignedPatientIDs = []string{}
	}
	return view
}

type goalView struct {
	ID              string           `json:"id"`
	Type            model.GoalType   `json:"type"`
	Label           string           `json:"label"`
	Target          *float64         `json:"target,omitempty"`
	Unit            *string          `json:"unit,omitempty"`
	Logs            []*model.GoalLog `json:"logs"`
	LatestLog       *model.GoalLog   `json:"latestLog"`
	ProgressPercent int              `json:"progressPercent"`
}

func newGoalViews(goals []*model.Goal) []goalView {
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		logs := g.Logs
		if logs == nil {
			logs = []*model.GoalLog{}
		}
		views = append(views, goalView{
			ID:              g.ID,
			Type:            g.Type,
			Label:           titleCaser.String(string(g.Type)),
			Target:          g.Target,
			Unit:            g.Unit,
			Logs:            logs,
			LatestLog:       g.LatestLog(),
			ProgressPercent: g.ProgressPercent(),
		})
	}
	return views
}

func reminderViews(reminders []*model.Reminder) []*model.Reminder {
	if reminders == nil {
		return []*model.Reminder{}
	}
	return reminders
}

type patientSummaryView struct {
	ID     string                `json:"id"`
	Name   string                `json:"name"`
	Email  string                `json:"email"`
	Status service.PatientStatus `json:"status"`
}

type patientDetailView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Allergies   string            `json:"allergies"`
	Medications string            `json:"medications"`
	Goals       []goalView        `json:"goals"`
	Reminders   []*model.Reminder `json:"reminders"`
}

func newPatientDetailView(p *model.Patient) patientDetailView {
	return patientDetailView{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Allergies:   p.Allergies,
		Medications: p.Medications,
		Goals:       newGoalViews(p.Goals),
		Reminders:   reminderViews(p.Reminders),
	}
}
