package service

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/wellpath/portal/internal/markdown"
	"github.com/wellpath/portal/internal/model"
)

//go:embed emails/*.md
var emailFS embed.FS

// Subjects used when a template's frontmatter does not decode, e.g. a
// reminder title containing a double quote.
var defaultSubjects = map[string]string{
	"welcome.md": "Welcome to your wellness portal",
	"overdue.md": "You have overdue preventive care reminders",
}

var (
	emailTemplates = template.Must(template.ParseFS(emailFS, "emails/*.md"))
	emailParser    = markdown.NewParser()
)

type renderedEmail struct {
	Subject string
	Text    string
	HTML    string
}

type welcomeEmailData struct {
	Name         string
	DashboardURL string
	AppName      string
}

type overdueEmailData struct {
	Name         string
	Reminders    []*model.Reminder
	DashboardURL string
	AppName      string
}

// renderEmail fills a markdown template and renders it. The subject comes
// from the template's frontmatter.
func renderEmail(name string, data any) (*renderedEmail, error) {
	var source bytes.Buffer
	err := emailTemplates.ExecuteTemplate(&source, name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", name, err)
	}

	doc, err := emailParser.ParseWithFrontmatter(source.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	subject, _ := doc.Meta["subject"].(string)
	if subject == "" {
		subject = defaultSubjects[name]
	}

	return &renderedEmail{Subject: subject, Text: string(doc.Body), HTML: string(doc.HTML)}, nil
}
