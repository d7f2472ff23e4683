// Package templates renders the HTML and plain-text bodies of outgoing emails.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer holds the parsed template sets. Templates are embedded at build
// time, so a parse failure is a packaging bug surfaced at startup.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render produces the HTML and plain-text bodies for the named template.
// A template without a text counterpart renders with an empty text body.
func (r *Renderer) Render(name string, data interface{}) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.html.ExecuteTemplate(&htmlBuf, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", name, err)
	}

	var textBuf bytes.Buffer
	if err := r.text.ExecuteTemplate(&textBuf, name+".txt", data); err != nil {
		return htmlBuf.String(), "", nil
	}
	return htmlBuf.String(), textBuf.String(), nil
}

// GoalDeadlineAlertData contains data for the goal deadline alert template.
type GoalDeadlineAlertData struct {
	OwnerName     string
	GoalName      string
	DaysLeft      int
	CompletionPct float64
}
