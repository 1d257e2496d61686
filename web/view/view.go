// Package view renders the HTML pages from embedded templates. Templates
// share the head and foot partials; every page data struct embeds Page so
// the partials can read the common fields.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/styles.css
var stylesCSS []byte

var funcs = template.FuncMap{
	"reltime": func(t time.Time) string {
		return RelativeTime(t, time.Now())
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return "N/A"
		}
		return t.Format("2006-01-02 15:04")
	},
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))

// Page carries the fields the shared head and foot partials need.
type Page struct {
	Title         string
	AppName       string
	Authenticated bool
	Username      string
	Flash         string
	Error         string
	MockMode      bool
	DevTools      bool
	Assistant     bool
}

// Render executes the named page template into a buffer so a template
// failure never leaves a half-written response.
func Render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Styles returns the embedded stylesheet.
func Styles() []byte {
	return stylesCSS
}

// RelativeTime formats a timestamp relative to now for chat and task lists.
// Anything older than a week falls back to the date.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	secs := now.Sub(t).Seconds()
	if secs < 5 {
		return "just now"
	}
	if secs < 60 {
		return fmt.Sprintf("%ds ago", int(secs))
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%dm ago", int(mins))
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", int(hours))
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd ago", int(days))
	}
	return t.Format("Jan 02, 2006")
}
