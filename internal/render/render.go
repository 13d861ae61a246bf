// Package render turns view models into HTML documents. Every dynamic value
// flows through html/template so escaping happens in the interpolation
// primitive, not at call sites.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// HomeData is the view model for the personalized home page.
type HomeData struct {
	Statistic string
	Label     string
	National  bool
	ImageURL  string
	ImageAlt  string
}

// InvestorData carries the pre-rendered investor page body.
type InvestorData struct {
	Body template.HTML
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl         *template.Template
	investorBody template.HTML
	log          *zap.Logger
}

// New parses the embedded templates and prepares the investor page body.
func New(logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	body, err := investorBody()
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, investorBody: body, log: logger}, nil
}

// Home renders the personalized statistic page.
func (rn *Renderer) Home(w http.ResponseWriter, data HomeData) {
	rn.page(w, http.StatusOK, "home.tmpl", data)
}

// Investor renders the static investor page.
func (rn *Renderer) Investor(w http.ResponseWriter) {
	rn.page(w, http.StatusOK, "investor.tmpl", InvestorData{Body: rn.investorBody})
}

// NotFound renders the 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter) {
	rn.page(w, http.StatusNotFound, "notfound.tmpl", nil)
}

// Degraded renders the soft failure page. The status stays 200: a dataset
// outage shows the visitor an apology, not an error code.
func (rn *Renderer) Degraded(w http.ResponseWriter) {
	rn.page(w, http.StatusOK, "error.tmpl", nil)
}

// page executes into a buffer first so a template failure never leaks a
// half-written document or a wrong status line.
func (rn *Renderer) page(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rn.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		rn.log.Error("template execute failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
