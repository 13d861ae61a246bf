// Package handlers wires the request pipeline: resolve the visitor's
// location, pick the matching record, and render the page.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"mathfacts.org/naep-web/internal/assets"
	"mathfacts.org/naep-web/internal/dataset"
	"mathfacts.org/naep-web/internal/geo"
	"mathfacts.org/naep-web/internal/metrics"
	"mathfacts.org/naep-web/internal/observability"
	"mathfacts.org/naep-web/internal/render"
)

// Pages holds the shared collaborators for the page handlers.
type Pages struct {
	Loader   *dataset.Loader
	Prober   *assets.Prober
	Renderer *render.Renderer

	CountryHeader string
	RegionHeader  string
}

// Home serves the personalized statistic page. A dataset load failure
// degrades to the soft error page with status 200, never a 5xx.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	log := observability.FromContext(r.Context())

	hint := geo.FromRequest(r, p.CountryHeader, p.RegionHeader)

	ds, err := p.Loader.Load(r.Context())
	metrics.DatasetLoad(err == nil)
	if err != nil {
		log.Error("serving degraded home page", zap.Error(err))
		metrics.PageRender("home", "degraded")
		p.Renderer.Degraded(w)
		return
	}

	sel := dataset.Select(ds, hint.Country, hint.Region)

	var imageURL string
	if key := dataset.ImageKey(sel.Record.Text); key != "" {
		found := p.Prober.ImageExists(r.Context(), key)
		metrics.ImageProbe(found)
		if found {
			imageURL = p.Prober.ImageURL(key)
		}
	}

	scope := "state"
	if sel.National {
		scope = "national"
	}
	metrics.PageRender("home", scope)

	p.Renderer.Home(w, render.HomeData{
		Statistic: sel.Record.Text,
		Label:     sel.Label,
		National:  sel.National,
		ImageURL:  imageURL,
		ImageAlt:  "Illustration: " + sel.Record.Text,
	})
}

// Investor serves the static investor page. The page is intentionally
// unlinked and marked non-indexable.
func (p *Pages) Investor(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Robots-Tag", "noindex")
	metrics.PageRender("investor", "static")
	p.Renderer.Investor(w)
}

// NotFound serves the 404 page for unknown GET paths.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	metrics.PageRender("notfound", "static")
	p.Renderer.NotFound(w)
}

// Health is the plain-text liveness endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
