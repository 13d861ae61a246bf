// Package geo extracts the edge-provided geolocation hint from a request and
// maps US state codes to display names. Hints are best-effort and unverified;
// callers must treat them as untrusted input.
package geo

import (
	"net/http"
	"strings"
)

// Hint is the resolved geolocation for one request. Empty fields mean the
// edge could not place the visitor.
type Hint struct {
	Country string
	Region  string
}

// FromRequest reads the geolocation hint from the configured edge headers.
// Explicit `country`/`state` query parameters override the headers so pages
// can be previewed for any region without spoofing edge metadata.
func FromRequest(r *http.Request, countryHeader, regionHeader string) Hint {
	q := r.URL.Query()
	country := q.Get("country")
	if country == "" {
		country = r.Header.Get(countryHeader)
	}
	region := q.Get("state")
	if region == "" {
		region = r.Header.Get(regionHeader)
	}
	return Hint{
		Country: strings.ToUpper(strings.TrimSpace(country)),
		Region:  strings.ToUpper(strings.TrimSpace(region)),
	}
}
