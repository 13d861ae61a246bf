package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	pageRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naepweb_page_renders_total",
			Help: "Pages rendered, by page and scope",
		},
		[]string{"page", "scope"},
	)

	datasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naepweb_dataset_loads_total",
			Help: "Dataset load attempts observed by request handlers",
		},
		[]string{"outcome"},
	)

	imageProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naepweb_image_probes_total",
			Help: "Illustration existence probes, by outcome",
		},
		[]string{"outcome"},
	)
)

// Register registers all collectors with the given registry.
func Register(r prometheus.Registerer) {
	r.MustRegister(pageRenders, datasetLoads, imageProbes)
}

// PageRender records one rendered page. scope is "state", "national", or
// "static".
func PageRender(page, scope string) {
	pageRenders.WithLabelValues(page, scope).Inc()
}

// DatasetLoad records the outcome a handler observed from the loader.
func DatasetLoad(ok bool) {
	datasetLoads.WithLabelValues(outcome(ok)).Inc()
}

// ImageProbe records one illustration existence check.
func ImageProbe(found bool) {
	imageProbes.WithLabelValues(outcome(found)).Inc()
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "miss"
}
