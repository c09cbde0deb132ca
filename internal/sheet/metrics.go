package sheet

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swatchsheet",
		Subsystem: "sheet",
		Name:      "generations_total",
		Help:      "Total sheet generations, by outcome.",
	}, []string{"status"})

	colorsExtracted = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "swatchsheet",
		Subsystem: "sheet",
		Name:      "colors_extracted",
		Help:      "Distinct colors found per selection.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 9),
	})

	labelSourcesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swatchsheet",
		Subsystem: "sheet",
		Name:      "label_sources_total",
		Help:      "Total swatch labels, by where the name came from.",
	}, []string{"source"})
)

// Status names the outcome of a generation, as used in metrics and API errors.
func Status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoDocument):
		return "no_document"
	case errors.Is(err, ErrEmptySelection):
		return "empty_selection"
	case errors.Is(err, ErrNoColors):
		return "no_colors"
	}
	return "error"
}
