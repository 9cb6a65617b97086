package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TagsCreated counts tags created, labelled by where the creation came from.
	TagsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tagline_tags_created_total",
		Help: "Total number of tags created",
	}, []string{"source"})

	// RelationshipEvents counts follow and like graph mutations by kind and outcome.
	RelationshipEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tagline_relationship_events_total",
		Help: "Follow and like mutations by kind and outcome",
	}, []string{"kind", "outcome"})

	// PostQueryResults observes how many posts list and feed queries return.
	PostQueryResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tagline_post_query_results",
		Help:    "Number of posts returned by list and feed queries",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	}, []string{"query"})
)

// RecordRelationship increments RelationshipEvents.
func RecordRelationship(kind, outcome string) {
	RelationshipEvents.WithLabelValues(kind, outcome).Inc()
}
