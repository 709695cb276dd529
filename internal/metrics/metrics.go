package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal        *prometheus.CounterVec
	votesCastTotal           *prometheus.CounterVec
	commentsPostedTotal      *prometheus.CounterVec
	persistenceFailuresTotal *prometheus.CounterVec
	registerOnce             sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tamaire",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the widget API.",
		}, []string{"method", "path", "status"})
		votesCastTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tamaire",
			Name:      "votes_cast_total",
			Help:      "Votes cast or changed, by chosen team.",
		}, []string{"team"})
		commentsPostedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tamaire",
			Name:      "comments_posted_total",
			Help:      "Comments posted, by team.",
		}, []string{"team"})
		persistenceFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tamaire",
			Name:      "persistence_failures_total",
			Help:      "Failed reads or writes against the key-value store.",
		}, []string{"key", "op"})
	})
}

func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncVoteCast(team string) {
	if votesCastTotal == nil {
		return
	}
	votesCastTotal.WithLabelValues(team).Inc()
}

func IncCommentPosted(team string) {
	if commentsPostedTotal == nil {
		return
	}
	commentsPostedTotal.WithLabelValues(team).Inc()
}

// IncPersistenceFailure records a failed "load" or "save" for a storage key.
func IncPersistenceFailure(key, op string) {
	if persistenceFailuresTotal == nil {
		return
	}
	persistenceFailuresTotal.WithLabelValues(key, op).Inc()
}
