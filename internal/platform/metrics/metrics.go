package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "tournament"

const (
	ResultRegistered = "registered"
	ResultDuplicate  = "duplicate"
	ResultRejected   = "rejected"
)

// TeamMetrics holds the counters emitted by team use cases. A nil *TeamMetrics is a no-op.
type TeamMetrics struct {
	registrations *prometheus.CounterVec
	teamsCreated  prometheus.Counter
	lookups       *prometheus.CounterVec
}

// NewRegistry returns a registry preloaded with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewTeamMetrics(reg prometheus.Registerer) *TeamMetrics {
	m := &TeamMetrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_player_registrations_total",
			Help:      "Player registration attempts by outcome.",
		}, []string{"result"}),
		teamsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teams_created_total",
			Help:      "Teams created.",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_player_lookups_total",
			Help:      "Player lookups by outcome.",
		}, []string{"found"}),
	}
	if reg != nil {
		reg.MustRegister(m.registrations, m.teamsCreated, m.lookups)
	}
	return m
}

func (m *TeamMetrics) ObserveRegistration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

func (m *TeamMetrics) ObserveTeamCreated() {
	if m == nil {
		return
	}
	m.teamsCreated.Inc()
}

func (m *TeamMetrics) ObserveLookup(found bool) {
	if m == nil {
		return
	}
	label := "false"
	if found {
		label = "true"
	}
	m.lookups.WithLabelValues(label).Inc()
}
