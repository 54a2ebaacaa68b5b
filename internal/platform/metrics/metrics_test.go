package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTeamMetrics_CountsByResult(t *testing.T) {
	reg := NewRegistry()
	m := NewTeamMetrics(reg)

	m.ObserveRegistration(ResultRegistered)
	m.ObserveRegistration(ResultRegistered)
	m.ObserveRegistration(ResultDuplicate)
	m.ObserveTeamCreated()
	m.ObserveLookup(false)

	require.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues(ResultRegistered)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues(ResultDuplicate)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.teamsCreated))
	require.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("false")))
}

func TestTeamMetrics_NilIsNoop(t *testing.T) {
	var m *TeamMetrics
	m.ObserveRegistration(ResultRegistered)
	m.ObserveTeamCreated()
	m.ObserveLookup(true)
}
