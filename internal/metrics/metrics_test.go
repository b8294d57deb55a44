package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRuns(t *testing.T) {
	before := testutil.ToFloat64(ServiceRuns.WithLabelValues("metrics-test", OutcomeSucceeded))
	ServiceRuns.WithLabelValues("metrics-test", OutcomeSucceeded).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ServiceRuns.WithLabelValues("metrics-test", OutcomeSucceeded)))
}

func TestWriteTextfileFrom(t *testing.T) {
	reg := prometheus.NewRegistry()
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "osforge_service_runs_total",
		Help: "Total number of service runs by outcome",
	}, []string{"service", "outcome"})
	reg.MustRegister(runs)
	runs.WithLabelValues("apt", OutcomeFailed).Add(2)

	path := filepath.Join(t.TempDir(), "nested", "osforge.prom")
	require.NoError(t, WriteTextfileFrom(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `# HELP osforge_service_runs_total Total number of service runs by outcome
# TYPE osforge_service_runs_total counter
osforge_service_runs_total{outcome="failed",service="apt"} 2
`
	assert.Equal(t, want, string(data))
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "osforge_service_runs_total"))
}
