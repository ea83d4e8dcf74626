package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "hms")

	m.Operations.WithLabelValues("admit_patient", "success").Inc()
	m.Rollbacks.WithLabelValues("admit_patient").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("admit_patient", "success")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "hms_operations_total")
	assert.Contains(t, names, "hms_transaction_rollbacks_total")
}

func TestNew_TwoInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop()
		NewNop()
	})
}
