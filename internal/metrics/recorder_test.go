// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWrite(t *testing.T) {
	before := testutil.ToFloat64(writesTotal.WithLabelValues("METRICS_DB", "success"))
	RecordWrite("METRICS_DB", "success")
	RecordWrite("METRICS_DB", "success")
	RecordWrite("METRICS_DB", "failure")

	assert.Equal(t, before+2, testutil.ToFloat64(writesTotal.WithLabelValues("METRICS_DB", "success")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(writesTotal.WithLabelValues("METRICS_DB", "failure")), 1.0)
}

func TestRecordState(t *testing.T) {
	RecordState("GAUGE_DB", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(stateEnabled.WithLabelValues("GAUGE_DB")))

	RecordState("GAUGE_DB", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(stateEnabled.WithLabelValues("GAUGE_DB")))
}

func TestRecordCounters(t *testing.T) {
	regBefore := testutil.ToFloat64(registryErrorsTotal)
	unknownBefore := testutil.ToFloat64(unknownDatabaseTotal)
	bulkBefore := testutil.ToFloat64(bulkRunsTotal.WithLabelValues("enabled", "empty"))

	RecordRegistryError()
	RecordUnknownDatabase()
	RecordBulk("enabled", "empty")

	assert.Equal(t, regBefore+1, testutil.ToFloat64(registryErrorsTotal))
	assert.Equal(t, unknownBefore+1, testutil.ToFloat64(unknownDatabaseTotal))
	assert.Equal(t, bulkBefore+1, testutil.ToFloat64(bulkRunsTotal.WithLabelValues("enabled", "empty")))
}

func TestWritesTotalExposedByDefaultGatherer(t *testing.T) {
	RecordWrite("GATHER_DB", "success")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var family *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "recorderctl_writes_total" {
			family = f
			break
		}
	}
	require.NotNil(t, family, "recorderctl_writes_total not registered")
	assert.Equal(t, dto.MetricType_COUNTER, family.GetType())

	found := false
	for _, m := range family.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "database" && lp.GetValue() == "GATHER_DB" {
				found = true
			}
		}
	}
	assert.True(t, found, "expected a series for GATHER_DB")
}

func TestWriteTextfile(t *testing.T) {
	RecordWrite("TEXTFILE_DB", "success")

	path := filepath.Join(t.TempDir(), "recorderctl.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `recorderctl_writes_total{database="TEXTFILE_DB",outcome="success"}`), out)
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write metrics textfile")
}
