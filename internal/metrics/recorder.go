// SPDX-License-Identifier: MIT
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	writesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recorderctl_writes_total",
		Help: "Recorder state writes by database and outcome",
	}, []string{"database", "outcome"}) // outcome=success|failure

	stateEnabled = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "recorderctl_state_enabled",
		Help: "Last recorder state written per database (1=enabled, 0=disabled)",
	}, []string{"database"})

	registryErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recorderctl_registry_errors_total",
		Help: "Total number of failed database registry lookups",
	})

	unknownDatabaseTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recorderctl_unknown_database_total",
		Help: "Total number of requests naming a database missing from the registry",
	})

	bulkRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recorderctl_bulk_runs_total",
		Help: "Bulk recorder updates by requested state and result",
	}, []string{"state", "result"}) // result=success|failure|empty
)

// RecordWrite counts one backend write.
func RecordWrite(database, outcome string) {
	writesTotal.WithLabelValues(database, outcome).Inc()
}

// RecordState tracks the last successfully written state for a database.
func RecordState(database string, enabled bool) {
	v := 0.0
	if enabled {
		v = 1
	}
	stateEnabled.WithLabelValues(database).Set(v)
}

// RecordRegistryError counts a failed registry lookup.
func RecordRegistryError() {
	registryErrorsTotal.Inc()
}

// RecordUnknownDatabase counts a request for a database the registry does not know.
func RecordUnknownDatabase() {
	unknownDatabaseTotal.Inc()
}

// RecordBulk counts a finished enable-all / disable-all run.
func RecordBulk(state, result string) {
	bulkRunsTotal.WithLabelValues(state, result).Inc()
}

// WriteTextfile dumps the default registry in the node exporter textfile format.
// The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
