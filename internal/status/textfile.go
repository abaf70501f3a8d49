// internal/status/textfile.go
package status

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry builds a fresh registry holding the snapshot as metrics.
func Registry(s *Snapshot) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
		g.Set(v)
		reg.MustRegister(g)
	}
	counter := func(name, help string, v uint64) {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
		c.Add(float64(v))
		reg.MustRegister(c)
	}

	gauge("health", "0 unknown, 1 ok, 2 error.", float64(s.Health))
	gauge("last_error_code", "Last Modbus exception code, 1 for uncoded faults.", float64(s.LastErrorCode))
	gauge("cycle_duration_seconds", "Duration of the last poll cycle.", s.CycleDuration.Seconds())

	if !s.LastCycle.IsZero() {
		gauge("last_cycle_timestamp_seconds", "Unix time the last cycle finished.", float64(s.LastCycle.Unix()))
	}
	if !s.LastSuccess.IsZero() {
		gauge("last_success_timestamp_seconds", "Unix time of the last decoded reading.", float64(s.LastSuccess.Unix()))
	}

	counter("cycles_total", "Poll cycles run by this process.", s.Cycles)
	counter("readings_total", "Readings appended to the data log.", s.Readings)

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "errors_total",
		Help:      "Error records by kind.",
	}, []string{"kind"})
	for _, k := range errorKinds {
		errs.WithLabelValues(k.String()).Add(float64(s.Errors[k]))
	}
	reg.MustRegister(errs)

	return reg
}

// WriteTextfile exports the snapshot for node_exporter's textfile collector.
func WriteTextfile(path string, s *Snapshot) error {
	if err := prometheus.WriteToTextfile(path, Registry(s)); err != nil {
		return fmt.Errorf("status: write textfile %s: %w", path, err)
	}
	return nil
}
