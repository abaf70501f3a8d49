// internal/status/status_test.go
package status

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tamzrod/modbus-datalogger/internal/poller"
)

var t0 = time.Unix(1700000000, 0)

func TestObserve_HealthTransitions(t *testing.T) {
	s := NewSnapshot()
	if s.Health != HealthUnknown {
		t.Fatalf("boot health=%d", s.Health)
	}

	// error
	s.Observe(poller.Cycle{Started: t0, Outcomes: []poller.Outcome{
		{Kind: poller.KindFault, RawErrorCode: 2},
		{Kind: poller.KindSuccess},
	}}, t0.Add(2*time.Second))

	if s.Health != HealthError || s.LastErrorCode != 2 {
		t.Fatalf("health=%d code=%d", s.Health, s.LastErrorCode)
	}
	if s.Readings != 1 || s.Errors[poller.KindFault] != 1 {
		t.Fatalf("readings=%d faults=%d", s.Readings, s.Errors[poller.KindFault])
	}
	if s.CycleDuration != 2*time.Second {
		t.Fatalf("duration=%v", s.CycleDuration)
	}

	// recovery
	s.Observe(poller.Cycle{Started: t0, Outcomes: []poller.Outcome{
		{Kind: poller.KindSuccess},
	}}, t0.Add(time.Minute))

	if s.Health != HealthOK || s.LastErrorCode != 0 {
		t.Fatalf("health=%d code=%d after recovery", s.Health, s.LastErrorCode)
	}
	if s.Cycles != 2 || s.Readings != 2 {
		t.Fatalf("cycles=%d readings=%d", s.Cycles, s.Readings)
	}
	if !s.LastSuccess.Equal(t0.Add(time.Minute)) {
		t.Fatalf("last success=%v", s.LastSuccess)
	}

	// empty cycle (cancelled)
	s.Observe(poller.Cycle{Started: t0}, t0)
	if s.Health != HealthUnknown {
		t.Fatalf("health=%d after empty cycle", s.Health)
	}
}

func TestWriteTextfile(t *testing.T) {
	s := NewSnapshot()
	s.Observe(poller.Cycle{Started: t0, Outcomes: []poller.Outcome{
		{Kind: poller.KindConnectionError, RawErrorCode: 0},
	}}, t0.Add(time.Second))

	path := filepath.Join(t.TempDir(), "modbus_logger.prom")
	if err := WriteTextfile(path, s); err != nil {
		t.Fatalf("WriteTextfile err=%v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)

	for _, want := range []string{
		"modbus_logger_health 2",
		"modbus_logger_cycles_total 1",
		"modbus_logger_readings_total 0",
		`modbus_logger_errors_total{kind="modbus_connection_error"} 1`,
		`modbus_logger_errors_total{kind="comport_issue"} 0`,
		"modbus_logger_last_cycle_timestamp_seconds",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
	if strings.Contains(body, "last_success_timestamp_seconds") {
		t.Fatalf("last success must be absent before any reading")
	}
}

func TestWriteTextfile_BadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.prom")
	if err := WriteTextfile(path, NewSnapshot()); err == nil {
		t.Fatalf("expected error")
	}
}
