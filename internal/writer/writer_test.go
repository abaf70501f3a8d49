// internal/writer/writer_test.go
package writer

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	cfg "github.com/tamzrod/modbus-datalogger/internal/config"
	"github.com/tamzrod/modbus-datalogger/internal/hostinfo"
	"github.com/tamzrod/modbus-datalogger/internal/poller"
	"github.com/tamzrod/modbus-datalogger/internal/record"
	"github.com/tamzrod/modbus-datalogger/internal/writer/jsonfile"
)

// ---- fake appender ----

type fakeAppender struct {
	recs []any
	err  error
}

func (f *fakeAppender) Append(v any) error {
	if f.err != nil {
		return f.err
	}
	f.recs = append(f.recs, v)
	return nil
}

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var at = time.Date(2024, 3, 1, 12, 34, 56, 0, time.UTC)

var host = &record.HostInfo{Hostname: "edge-01", Platform: "linux/arm64", Addresses: []string{"eth0=10.0.0.5"}}

// ---- tests ----

func TestWriter_RoutesByKind(t *testing.T) {
	data, errs := &fakeAppender{}, &fakeAppender{}
	w := New(data, errs, hostinfo.Static{Info: host}, quiet())

	c := poller.Cycle{
		ID: "cycle-1",
		Outcomes: []poller.Outcome{
			{Kind: poller.KindSuccess, At: at, Port: "/dev/ttyACM0", SlaveID: "1",
				Reading: record.Reading{PortName: "/dev/ttyACM0", SlaveID: "1", Timestamp: 60}},
			{Kind: poller.KindConnectionError, At: at, Port: "/dev/ttyACM1", Detail: "could not connect"},
			{Kind: poller.KindFault, At: at, Port: "/dev/ttyACM2", SlaveID: "1", Detail: "exception 2"},
			{Kind: poller.KindDecodeError, At: at, Port: "/dev/ttyACM3", SlaveID: "2", Detail: "short block"},
		},
	}

	if err := w.Write(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data.recs) != 1 {
		t.Fatalf("expected 1 data record, got %d", len(data.recs))
	}
	r := data.recs[0].(record.Reading)
	if r.CycleID != "cycle-1" || r.HostInfo != host {
		t.Fatalf("reading not stamped: %+v", r)
	}

	if len(errs.recs) != 3 {
		t.Fatalf("expected 3 error records, got %d", len(errs.recs))
	}
	conn := errs.recs[0].(record.ErrorRecord)
	if conn.ModbusConnectionError != "could not connect" || conn.PortName != "/dev/ttyACM1" {
		t.Fatalf("connection record=%+v", conn)
	}
	if conn.Timestamp != at.Truncate(time.Minute).Unix() {
		t.Fatalf("timestamp=%d", conn.Timestamp)
	}
	if f := errs.recs[1].(record.ErrorRecord); f.Fault != "exception 2" || f.SlaveID != "1" {
		t.Fatalf("fault record=%+v", f)
	}
	if d := errs.recs[2].(record.ErrorRecord); d.DecodeError != "short block" {
		t.Fatalf("decode record=%+v", d)
	}
}

func TestWriter_ComportIssue(t *testing.T) {
	data, errs := &fakeAppender{}, &fakeAppender{}
	w := New(data, errs, nil, quiet())

	err := w.Write(poller.Cycle{Outcomes: []poller.Outcome{
		{Kind: poller.KindComportIssue, At: at, Detail: "serial comport list is empty"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.recs) != 0 || len(errs.recs) != 1 {
		t.Fatalf("data=%d errs=%d", len(data.recs), len(errs.recs))
	}
	r := errs.recs[0].(record.ErrorRecord)
	if r.ComportIssue == "" || r.HostInfo != nil {
		t.Fatalf("record=%+v", r)
	}
}

func TestWriter_HostInfoErrorStillWrites(t *testing.T) {
	errs := &fakeAppender{}
	w := New(&fakeAppender{}, errs, hostinfo.Static{Err: errors.New("no nic")}, quiet())

	err := w.Write(poller.Cycle{Outcomes: []poller.Outcome{
		{Kind: poller.KindFault, At: at, Detail: "timeout"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs.recs) != 1 || errs.recs[0].(record.ErrorRecord).HostInfo != nil {
		t.Fatalf("recs=%+v", errs.recs)
	}
}

func TestWriter_AppendFailureContinues(t *testing.T) {
	data := &fakeAppender{err: errors.New("disk full")}
	errs := &fakeAppender{}
	w := New(data, errs, nil, quiet())

	err := w.Write(poller.Cycle{Outcomes: []poller.Outcome{
		{Kind: poller.KindSuccess, At: at, Port: "a"},
		{Kind: poller.KindFault, At: at, Port: "b", Detail: "x"},
	}})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected aggregated error, got %v", err)
	}
	if len(errs.recs) != 1 {
		t.Fatalf("error log must still be written")
	}
}

func TestWriter_EndToEndFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	plan, err := BuildPlan(cfg.LogConfig{Dir: dir, DataFile: "modbus_data.json", ErrorFile: "errors.json"})
	if err != nil {
		t.Fatalf("BuildPlan err=%v", err)
	}

	w, err := BuildLogWriter(plan, hostinfo.None{}, quiet())
	if err != nil {
		t.Fatalf("BuildLogWriter err=%v", err)
	}

	c := poller.Cycle{ID: "c", Outcomes: []poller.Outcome{
		{Kind: poller.KindSuccess, Reading: record.Reading{
			Timestamp: 1700000040, SlaveID: "1", PortName: "/dev/ttyACM0",
			Digital: []int{1, 2, 3, 4}, Temperature: []int{5, 6, 7, 8}, Humidity: []int{9, 10, 11, 12},
			Analog: []float64{10, 20, 30, 40},
			Output: record.Output{Led: make([]int, 16), Relay: make([]int, 16)},
		}},
		{Kind: poller.KindComportIssue, At: at, Detail: "none"},
	}}
	for i := 0; i < 2; i++ {
		if err := w.Write(c); err != nil {
			t.Fatalf("Write err=%v", err)
		}
	}

	dataFile, _ := jsonfile.Open(dir, "modbus_data.json")
	recs, err := dataFile.Load()
	if err != nil || len(recs) != 2 {
		t.Fatalf("data recs=%d err=%v", len(recs), err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(recs[0], &keys); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"analog", "cycleId", "digital", "humidity", "output", "portName", "slaveId", "temperature", "timestamp"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("missing key %q in %s", k, recs[0])
		}
	}
	if _, ok := keys["hostInfo"]; ok {
		t.Fatalf("hostInfo must be omitted when disabled")
	}

	raw, err := os.ReadFile(filepath.Join(dir, "errors.json"))
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)
	if strings.Index(body, `"comport_issue"`) > strings.Index(body, `"timestamp"`) {
		t.Fatalf("keys not in sorted order:\n%s", body)
	}
	if strings.Count(body, `"comport_issue"`) != 2 {
		t.Fatalf("expected 2 comport records:\n%s", body)
	}
}

func TestBuildPlan_RequiresDir(t *testing.T) {
	if _, err := BuildPlan(cfg.LogConfig{}); err == nil {
		t.Fatalf("expected error")
	}
}
