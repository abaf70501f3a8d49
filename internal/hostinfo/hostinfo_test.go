// internal/hostinfo/hostinfo_test.go
package hostinfo

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/tamzrod/modbus-datalogger/internal/record"
)

func TestSystem_Describe(t *testing.T) {
	info, err := System{}.Describe()
	if err != nil {
		t.Fatalf("Describe err=%v", err)
	}
	if info.Hostname == "" {
		t.Fatalf("empty hostname")
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Fatalf("platform=%q", info.Platform)
	}
	if info.Addresses == nil {
		t.Fatalf("addresses must be non-nil so it encodes as []")
	}
	for _, a := range info.Addresses {
		if !strings.Contains(a, "=") {
			t.Fatalf("address %q not in iface=ip form", a)
		}
	}
}

func TestStatic(t *testing.T) {
	want := &record.HostInfo{Hostname: "edge-01"}
	got, err := Static{Info: want}.Describe()
	if err != nil || got != want {
		t.Fatalf("got=%v err=%v", got, err)
	}

	boom := errors.New("boom")
	if _, err := (Static{Err: boom}).Describe(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestNone(t *testing.T) {
	got, err := None{}.Describe()
	if got != nil || err != nil {
		t.Fatalf("got=%v err=%v", got, err)
	}
}
