// internal/hostinfo/hostinfo.go
package hostinfo

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"sort"

	"github.com/tamzrod/modbus-datalogger/internal/record"
)

// Provider describes the host a record was produced on.
type Provider interface {
	Describe() (*record.HostInfo, error)
}

// System reads hostname, interface addresses and platform from the OS.
type System struct{}

func (System) Describe() (*record.HostInfo, error) {
	name, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostinfo: hostname: %w", err)
	}

	addrs, err := interfaceAddrs()
	if err != nil {
		return nil, err
	}

	return &record.HostInfo{
		Hostname:  name,
		Addresses: addrs,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}, nil
}

// interfaceAddrs lists addresses of up, non-loopback interfaces as
// "iface=ip", sorted.
func interfaceAddrs() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("hostinfo: interfaces: %w", err)
	}

	out := []string{}
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagUp == 0 || ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := ifc.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ip, _, err := net.ParseCIDR(a.String())
			if err != nil {
				continue
			}
			out = append(out, ifc.Name+"="+ip.String())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Static always returns the same descriptor.
type Static struct {
	Info *record.HostInfo
	Err  error
}

func (s Static) Describe() (*record.HostInfo, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Info, nil
}

// None is used when host info is disabled.
type None struct{}

func (None) Describe() (*record.HostInfo, error) { return nil, nil }
