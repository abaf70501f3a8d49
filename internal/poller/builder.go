// internal/poller/builder.go
package poller

import (
	"context"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	cfg "github.com/tamzrod/modbus-datalogger/internal/config"
	"github.com/tamzrod/modbus-datalogger/internal/decode"
	"github.com/tamzrod/modbus-datalogger/internal/discovery"
	pmodbus "github.com/tamzrod/modbus-datalogger/internal/poller/modbus"
)

// Build constructs a Poller from validated config and wires the RTU
// transport, port discovery and decoder.
// Sessions are opened per port and closed after one read.
// The returned closer releases the frame-trace pipe, if any.
func Build(c *cfg.Config, logger *logrus.Logger) (*Poller, func() error, error) {
	closer := func() error { return nil }

	// goburrow traces every frame through a *log.Logger; bridge it to logrus
	// only when trace output would be shown anyway.
	var trace *log.Logger
	if logger.IsLevelEnabled(logrus.TraceLevel) {
		w := logger.WriterLevel(logrus.TraceLevel)
		trace = log.New(w, "", 0)
		closer = w.Close
	}

	tr, err := pmodbus.New(pmodbus.Config{
		BaudRate: c.Serial.BaudRate,
		DataBits: c.Serial.DataBits,
		Parity:   c.Serial.Parity,
		StopBits: c.Serial.StopBits,
		Timeout:  time.Duration(c.Serial.TimeoutMs) * time.Millisecond,
		Logger:   trace,
	})
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	transport := TransportFunc(func(ctx context.Context, port string, slaveID uint8) (Session, error) {
		s, err := tr.Open(ctx, port, slaveID)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	var disc Discoverer
	if len(c.Device.Ports) > 0 {
		disc = discovery.Static(c.Device.Ports)
	} else {
		disc = discovery.New(c.Device.Name)
	}

	dec := decode.New(decode.Options{Analog: decode.AnalogPolicy(c.Decode.Analog)})

	p, err := New(
		Config{
			SlaveIDs: c.Device.SlaveIDs,
			Address:  c.Read.Address,
			Quantity: c.Read.Quantity,
		},
		disc,
		transport,
		dec,
		logger,
	)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	return p, closer, nil
}
