// internal/poller/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/goburrow/modbus"
)

// Config is the fixed serial line setup shared by every port.
type Config struct {
	BaudRate int
	DataBits int
	Parity   string
	StopBits int
	Timeout  time.Duration

	// Logger receives goburrow frame traces. Nil disables tracing.
	Logger *log.Logger
}

// handler is the part of *modbus.RTUClientHandler a session needs.
type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// HandlerFactory builds an unconnected handler for one port and slave.
type HandlerFactory func(port string, slaveID uint8, cfg Config) handler

// Transport opens Modbus RTU sessions on serial ports.
type Transport struct {
	cfg        Config
	newHandler HandlerFactory
	newClient  func(modbus.ClientHandler) modbus.Client
}

// New creates an RTU transport. Nothing is opened until Open.
func New(cfg Config) (*Transport, error) {
	if cfg.BaudRate <= 0 {
		return nil, errors.New("modbus transport: baud rate required")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("modbus transport: timeout required")
	}
	return &Transport{
		cfg:        cfg,
		newHandler: rtuHandler,
		newClient:  modbus.NewClient,
	}, nil
}

func rtuHandler(port string, slaveID uint8, cfg Config) handler {
	h := modbus.NewRTUClientHandler(port)
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.Parity = cfg.Parity
	h.StopBits = cfg.StopBits
	h.SlaveId = slaveID
	h.Timeout = cfg.Timeout
	h.Logger = cfg.Logger
	return h
}

// Open connects the serial port for one slave id. ONE attempt per call.
func (t *Transport) Open(ctx context.Context, port string, slaveID uint8) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := t.newHandler(port, slaveID, t.cfg)
	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus rtu: connect %s slave=%d: %w", port, slaveID, err)
	}

	return &Session{
		handler: h,
		client:  t.newClient(h),
	}, nil
}

// Session is one connected RTU handler.
type Session struct {
	handler handler
	client  modbus.Client
}

func (s *Session) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	raw, err := s.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		var mbErr *modbus.ModbusError
		if errors.As(err, &mbErr) {
			return nil, &Exception{Function: mbErr.FunctionCode, ExceptionCode: mbErr.ExceptionCode, err: mbErr}
		}
		return nil, err
	}
	if len(raw)%2 != 0 {
		return nil, errors.New("modbus: read-registers byte count not even")
	}
	return unpackRegisters(raw), nil
}

func (s *Session) Close() error {
	if s == nil || s.handler == nil {
		return nil
	}
	return s.handler.Close()
}

// Exception is a Modbus exception response from the slave.
type Exception struct {
	Function      byte
	ExceptionCode byte
	err           error
}

func (e *Exception) Error() string { return e.err.Error() }
func (e *Exception) Unwrap() error { return e.err }

// Code exposes the exception code to poller error classification.
func (e *Exception) Code() uint16 { return uint16(e.ExceptionCode) }

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
