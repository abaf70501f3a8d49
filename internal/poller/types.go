// internal/poller/types.go
package poller

import (
	"context"
	"time"

	"github.com/tamzrod/modbus-datalogger/internal/record"
)

// Kind tags an Outcome.
type Kind int

const (
	KindSuccess Kind = iota
	KindComportIssue
	KindConnectionError
	KindFault
	KindDecodeError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindComportIssue:
		return "comport_issue"
	case KindConnectionError:
		return "modbus_connection_error"
	case KindFault:
		return "fault"
	case KindDecodeError:
		return "decode_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of polling one port, or of a discovery failure.
// Reading is set only for KindSuccess; Detail only for the error kinds.
type Outcome struct {
	Kind    Kind
	At      time.Time
	Port    string // empty for KindComportIssue
	SlaveID string // empty when no session was opened

	Reading record.Reading
	Detail  string

	// RawErrorCode is the Modbus exception code when the device sent one.
	// 0 otherwise; 1 for faults that carry no code.
	RawErrorCode uint16

	Err error
}

// OK reports whether the outcome carries a reading.
func (o Outcome) OK() bool { return o.Kind == KindSuccess }

// Cycle is everything produced by one pass over the discovered ports.
type Cycle struct {
	ID       string
	Started  time.Time
	Outcomes []Outcome
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, port string, slaveID uint8) (Session, error)

func (f TransportFunc) Open(ctx context.Context, port string, slaveID uint8) (Session, error) {
	return f(ctx, port, slaveID)
}
