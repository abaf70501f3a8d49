// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/modbus-datalogger/internal/record"
)

// Session is one open Modbus-RTU link addressed at a single slave.
type Session interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	Close() error
}

// Transport opens sessions. One attempt per call, no retries.
type Transport interface {
	Open(ctx context.Context, port string, slaveID uint8) (Session, error)
}

// Discoverer lists candidate serial ports.
type Discoverer interface {
	Ports(ctx context.Context) ([]string, error)
}

// Decoder turns a raw register block into a reading.
type Decoder interface {
	Decode(block []uint16, slaveID, port string) (record.Reading, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	SlaveIDs []uint8
	Address  uint16
	Quantity uint16
	Now      func() time.Time
}

// Poller walks ports and slave ids in order. Sequential, no overlap.
type Poller struct {
	cfg       Config
	discover  Discoverer
	transport Transport
	decoder   Decoder
	log       logrus.FieldLogger
}

// New creates a poller with immutable config.
func New(cfg Config, d Discoverer, tr Transport, dec Decoder, log logrus.FieldLogger) (*Poller, error) {
	if len(cfg.SlaveIDs) == 0 {
		return nil, errors.New("poller: at least one slave id required")
	}
	if cfg.Quantity == 0 {
		return nil, errors.New("poller: quantity must be > 0")
	}
	if d == nil || tr == nil || dec == nil {
		return nil, errors.New("poller: discoverer, transport and decoder are required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Poller{cfg: cfg, discover: d, transport: tr, decoder: dec, log: log}, nil
}

// PollOnce performs exactly one poll cycle across all discovered ports.
// It always returns at least one outcome unless ctx is done.
func (p *Poller) PollOnce(ctx context.Context) Cycle {
	c := Cycle{
		ID:      uuid.NewString(),
		Started: p.cfg.Now(),
	}
	log := p.log.WithField("cycle", c.ID)

	if ctx.Err() != nil {
		return c
	}

	ports, err := p.discover.Ports(ctx)
	if err != nil {
		log.WithError(err).Warn("port discovery failed")
		c.Outcomes = append(c.Outcomes, Outcome{
			Kind:   KindComportIssue,
			At:     p.cfg.Now(),
			Detail: err.Error(),
			Err:    err,
		})
		return c
	}
	if len(ports) == 0 {
		log.Warn("serial comport list is empty")
		c.Outcomes = append(c.Outcomes, Outcome{
			Kind:   KindComportIssue,
			At:     p.cfg.Now(),
			Detail: "serial comport list is empty",
		})
		return c
	}

	for _, port := range ports {
		if ctx.Err() != nil {
			log.WithError(ctx.Err()).Info("cycle interrupted")
			break
		}
		o := p.PollPort(ctx, port)
		log.WithFields(logrus.Fields{
			"port":  o.Port,
			"slave": o.SlaveID,
			"kind":  o.Kind.String(),
		}).Debug("port polled")
		c.Outcomes = append(c.Outcomes, o)
	}

	return c
}

// PollPort tries each slave id until a session opens, then reads the
// register block once through that session.
func (p *Poller) PollPort(ctx context.Context, port string) Outcome {
	log := p.log.WithField("port", port)

	var lastErr error
	for _, id := range p.cfg.SlaveIDs {
		sess, err := p.transport.Open(ctx, port, id)
		if err != nil {
			log.WithError(err).WithField("slave", id).Debug("open failed")
			lastErr = err
			continue
		}
		return p.read(sess, port, id)
	}

	detail := "could not connect to the Modbus slave"
	if lastErr != nil {
		detail = fmt.Sprintf("%s: %v", detail, lastErr)
	}
	log.Warn(detail)

	return Outcome{
		Kind:   KindConnectionError,
		At:     p.cfg.Now(),
		Port:   port,
		Detail: detail,
		Err:    lastErr,
	}
}

func (p *Poller) read(sess Session, port string, id uint8) Outcome {
	slave := strconv.Itoa(int(id))
	log := p.log.WithFields(logrus.Fields{"port": port, "slave": slave})

	defer func() {
		if err := sess.Close(); err != nil {
			log.WithError(err).Debug("session close failed")
		}
	}()

	res := Outcome{
		At:      p.cfg.Now(),
		Port:    port,
		SlaveID: slave,
	}

	regs, err := sess.ReadHoldingRegisters(p.cfg.Address, p.cfg.Quantity)
	if err != nil {
		log.WithError(err).Warn("read holding registers failed")
		res.Kind = KindFault
		res.Detail = err.Error()
		res.RawErrorCode = errorCode(err)
		res.Err = err
		return res
	}

	reading, err := p.decoder.Decode(regs, slave, port)
	if err != nil {
		log.WithError(err).Error("register block rejected")
		res.Kind = KindDecodeError
		res.Detail = err.Error()
		res.Err = err
		return res
	}

	res.Kind = KindSuccess
	res.Reading = reading
	return res
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return 1
}
