// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/modbus-datalogger/internal/hostinfo"
	"github.com/tamzrod/modbus-datalogger/internal/poller"
	"github.com/tamzrod/modbus-datalogger/internal/record"
)

type logWriter struct {
	data appender
	errs appender
	host hostinfo.Provider
	log  logrus.FieldLogger
}

// New routes successful readings to data and every other outcome to errs.
func New(data, errs appender, host hostinfo.Provider, log logrus.FieldLogger) Writer {
	if host == nil {
		host = hostinfo.None{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &logWriter{data: data, errs: errs, host: host, log: log}
}

// Write appends one record per outcome. A failed append is reported and
// the remaining outcomes are still written.
func (w *logWriter) Write(c poller.Cycle) error {
	host, err := w.host.Describe()
	if err != nil {
		w.log.WithError(err).Warn("host info unavailable")
		host = nil
	}

	var errs []string

	for _, o := range c.Outcomes {
		var (
			dst  appender
			rec  any
			name string
		)

		if o.OK() {
			r := o.Reading
			r.CycleID = c.ID
			r.HostInfo = host
			dst, rec, name = w.data, r, "data"
		} else {
			r, err := errorRecord(o)
			if err != nil {
				errs = append(errs, err.Error())
				continue
			}
			r.CycleID = c.ID
			r.HostInfo = host
			dst, rec, name = w.errs, r, "error"
		}

		if err := dst.Append(rec); err != nil {
			w.log.WithError(err).WithFields(logrus.Fields{
				"port": o.Port,
				"kind": o.Kind.String(),
			}).Errorf("%s log append failed", name)
			errs = append(errs, fmt.Sprintf(
				"writer: %s log port=%s kind=%s err=%v",
				name, o.Port, o.Kind, err,
			))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}

// errorRecord maps a non-success outcome to its ErrorRecord variant.
func errorRecord(o poller.Outcome) (record.ErrorRecord, error) {
	r := record.ErrorRecord{
		Timestamp: o.At.Truncate(time.Minute).Unix(),
		PortName:  o.Port,
		SlaveID:   o.SlaveID,
	}

	switch o.Kind {
	case poller.KindComportIssue:
		r.ComportIssue = o.Detail
	case poller.KindConnectionError:
		r.ModbusConnectionError = o.Detail
	case poller.KindFault:
		r.Fault = o.Detail
	case poller.KindDecodeError:
		r.DecodeError = o.Detail
	default:
		return r, fmt.Errorf("writer: no error record for kind %s", o.Kind)
	}
	return r, nil
}
