// internal/writer/types.go
package writer

import "github.com/tamzrod/modbus-datalogger/internal/poller"

// Plan names the two log files of one logger instance.
type Plan struct {
	Dir       string
	DataFile  string // successful readings
	ErrorFile string // every other outcome kind
}

// Writer persists the outcomes of a poll cycle.
type Writer interface {
	Write(c poller.Cycle) error
}

// appender is the exact contract the writer uses for storage.
type appender interface {
	Append(v any) error
}
