// internal/writer/builder.go
package writer

import (
	"errors"

	"github.com/sirupsen/logrus"

	cfg "github.com/tamzrod/modbus-datalogger/internal/config"
	"github.com/tamzrod/modbus-datalogger/internal/hostinfo"
	"github.com/tamzrod/modbus-datalogger/internal/writer/jsonfile"
)

// BuildPlan converts log config into a Plan.
// Assumes config has already passed validation.
func BuildPlan(l cfg.LogConfig) (Plan, error) {
	if l.Dir == "" {
		return Plan{}, errors.New("writer: log dir required")
	}
	return Plan{
		Dir:       l.Dir,
		DataFile:  l.DataFile,
		ErrorFile: l.ErrorFile,
	}, nil
}

// BuildLogWriter opens both JSON logs. A directory that cannot be created
// is logged, not fatal: the writer stays usable and every append retries.
func BuildLogWriter(plan Plan, host hostinfo.Provider, log logrus.FieldLogger) (Writer, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	data, err := jsonfile.Open(plan.Dir, plan.DataFile)
	if data == nil {
		return nil, err
	}
	if err != nil {
		log.WithError(err).Error("log directory unavailable")
	}

	errs, err := jsonfile.Open(plan.Dir, plan.ErrorFile)
	if errs == nil {
		return nil, err
	}

	return New(data, errs, host, log), nil
}
