// cmd/modbus-logger/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/modbus-datalogger/internal/config"
	"github.com/tamzrod/modbus-datalogger/internal/hostinfo"
	"github.com/tamzrod/modbus-datalogger/internal/poller"
	"github.com/tamzrod/modbus-datalogger/internal/status"
	"github.com/tamzrod/modbus-datalogger/internal/writer"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if len(os.Args) > 2 {
		logger.Fatal("usage: modbus-logger [config.yaml|config.toml]")
	}

	var cfgPath string
	if len(os.Args) == 2 {
		cfgPath = os.Args[1]
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("config load failed: %v", err)
	}

	config.Normalize(cfg)

	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("config validation failed: %v", err)
	}

	level, _ := logrus.ParseLevel(cfg.Log.Level)
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build pipeline
	// --------------------

	// ---- poller ----
	p, closePoller, err := poller.Build(cfg, logger)
	if err != nil {
		logger.Fatalf("poller build failed: %v", err)
	}
	defer closePoller()

	// ---- writer ----
	plan, err := writer.BuildPlan(cfg.Log)
	if err != nil {
		logger.Fatalf("writer plan failed: %v", err)
	}

	var host hostinfo.Provider = hostinfo.None{}
	if cfg.HostInfo.Enabled {
		host = hostinfo.System{}
	}

	w, err := writer.BuildLogWriter(plan, host, logger)
	if err != nil {
		logger.Fatalf("writer build failed: %v", err)
	}

	// ---- channel between poller and writer ----
	out := make(chan poller.Cycle)
	interval := time.Duration(cfg.Poll.IntervalMs) * time.Millisecond

	go p.Run(ctx, interval, out)

	snap := status.NewSnapshot()

	for c := range out {
		if err := w.Write(c); err != nil {
			logger.WithError(err).Error("writer error")
		}

		snap.Observe(c, time.Now())

		logger.WithFields(logrus.Fields{
			"cycle":    c.ID,
			"outcomes": len(c.Outcomes),
			"readings": snap.Readings,
			"health":   snap.Health,
		}).Info("poll cycle done")

		if cfg.Metrics.Textfile != "" {
			if err := status.WriteTextfile(cfg.Metrics.Textfile, snap); err != nil {
				logger.WithError(err).Warn("metrics export failed")
			}
		}
	}
}
