// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MaxTimeoutMs bounds the serial read timeout.
const MaxTimeoutMs = 10000

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if cfg.Device.Name == "" && len(cfg.Device.Ports) == 0 {
		return fmt.Errorf("device: name is required when no ports are listed")
	}

	seen := make(map[uint8]struct{}, len(cfg.Device.SlaveIDs))
	for _, id := range cfg.Device.SlaveIDs {
		if id < 1 || id > 247 {
			return fmt.Errorf("device: slave id %d out of range 1..247", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("device: slave id %d listed twice", id)
		}
		seen[id] = struct{}{}
	}

	// ------------------------------------------------------------
	// SERIAL LINE
	// ------------------------------------------------------------

	s := cfg.Serial
	if s.BaudRate <= 0 {
		return fmt.Errorf("serial: baud_rate must be > 0")
	}
	if s.DataBits < 5 || s.DataBits > 8 {
		return fmt.Errorf("serial: data_bits %d out of range 5..8", s.DataBits)
	}
	switch s.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("serial: parity %q must be N, E or O", s.Parity)
	}
	if s.StopBits != 1 && s.StopBits != 2 {
		return fmt.Errorf("serial: stop_bits %d must be 1 or 2", s.StopBits)
	}
	if s.TimeoutMs <= 0 || s.TimeoutMs > MaxTimeoutMs {
		return fmt.Errorf("serial: timeout_ms %d out of range 1..%d", s.TimeoutMs, MaxTimeoutMs)
	}

	// ------------------------------------------------------------
	// READ GEOMETRY (decoder contract is exactly 12 registers)
	// ------------------------------------------------------------

	if cfg.Read.Quantity != DefaultReadQuantity {
		return fmt.Errorf("read: quantity must be %d, got %d", DefaultReadQuantity, cfg.Read.Quantity)
	}
	if uint32(cfg.Read.Address)+uint32(cfg.Read.Quantity) > 0x10000 {
		return fmt.Errorf("read: address %d + quantity %d exceeds register space", cfg.Read.Address, cfg.Read.Quantity)
	}

	switch cfg.Decode.Analog {
	case "scaled", "raw":
	default:
		return fmt.Errorf("decode: analog policy %q must be scaled or raw", cfg.Decode.Analog)
	}

	// ------------------------------------------------------------
	// LOG FILES
	// ------------------------------------------------------------

	if cfg.Log.Dir == "" {
		return fmt.Errorf("log: dir is required")
	}
	if cfg.Log.DataFile == cfg.Log.ErrorFile {
		return fmt.Errorf("log: data_file and error_file must differ (both %q)", cfg.Log.DataFile)
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if cfg.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll: interval_ms must be >= 0")
	}

	return nil
}
