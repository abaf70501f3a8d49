// internal/config/normalize.go
package config

import "strings"

// Defaults match the STM32-based I/O module firmware.
const (
	DefaultDeviceName = "STM32 Virtual ComPort"
	DefaultBaudRate   = 9600
	DefaultDataBits   = 8
	DefaultParity     = "N"
	DefaultStopBits   = 1
	DefaultTimeoutMs  = 3000

	DefaultReadAddress  uint16 = 0x28
	DefaultReadQuantity uint16 = 0x0C

	DefaultAnalog = "scaled"

	DefaultLogDir    = "logs"
	DefaultDataFile  = "modbus_data.json"
	DefaultErrorFile = "errors.json"
	DefaultLogLevel  = "info"
)

// DefaultSlaveIDs is the ordered set of logical addresses tried per port.
func DefaultSlaveIDs() []uint8 { return []uint8{1, 2, 3} }

// Default returns a fully populated configuration.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Name:     DefaultDeviceName,
			SlaveIDs: DefaultSlaveIDs(),
		},
		Serial: SerialConfig{
			BaudRate:  DefaultBaudRate,
			DataBits:  DefaultDataBits,
			Parity:    DefaultParity,
			StopBits:  DefaultStopBits,
			TimeoutMs: DefaultTimeoutMs,
		},
		Read: ReadConfig{
			Address:  DefaultReadAddress,
			Quantity: DefaultReadQuantity,
		},
		Decode: DecodeConfig{Analog: DefaultAnalog},
		Log: LogConfig{
			Dir:       DefaultLogDir,
			DataFile:  DefaultDataFile,
			ErrorFile: DefaultErrorFile,
			Level:     DefaultLogLevel,
		},
		HostInfo: HostInfoConfig{Enabled: true},
	}
}

// Normalize fills fields a config file zeroed out explicitly and
// canonicalizes case. It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if len(cfg.Device.SlaveIDs) == 0 {
		cfg.Device.SlaveIDs = DefaultSlaveIDs()
	}
	cfg.Device.Ports = trimEmpty(cfg.Device.Ports)

	cfg.Serial.Parity = strings.ToUpper(strings.TrimSpace(cfg.Serial.Parity))
	if cfg.Serial.Parity == "" {
		cfg.Serial.Parity = DefaultParity
	}
	if cfg.Serial.TimeoutMs == 0 {
		cfg.Serial.TimeoutMs = DefaultTimeoutMs
	}

	cfg.Decode.Analog = strings.ToLower(strings.TrimSpace(cfg.Decode.Analog))
	if cfg.Decode.Analog == "" {
		cfg.Decode.Analog = DefaultAnalog
	}

	if cfg.Log.DataFile == "" {
		cfg.Log.DataFile = DefaultDataFile
	}
	if cfg.Log.ErrorFile == "" {
		cfg.Log.ErrorFile = DefaultErrorFile
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

func trimEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
