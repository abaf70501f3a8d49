// internal/config/config.go
package config

type Config struct {
	Device   DeviceConfig   `yaml:"device" toml:"device"`
	Serial   SerialConfig   `yaml:"serial" toml:"serial"`
	Read     ReadConfig     `yaml:"read" toml:"read"`
	Decode   DecodeConfig   `yaml:"decode" toml:"decode"`
	Log      LogConfig      `yaml:"log" toml:"log"`
	Poll     PollConfig     `yaml:"poll" toml:"poll"`
	HostInfo HostInfoConfig `yaml:"host_info" toml:"host_info"`
	Metrics  MetricsConfig  `yaml:"metrics" toml:"metrics"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	// Name is matched against the USB product string of each serial port.
	Name string `yaml:"name" toml:"name"`

	// Ports bypasses discovery when non-empty.
	Ports []string `yaml:"ports" toml:"ports"`

	// SlaveIDs are tried in order; the first one that opens wins.
	SlaveIDs []uint8 `yaml:"slave_ids" toml:"slave_ids"`
}

// ---- SERIAL LINE ----

type SerialConfig struct {
	BaudRate  int    `yaml:"baud_rate" toml:"baud_rate"`
	DataBits  int    `yaml:"data_bits" toml:"data_bits"`
	Parity    string `yaml:"parity" toml:"parity"`
	StopBits  int    `yaml:"stop_bits" toml:"stop_bits"`
	TimeoutMs int    `yaml:"timeout_ms" toml:"timeout_ms"`
}

// ---- READ GEOMETRY ----

type ReadConfig struct {
	Address  uint16 `yaml:"address" toml:"address"`
	Quantity uint16 `yaml:"quantity" toml:"quantity"`
}

// ---- DECODE ----

type DecodeConfig struct {
	Analog string `yaml:"analog" toml:"analog"` // "scaled" | "raw"
}

// ---- LOG FILES ----

type LogConfig struct {
	Dir       string `yaml:"dir" toml:"dir"`
	DataFile  string `yaml:"data_file" toml:"data_file"`
	ErrorFile string `yaml:"error_file" toml:"error_file"`
	Level     string `yaml:"level" toml:"level"`
}

// ---- POLL ----

type PollConfig struct {
	// IntervalMs = 0 runs a single cycle and exits.
	IntervalMs int `yaml:"interval_ms" toml:"interval_ms"`
}

// ---- HOST INFO ----

type HostInfoConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// ---- METRICS ----

type MetricsConfig struct {
	// Textfile is a node_exporter textfile collector path. Empty disables export.
	Textfile string `yaml:"textfile" toml:"textfile"`
}
