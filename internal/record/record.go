// internal/record/record.go
package record

// Records are persisted with encoding/json, which emits struct fields in
// declaration order. Fields below are declared in sorted key order so the
// log files keep a stable, sorted layout.

// HostInfo describes the machine that produced a record.
type HostInfo struct {
	Addresses []string `json:"addresses"`
	Hostname  string   `json:"hostname"`
	Platform  string   `json:"platform"`
}

// Output holds the led (register 10) and relay (register 11) channels,
// most significant bit first.
type Output struct {
	Led   []int `json:"led"`
	Relay []int `json:"relay"`
}

// Reading is one decoded 12-register block.
type Reading struct {
	Analog      []float64 `json:"analog"`
	CycleID     string    `json:"cycleId,omitempty"`
	Digital     []int     `json:"digital"`
	HostInfo    *HostInfo `json:"hostInfo,omitempty"`
	Humidity    []int     `json:"humidity"`
	Output      Output    `json:"output"`
	PortName    string    `json:"portName"`
	SlaveID     string    `json:"slaveId"`
	Temperature []int     `json:"temperature"`
	Timestamp   int64     `json:"timestamp"`
}

// ErrorRecord is written to the error log. Exactly one of the detail
// fields (ComportIssue, DecodeError, Fault, ModbusConnectionError) is set.
type ErrorRecord struct {
	ComportIssue          string    `json:"comport_issue,omitempty"`
	CycleID               string    `json:"cycleId,omitempty"`
	DecodeError           string    `json:"decode_error,omitempty"`
	Fault                 string    `json:"fault,omitempty"`
	HostInfo              *HostInfo `json:"hostInfo,omitempty"`
	ModbusConnectionError string    `json:"modbus_connection_error,omitempty"`
	PortName              string    `json:"portName,omitempty"`
	SlaveID               string    `json:"slaveId,omitempty"`
	Timestamp             int64     `json:"timestamp"`
}
