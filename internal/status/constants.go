// internal/status/constants.go
package status

// ---- HEALTH CODES ----

// HealthUnknown represents a boot state or a cycle that produced nothing.
const HealthUnknown uint16 = 0

// HealthOK represents a cycle where every port returned a reading.
const HealthOK uint16 = 1

// HealthError represents a cycle with at least one error record.
const HealthError uint16 = 2

// ---- METRIC NAMES ----

const namespace = "modbus_logger"
