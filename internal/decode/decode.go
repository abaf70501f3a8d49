// internal/decode/decode.go
package decode

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/modbus-datalogger/internal/record"
)

// Register block layout. Fixed by the I/O module firmware.
const (
	BlockSize = 12

	packedStart = 0
	packedEnd   = 6

	analogStart = 6
	analogEnd   = 10

	ledRegister   = 10
	relayRegister = 11

	channels = 4
)

// ErrBlockLength is returned when the transport hands over a block that is
// not exactly BlockSize registers long.
var ErrBlockLength = errors.New("decode: register block must hold 12 registers")

// AnalogPolicy selects how analog registers are exposed.
type AnalogPolicy string

const (
	// AnalogScaled divides each analog register by 10.
	AnalogScaled AnalogPolicy = "scaled"
	// AnalogRaw passes analog registers through unchanged.
	AnalogRaw AnalogPolicy = "raw"
)

// Options tunes a Decoder. Zero value is usable.
type Options struct {
	Analog AnalogPolicy
	Now    func() time.Time
}

// Decoder turns raw register blocks into readings.
// It holds no state besides its options.
type Decoder struct {
	analog AnalogPolicy
	now    func() time.Time
}

// New builds a Decoder. Missing options fall back to scaled analog values
// and the wall clock.
func New(opts Options) *Decoder {
	d := &Decoder{analog: opts.Analog, now: opts.Now}
	if d.analog == "" {
		d.analog = AnalogScaled
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Decode maps a 12-register block into a Reading.
//
// Byte layout of registers 0..5 (hi byte first):
//
//	digital     = bytes 0..3  (registers 0,1)
//	temperature = bytes 4..7  (registers 2,3)
//	humidity    = bytes 8..11 (registers 4,5)
func (d *Decoder) Decode(block []uint16, slaveID, port string) (record.Reading, error) {
	if len(block) != BlockSize {
		return record.Reading{}, fmt.Errorf("%w: got %d", ErrBlockLength, len(block))
	}

	packed := make([]int, 0, 2*(packedEnd-packedStart))
	for _, v := range block[packedStart:packedEnd] {
		hi, lo := SplitBytes(v)
		packed = append(packed, int(hi), int(lo))
	}

	analog := make([]float64, 0, analogEnd-analogStart)
	for _, v := range block[analogStart:analogEnd] {
		analog = append(analog, d.analogValue(v))
	}

	return record.Reading{
		Timestamp:   d.now().Truncate(time.Minute).Unix(),
		SlaveID:     slaveID,
		PortName:    port,
		Digital:     packed[0:channels],
		Temperature: packed[channels : 2*channels],
		Humidity:    packed[2*channels : 3*channels],
		Analog:      analog,
		Output: record.Output{
			Led:   Bits(block[ledRegister]),
			Relay: Bits(block[relayRegister]),
		},
	}, nil
}

func (d *Decoder) analogValue(v uint16) float64 {
	if d.analog == AnalogRaw {
		return float64(v)
	}
	return float64(v) / 10
}
