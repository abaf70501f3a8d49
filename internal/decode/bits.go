// internal/decode/bits.go
package decode

// SplitBytes returns the high and low byte of a register.
func SplitBytes(v uint16) (hi, lo uint8) {
	return uint8((v >> 8) & 0xFF), uint8(v & 0xFF)
}

// Bits expands a register into 16 ints (0 or 1), most significant bit first.
func Bits(v uint16) []int {
	out := make([]int, 16)
	for i := 0; i < 16; i++ {
		if v&(1<<(15-i)) != 0 {
			out[i] = 1
		}
	}
	return out
}

// BitsValue is the inverse of Bits. Non-zero entries count as set.
func BitsValue(bits []int) uint16 {
	var v uint16
	for _, b := range bits {
		v <<= 1
		if b != 0 {
			v |= 1
		}
	}
	return v
}
