package planner

import "fmt"

// Bias is the rotational sense used to pick which side of an obstacle a
// detour passes on.
type Bias int

const (
	// BiasLeft rotates the approach direction counterclockwise
	BiasLeft Bias = iota
	// BiasRight rotates the approach direction clockwise
	BiasRight
)

// Biases lists both detour directions in evaluation order
var Biases = []Bias{BiasLeft, BiasRight}

// Sign is +1 for counterclockwise and -1 for clockwise rotation
func (b Bias) Sign() float64 {
	if b == BiasRight {
		return -1
	}
	return 1
}

func (b Bias) String() string {
	switch b {
	case BiasLeft:
		return "left"
	case BiasRight:
		return "right"
	}
	return fmt.Sprintf("Bias(%d)", int(b))
}

// MarshalText encodes the bias by name
func (b Bias) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes "left" or "right"
func (b *Bias) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*b = BiasLeft
	case "right":
		*b = BiasRight
	default:
		return fmt.Errorf("unknown bias %q", text)
	}
	return nil
}
