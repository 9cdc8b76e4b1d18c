// internal/firmware/variant.go
package firmware

import (
	"fmt"
	"strings"

	"qo100-console/internal/tuner"
)

// Variant identifies which firmware build is on the other end of the
// serial link. The two revisions speak the same line protocol but differ
// in the knobs they expose and in how frequency commands are accepted.
type Variant string

const (
	// VariantRevA is the first SSB build: carrier keying through the tx
	// command, any frequency inside the uplink window, no jitter control
	// and a fixed EQ shelf slope.
	VariantRevA Variant = "rev-a"

	// VariantRevB is the current build: timing jitter and EQ slope
	// controls, frequencies snapped to the 100 Hz synthesizer grid, and
	// carrier keying through cw/stop only.
	VariantRevB Variant = "rev-b"
)

// ParseVariant normalizes and validates a variant name
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantRevA:
		return VariantRevA, nil
	case VariantRevB:
		return VariantRevB, nil
	case "":
		return VariantRevB, nil
	default:
		return "", fmt.Errorf("unknown firmware variant %q", s)
	}
}

func (v Variant) String() string {
	return string(v)
}

// Capabilities lists the variant-specific controls
type Capabilities struct {
	TXSwitch   bool   `json:"tx_switch"`
	Jitter     bool   `json:"jitter"`
	EQSlope    bool   `json:"eq_slope"`
	FreqPolicy string `json:"freq_policy"`
}

// Capabilities reports which controls this variant accepts
func (v Variant) Capabilities() Capabilities {
	switch v {
	case VariantRevA:
		return Capabilities{
			TXSwitch:   true,
			FreqPolicy: tuner.PolicyContinuous.String(),
		}
	default:
		return Capabilities{
			Jitter:     true,
			EQSlope:    true,
			FreqPolicy: tuner.PolicyStepped.String(),
		}
	}
}

// FreqPlan returns the tuning window and snapping policy of the variant
func (v Variant) FreqPlan() tuner.FreqPlan {
	if v == VariantRevA {
		return tuner.ContinuousPlan()
	}
	return tuner.SteppedPlan()
}

// HasParam reports whether the variant understands the named set key
func (v Variant) HasParam(name string) bool {
	p, ok := LookupParam(name)
	if !ok {
		return false
	}
	if p.RevBOnly && v != VariantRevB {
		return false
	}
	return true
}
