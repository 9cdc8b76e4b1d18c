// internal/tuner/freqplan.go
package tuner

// QO-100 narrowband uplink window and the transponder translation to the
// 10489.5 MHz downlink.
const (
	UplinkMinHz    int64 = 2_400_000_000
	UplinkMaxHz    int64 = 2_400_500_000
	UplinkStepHz   int64 = 100
	DownlinkOffset int64 = 8_089_500_000
)

// Policy selects how requested frequencies map onto the firmware's
// accepted values.
type Policy int

const (
	// PolicyContinuous accepts any frequency inside the window.
	PolicyContinuous Policy = iota
	// PolicyStepped additionally snaps down to the synthesizer step grid.
	PolicyStepped
)

func (p Policy) String() string {
	switch p {
	case PolicyContinuous:
		return "continuous"
	case PolicyStepped:
		return "stepped"
	default:
		return "unknown"
	}
}

// FreqPlan is the tuning window of one firmware build. Clamp is total and
// idempotent: every input maps to an accepted frequency, and accepted
// frequencies map to themselves.
type FreqPlan struct {
	Min    int64  `json:"min_hz"`
	Max    int64  `json:"max_hz"`
	Step   int64  `json:"step_hz"`
	Policy Policy `json:"-"`
}

// ContinuousPlan returns the narrowband window without step snapping
func ContinuousPlan() FreqPlan {
	return FreqPlan{Min: UplinkMinHz, Max: UplinkMaxHz, Step: 1, Policy: PolicyContinuous}
}

// SteppedPlan returns the narrowband window snapped to the 100 Hz grid
func SteppedPlan() FreqPlan {
	return FreqPlan{Min: UplinkMinHz, Max: UplinkMaxHz, Step: UplinkStepHz, Policy: PolicyStepped}
}

// Clamp maps any requested frequency to the nearest accepted one: out of
// window pulls to the edge, and a stepped plan then snaps down onto the
// grid anchored at Min.
func (p FreqPlan) Clamp(hz int64) int64 {
	if hz < p.Min {
		hz = p.Min
	}
	if hz > p.Max {
		hz = p.Max
	}
	if p.Policy == PolicyStepped && p.Step > 1 {
		hz = p.Min + ((hz-p.Min)/p.Step)*p.Step
	}
	return hz
}

// Accepts reports whether hz is already an accepted frequency of the plan
func (p FreqPlan) Accepts(hz int64) bool {
	return p.Clamp(hz) == hz
}

// Downlink translates an uplink frequency to the frequency a receiver
// hears on the transponder output.
func Downlink(uplinkHz int64) int64 {
	return uplinkHz + DownlinkOffset
}
