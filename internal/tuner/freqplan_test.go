// internal/tuner/freqplan_test.go
package tuner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinuousClamp(t *testing.T) {
	plan := ContinuousPlan()

	tests := []struct {
		name string
		in   int64
		want int64
	}{
		{"below window", 2_399_999_999, 2_400_000_000},
		{"far below", 0, 2_400_000_000},
		{"lower edge", 2_400_000_000, 2_400_000_000},
		{"inside", 2_400_123_456, 2_400_123_456},
		{"odd value kept", 2_400_100_037, 2_400_100_037},
		{"upper edge", 2_400_500_000, 2_400_500_000},
		{"above window", 2_400_500_001, 2_400_500_000},
		{"far above", 2_500_000_000, 2_400_500_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plan.Clamp(tt.in))
		})
	}
}

func TestSteppedClamp(t *testing.T) {
	plan := SteppedPlan()

	tests := []struct {
		name string
		in   int64
		want int64
	}{
		{"below window", 1_000_000, 2_400_000_000},
		{"lower edge", 2_400_000_000, 2_400_000_000},
		{"on grid", 2_400_100_000, 2_400_100_000},
		{"snaps down", 2_400_100_037, 2_400_100_000},
		{"snaps down just under next step", 2_400_100_099, 2_400_100_000},
		{"upper edge", 2_400_500_000, 2_400_500_000},
		{"above window", 9_999_999_999, 2_400_500_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plan.Clamp(tt.in))
		})
	}
}

func TestClampIsTotalAndIdempotent(t *testing.T) {
	inputs := []int64{
		-1, 0, 1, 2_399_999_999, 2_400_000_000, 2_400_000_001,
		2_400_250_050, 2_400_499_999, 2_400_500_000, 2_400_500_100,
		3_000_000_000,
	}

	for _, plan := range []FreqPlan{ContinuousPlan(), SteppedPlan()} {
		for _, in := range inputs {
			out := plan.Clamp(in)

			assert.GreaterOrEqual(t, out, plan.Min)
			assert.LessOrEqual(t, out, plan.Max)
			assert.Equal(t, out, plan.Clamp(out), "clamp must be idempotent for %d", in)
			assert.True(t, plan.Accepts(out))

			if plan.Policy == PolicyStepped {
				assert.Zero(t, (out-plan.Min)%plan.Step, "result must sit on the step grid for %d", in)
			}
		}
	}
}

func TestDownlinkTranslation(t *testing.T) {
	assert.Equal(t, int64(10_489_500_000), Downlink(2_400_000_000))
	assert.Equal(t, int64(10_489_750_000), Downlink(2_400_250_000))
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "continuous", PolicyContinuous.String())
	assert.Equal(t, "stepped", PolicyStepped.String())
}
