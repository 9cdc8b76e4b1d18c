// internal/firmware/variant_test.go
package firmware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qo100-console/internal/tuner"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"rev-a", VariantRevA, false},
		{"rev-b", VariantRevB, false},
		{"REV-A", VariantRevA, false},
		{"  rev-b  ", VariantRevB, false},
		{"", VariantRevB, false},
		{"rev-c", "", true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapabilitiesPerVariant(t *testing.T) {
	a := VariantRevA.Capabilities()
	assert.True(t, a.TXSwitch)
	assert.False(t, a.Jitter)
	assert.False(t, a.EQSlope)
	assert.Equal(t, "continuous", a.FreqPolicy)

	b := VariantRevB.Capabilities()
	assert.False(t, b.TXSwitch)
	assert.True(t, b.Jitter)
	assert.True(t, b.EQSlope)
	assert.Equal(t, "stepped", b.FreqPolicy)
}

func TestFreqPlanPerVariant(t *testing.T) {
	assert.Equal(t, tuner.PolicyContinuous, VariantRevA.FreqPlan().Policy)
	assert.Equal(t, tuner.PolicyStepped, VariantRevB.FreqPlan().Policy)
}

func TestCmdFreqFormats(t *testing.T) {
	cmd, applied := VariantRevA.CmdFreq(2_400_123_456)
	assert.Equal(t, "freq 2400123456.0", cmd)
	assert.Equal(t, int64(2_400_123_456), applied)

	cmd, applied = VariantRevB.CmdFreq(2_400_123_456)
	assert.Equal(t, "freq 2400123400", cmd)
	assert.Equal(t, int64(2_400_123_400), applied)
}

func TestCmdFreqClampsToWindow(t *testing.T) {
	cmd, applied := VariantRevA.CmdFreq(1)
	assert.Equal(t, "freq 2400000000.0", cmd)
	assert.Equal(t, int64(2_400_000_000), applied)

	cmd, applied = VariantRevB.CmdFreq(9_999_999_999)
	assert.Equal(t, "freq 2400500000", cmd)
	assert.Equal(t, int64(2_400_500_000), applied)
}

func TestHasParam(t *testing.T) {
	assert.True(t, VariantRevA.HasParam("comp_thr"))
	assert.True(t, VariantRevB.HasParam("comp_thr"))

	assert.False(t, VariantRevA.HasParam("eq_slope"))
	assert.True(t, VariantRevB.HasParam("eq_slope"))

	assert.False(t, VariantRevA.HasParam("no_such_knob"))
}

func TestDefaultsPerVariant(t *testing.T) {
	a := VariantRevA.Defaults()
	assert.Equal(t, int64(2_400_400_000), a.FreqHz)
	assert.Equal(t, int64(10_489_900_000), a.DownlinkHz)
	assert.Equal(t, 13, a.TxPowerDBm)
	assert.True(t, a.TXEnabled)
	assert.Equal(t, "2700", a.Params["bp_hi"].String())
	assert.Equal(t, "6.1", a.Params["comp_ratio"].String())
	assert.NotContains(t, a.Params, "eq_slope")

	b := VariantRevB.Defaults()
	assert.Equal(t, int64(2_400_400_000), b.FreqHz)
	assert.False(t, b.TXEnabled)
	assert.Equal(t, 0, b.JitterUS)
	assert.Equal(t, "2900", b.Params["bp_hi"].String())
	assert.Equal(t, "14", b.Params["comp_ratio"].String())
	assert.Equal(t, "2", b.Params["eq_slope"].String())
}

func TestSettingsCloneIsIndependent(t *testing.T) {
	orig := VariantRevB.Defaults()
	clone := orig.Clone()

	clone.SetFreq(2_400_100_000)
	clone.Params["bp_lo"] = dec("123")

	assert.Equal(t, int64(2_400_400_000), orig.FreqHz)
	assert.Equal(t, "50", orig.Params["bp_lo"].String())
}
