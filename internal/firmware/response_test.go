// internal/firmware/response_test.go
package firmware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStatusLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"CFG:", true},
		{"  freq=2400400000 Hz  ppm=0.00", false},
		{"=== SX1280 Diagnostics ===", true},
		{"Status: 0x46 (mode=STDBY_RC)", true},
		{"OK freq=2400100000 Hz (steps=4800200)", false},
		{"ERR: unknown command (type 'help')", false},
		{"[SERIAL ERROR] device unplugged", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStatusLine(tt.line))
		})
	}
}

func TestParseKeyValues(t *testing.T) {
	kv := ParseKeyValues("  comp_thr=-2.5 ratio=14.00 att=161.30ms rel=1595.00ms makeup=1.0 knee=1.0 outlim=0.976")

	assert.Equal(t, "-2.5", kv["comp_thr"])
	assert.Equal(t, "14.00", kv["ratio"])
	assert.Equal(t, "161.30", kv["att"], "glued ms unit must be stripped")
	assert.Equal(t, "1595.00", kv["rel"])
	assert.Equal(t, "0.976", kv["outlim"])
}

func TestParseKeyValuesSkipsNoise(t *testing.T) {
	kv := ParseKeyValues("  bp_lo=50.0 bp_hi=2900.0 bp_stages=10 (120 dB/oct)")

	assert.Equal(t, "50.0", kv["bp_lo"])
	assert.Equal(t, "10", kv["bp_stages"])
	assert.NotContains(t, kv, "120")
	assert.Nil(t, ParseKeyValues("Commands:"))
	assert.Nil(t, ParseKeyValues(""))
}

func TestApplyLineFromConfigDump(t *testing.T) {
	s := VariantRevB.Defaults()

	lines := []string{
		"CFG:",
		"  freq=2400100000 Hz  ppm=-1.50  jitter=5 us  txpwr=10 dBm",
		"  enable bp=1 eq=0 comp=1",
		"  bp_lo=50.0 bp_hi=2900.0 bp_stages=10 (120 dB/oct)",
		"  eq_low_hz=180.0 eq_low_db=0.0 eq_high_hz=2380.0 eq_high_db=24.0 eq_slope=2.00",
		"  comp_thr=-2.5 ratio=14.00 att=161.30ms rel=1595.00ms makeup=1.0 knee=1.0 outlim=0.976",
		"  amp_gain=2.280 amp_min_a=0.000002000",
	}
	changed := false
	for _, line := range lines {
		changed = s.ApplyLine(line) || changed
	}

	assert.True(t, changed)
	assert.Equal(t, int64(2_400_100_000), s.FreqHz)
	assert.Equal(t, int64(10_489_600_000), s.DownlinkHz)
	assert.Equal(t, "-1.5", s.PPM.String())
	assert.Equal(t, 5, s.JitterUS)
	assert.Equal(t, 10, s.TxPowerDBm)
	assert.True(t, s.EnableBP)
	assert.False(t, s.EnableEQ)
	assert.True(t, s.EnableComp)
	assert.True(t, s.Params["comp_att"].Equal(dec("161.3")))
	assert.True(t, s.Params["comp_ratio"].Equal(dec("14")))
}

func TestApplyLineFromOKEcho(t *testing.T) {
	s := VariantRevB.Defaults()

	require.True(t, s.ApplyLine("OK freq=2400200000 Hz (steps=4800400)"))
	assert.Equal(t, int64(2_400_200_000), s.FreqHz)

	require.True(t, s.ApplyLine("OK ppm=-0.25 (steps=4800399)"))
	assert.Equal(t, "-0.25", s.PPM.String())

	require.True(t, s.ApplyLine("OK jitter=12 us"))
	assert.Equal(t, 12, s.JitterUS)

	require.True(t, s.ApplyLine("OK txpwr=-3 dBm"))
	assert.Equal(t, -3, s.TxPowerDBm)
}

func TestApplyLineIgnoresUnknownAndUnchanged(t *testing.T) {
	s := VariantRevB.Defaults()

	assert.False(t, s.ApplyLine("ERR: unknown command (type 'help')"))
	assert.False(t, s.ApplyLine("Status: 0x46 (mode=STDBY_RC)"))
	assert.False(t, s.ApplyLine("OK"))

	// Re-applying the current value must not report a change.
	require.True(t, s.ApplyLine("OK jitter=12 us"))
	assert.False(t, s.ApplyLine("OK jitter=12 us"))
}

func TestApplyLineRevAFloatFrequency(t *testing.T) {
	s := VariantRevA.Defaults()

	require.True(t, s.ApplyLine("OK freq=2400123456.0 Hz"))
	assert.Equal(t, int64(2_400_123_456), s.FreqHz)
}
