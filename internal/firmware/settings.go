// internal/firmware/settings.go
package firmware

import (
	"github.com/shopspring/decimal"

	"qo100-console/internal/tuner"
)

// Settings is the console's picture of the transmitter's DSP state. It
// starts from the variant defaults, tracks every command the console
// sends and folds in values the firmware reports back.
type Settings struct {
	FreqHz     int64           `json:"freq_hz"`
	DownlinkHz int64           `json:"downlink_hz"`
	PPM        decimal.Decimal `json:"ppm"`
	JitterUS   int             `json:"jitter_us"`
	TxPowerDBm int             `json:"tx_power_dbm"`
	TXEnabled  bool            `json:"tx_enabled"`
	EnableBP   bool            `json:"enable_bp"`
	EnableEQ   bool            `json:"enable_eq"`
	EnableComp bool            `json:"enable_comp"`

	Params map[string]decimal.Decimal `json:"params"`
}

// Defaults returns the boot state of the variant's firmware
func (v Variant) Defaults() Settings {
	s := Settings{
		FreqHz:     2_400_400_000,
		PPM:        decimal.Zero,
		TxPowerDBm: 13,
		EnableBP:   true,
		EnableEQ:   true,
		EnableComp: true,
		Params:     make(map[string]decimal.Decimal, len(registry)),
	}
	s.DownlinkHz = tuner.Downlink(s.FreqHz)

	switch v {
	case VariantRevA:
		s.TXEnabled = true
		s.Params["bp_lo"] = dec("50")
		s.Params["bp_hi"] = dec("2700")
		s.Params["bp_stages"] = dec("7")
		s.Params["eq_low_hz"] = dec("190")
		s.Params["eq_low_db"] = dec("-2.0")
		s.Params["eq_high_hz"] = dec("1700")
		s.Params["eq_high_db"] = dec("13.5")
		s.Params["comp_thr"] = dec("-2.5")
		s.Params["comp_ratio"] = dec("6.1")
		s.Params["comp_att"] = dec("41.1")
		s.Params["comp_rel"] = dec("1595")
		s.Params["comp_makeup"] = dec("0.0")
		s.Params["comp_knee"] = dec("16.5")
		s.Params["comp_outlim"] = dec("0.940")
		s.Params["amp_gain"] = dec("2.9")
		s.Params["amp_min_a"] = dec("0.000002")
	default:
		s.Params["bp_lo"] = dec("50")
		s.Params["bp_hi"] = dec("2900")
		s.Params["bp_stages"] = dec("10")
		s.Params["eq_low_hz"] = dec("180")
		s.Params["eq_low_db"] = dec("0.0")
		s.Params["eq_high_hz"] = dec("2380")
		s.Params["eq_high_db"] = dec("24.0")
		s.Params["eq_slope"] = dec("2.0")
		s.Params["comp_thr"] = dec("-2.5")
		s.Params["comp_ratio"] = dec("14.0")
		s.Params["comp_att"] = dec("161.3")
		s.Params["comp_rel"] = dec("1595")
		s.Params["comp_makeup"] = dec("1.0")
		s.Params["comp_knee"] = dec("1.0")
		s.Params["comp_outlim"] = dec("0.976")
		s.Params["amp_gain"] = dec("2.28")
		s.Params["amp_min_a"] = dec("0.000002")
	}
	return s
}

// Clone returns a deep copy safe to hand across goroutines
func (s Settings) Clone() Settings {
	out := s
	out.Params = make(map[string]decimal.Decimal, len(s.Params))
	for k, v := range s.Params {
		out.Params[k] = v
	}
	return out
}

// SetFreq records an applied frequency and keeps the downlink mirror in
// step.
func (s *Settings) SetFreq(hz int64) {
	s.FreqHz = hz
	s.DownlinkHz = tuner.Downlink(hz)
}
