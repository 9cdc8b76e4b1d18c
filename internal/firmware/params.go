// internal/firmware/params.go
package firmware

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError rejects a value outside a parameter's accepted range
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %s)", e.Field, e.Reason, e.Value)
}

// Param describes one DSP parameter reachable through the firmware's
// set command. Scale is the number of decimal places the wire format
// carries; values are held as decimals so a slider value of 0.940
// round-trips without float noise.
type Param struct {
	Name     string          `json:"name"`
	Label    string          `json:"label"`
	Unit     string          `json:"unit,omitempty"`
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Scale    int32           `json:"scale"`
	Integer  bool            `json:"integer,omitempty"`
	RevBOnly bool            `json:"rev_b_only,omitempty"`
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// registry lists every set key in the order the firmware documents them,
// which is also the order a full sync walks them in.
var registry = []Param{
	{Name: "bp_lo", Label: "Bandpass low cut", Unit: "Hz", Min: dec("50"), Max: dec("1500"), Scale: 0},
	{Name: "bp_hi", Label: "Bandpass high cut", Unit: "Hz", Min: dec("500"), Max: dec("3600"), Scale: 0},
	{Name: "bp_stages", Label: "Bandpass stages", Min: dec("1"), Max: dec("10"), Scale: 0, Integer: true},
	{Name: "eq_low_hz", Label: "Low shelf freq", Unit: "Hz", Min: dec("50"), Max: dec("1000"), Scale: 0},
	{Name: "eq_low_db", Label: "Low shelf gain", Unit: "dB", Min: dec("-24"), Max: dec("24"), Scale: 1},
	{Name: "eq_high_hz", Label: "High shelf freq", Unit: "Hz", Min: dec("500"), Max: dec("3500"), Scale: 0},
	{Name: "eq_high_db", Label: "High shelf gain", Unit: "dB", Min: dec("-24"), Max: dec("24"), Scale: 1},
	{Name: "eq_slope", Label: "Shelf slope", Min: dec("0.3"), Max: dec("2.0"), Scale: 2, RevBOnly: true},
	{Name: "comp_thr", Label: "Compressor threshold", Unit: "dB", Min: dec("-60"), Max: dec("0"), Scale: 1},
	{Name: "comp_ratio", Label: "Compressor ratio", Min: dec("1"), Max: dec("20"), Scale: 1},
	{Name: "comp_att", Label: "Compressor attack", Unit: "ms", Min: dec("0.1"), Max: dec("200"), Scale: 1},
	{Name: "comp_rel", Label: "Compressor release", Unit: "ms", Min: dec("10"), Max: dec("2000"), Scale: 0},
	{Name: "comp_makeup", Label: "Makeup gain", Unit: "dB", Min: dec("0"), Max: dec("40"), Scale: 1},
	{Name: "comp_knee", Label: "Compressor knee", Unit: "dB", Min: dec("0"), Max: dec("24"), Scale: 1},
	{Name: "comp_outlim", Label: "Output limiter", Min: dec("0.01"), Max: dec("0.999"), Scale: 3},
	{Name: "amp_gain", Label: "Amplitude gain", Min: dec("0.01"), Max: dec("5.0"), Scale: 3},
	{Name: "amp_min_a", Label: "Minimum amplitude", Min: dec("0.000000001"), Max: dec("1.0"), Scale: 9},
}

var registryByName = func() map[string]Param {
	m := make(map[string]Param, len(registry))
	for _, p := range registry {
		m[p.Name] = p
	}
	return m
}()

// Params returns the registry for a variant, in sync order
func Params(v Variant) []Param {
	out := make([]Param, 0, len(registry))
	for _, p := range registry {
		if p.RevBOnly && v != VariantRevB {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LookupParam finds a parameter by its set key
func LookupParam(name string) (Param, bool) {
	p, ok := registryByName[name]
	return p, ok
}

// Validate rejects values outside the accepted range
func (p Param) Validate(v decimal.Decimal) error {
	if v.LessThan(p.Min) || v.GreaterThan(p.Max) {
		return &ValidationError{
			Field:  p.Name,
			Value:  v.String(),
			Reason: fmt.Sprintf("must be between %s and %s", p.Min, p.Max),
		}
	}
	if p.Integer && !v.Equal(v.Truncate(0)) {
		return &ValidationError{
			Field:  p.Name,
			Value:  v.String(),
			Reason: "must be an integer",
		}
	}
	return nil
}

// Format renders a value in the parameter's wire precision
func (p Param) Format(v decimal.Decimal) string {
	return v.StringFixed(p.Scale)
}

// Command builds the set line carrying the value
func (p Param) Command(v decimal.Decimal) string {
	return fmt.Sprintf("set %s %s", p.Name, p.Format(v))
}
