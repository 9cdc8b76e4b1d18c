// internal/firmware/command.go
package firmware

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Ranges the firmware enforces for the top-level RF knobs
const (
	PPMMin     = -100.0
	PPMMax     = 100.0
	TxPowerMin = -18
	TxPowerMax = 13
	JitterMin  = 0
	JitterMax  = 30
)

// Section names one of the switchable DSP blocks
type Section string

const (
	SectionBandpass   Section = "bp"
	SectionEqualizer  Section = "eq"
	SectionCompressor Section = "comp"
)

// ParseSection validates a DSP block name
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionBandpass, SectionEqualizer, SectionCompressor:
		return Section(s), nil
	default:
		return "", &ValidationError{Field: "section", Value: s, Reason: "must be bp, eq or comp"}
	}
}

// Immediate commands shared by both firmware revisions
func CmdGet() string  { return "get" }
func CmdDiag() string { return "diag" }
func CmdHelp() string { return "help" }
func CmdCW() string   { return "cw" }
func CmdStop() string { return "stop" }

// CmdFreq clamps the requested frequency onto the variant's plan and
// builds the freq line. Rev-a keeps the firmware's sub-Hz float format,
// rev-b sends plain integers. The applied frequency is returned so the
// caller can record what was actually tuned.
func (v Variant) CmdFreq(hz int64) (string, int64) {
	applied := v.FreqPlan().Clamp(hz)
	if v == VariantRevA {
		return fmt.Sprintf("freq %.1f", float64(applied)), applied
	}
	return fmt.Sprintf("freq %d", applied), applied
}

// CmdPPM builds the ppm correction line
func CmdPPM(ppm decimal.Decimal) (string, error) {
	if ppm.LessThan(decimal.NewFromFloat(PPMMin)) || ppm.GreaterThan(decimal.NewFromFloat(PPMMax)) {
		return "", &ValidationError{Field: "ppm", Value: ppm.String(), Reason: fmt.Sprintf("must be between %v and %v", PPMMin, PPMMax)}
	}
	return fmt.Sprintf("ppm %s", ppm.StringFixed(4)), nil
}

// CmdTxPower builds the txpwr line
func CmdTxPower(dbm int) (string, error) {
	if dbm < TxPowerMin || dbm > TxPowerMax {
		return "", &ValidationError{Field: "tx_power_dbm", Value: fmt.Sprintf("%d", dbm), Reason: fmt.Sprintf("must be between %d and %d", TxPowerMin, TxPowerMax)}
	}
	return fmt.Sprintf("txpwr %d", dbm), nil
}

// CmdJitter builds the jitter line. Only rev-b understands it.
func (v Variant) CmdJitter(us int) (string, error) {
	if v != VariantRevB {
		return "", &ValidationError{Field: "jitter_us", Value: fmt.Sprintf("%d", us), Reason: fmt.Sprintf("not supported by %s firmware", v)}
	}
	if us < JitterMin || us > JitterMax {
		return "", &ValidationError{Field: "jitter_us", Value: fmt.Sprintf("%d", us), Reason: fmt.Sprintf("must be between %d and %d", JitterMin, JitterMax)}
	}
	return fmt.Sprintf("jitter %d", us), nil
}

// CmdTX builds the carrier switch line. Only rev-a has the tx command;
// rev-b keys the carrier through cw and stop.
func (v Variant) CmdTX(on bool) (string, error) {
	if v != VariantRevA {
		return "", &ValidationError{Field: "tx_enabled", Value: fmt.Sprintf("%t", on), Reason: fmt.Sprintf("not supported by %s firmware", v)}
	}
	if on {
		return "tx 1", nil
	}
	return "tx 0", nil
}

// CmdEnable builds the DSP block switch line
func CmdEnable(section Section, on bool) string {
	v := "0"
	if on {
		v = "1"
	}
	return fmt.Sprintf("enable %s %s", section, v)
}

// CmdSetParam validates a parameter value against the registry and the
// variant, then builds the set line.
func (v Variant) CmdSetParam(name string, value decimal.Decimal) (string, error) {
	p, ok := LookupParam(name)
	if !ok {
		return "", &ValidationError{Field: name, Value: value.String(), Reason: "unknown parameter"}
	}
	if p.RevBOnly && v != VariantRevB {
		return "", &ValidationError{Field: name, Value: value.String(), Reason: fmt.Sprintf("not supported by %s firmware", v)}
	}
	if err := p.Validate(value); err != nil {
		return "", err
	}
	return p.Command(value), nil
}

// SyncCommands renders the full settings snapshot as the command sequence
// a sync pushes at the firmware: RF knobs first, then block enables, then
// every DSP parameter in registry order.
func (v Variant) SyncCommands(s Settings) []string {
	freqCmd, _ := v.CmdFreq(s.FreqHz)
	cmds := []string{
		freqCmd,
		fmt.Sprintf("ppm %s", s.PPM.StringFixed(4)),
		fmt.Sprintf("txpwr %d", s.TxPowerDBm),
	}
	if v == VariantRevB {
		cmds = append(cmds, fmt.Sprintf("jitter %d", s.JitterUS))
	}
	cmds = append(cmds,
		CmdEnable(SectionBandpass, s.EnableBP),
		CmdEnable(SectionEqualizer, s.EnableEQ),
		CmdEnable(SectionCompressor, s.EnableComp),
	)
	for _, p := range Params(v) {
		val, ok := s.Params[p.Name]
		if !ok {
			continue
		}
		cmds = append(cmds, p.Command(val))
	}
	return cmds
}
