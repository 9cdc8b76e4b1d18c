// internal/firmware/response.go
package firmware

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// statusMarkers pick out lines describing device state: CFG dumps, diag
// banners and SX1280 status reports. These go to the status panel as well
// as the raw feed.
var statusMarkers = []string{"CFG:", "===", "Status:"}

// IsStatusLine reports whether a received line carries device state
func IsStatusLine(line string) bool {
	for _, m := range statusMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// shortKeys maps the abbreviated names on the CFG compressor line onto
// their set keys.
var shortKeys = map[string]string{
	"ratio":  "comp_ratio",
	"att":    "comp_att",
	"rel":    "comp_rel",
	"makeup": "comp_makeup",
	"knee":   "comp_knee",
	"outlim": "comp_outlim",
}

// ParseKeyValues extracts key=value tokens from a firmware line. Unit
// suffixes glued to values (161.30ms) are stripped; standalone unit
// tokens (Hz, dBm) carry no '=' and fall out naturally.
func ParseKeyValues(line string) map[string]string {
	var kv map[string]string
	for _, tok := range strings.Fields(line) {
		tok = strings.Trim(tok, "(),")
		i := strings.IndexByte(tok, '=')
		if i <= 0 || i == len(tok)-1 {
			continue
		}
		key := tok[:i]
		val := strings.TrimRight(tok[i+1:], "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		if val == "" {
			continue
		}
		if kv == nil {
			kv = make(map[string]string)
		}
		kv[key] = val
	}
	return kv
}

// ApplyLine folds recognized key=value reports from a received line into
// the settings, covering both CFG dumps and the OK echoes of freq, ppm,
// jitter and txpwr. It returns true when anything changed.
func (s *Settings) ApplyLine(line string) bool {
	kv := ParseKeyValues(line)
	if len(kv) == 0 {
		return false
	}
	if s.Params == nil {
		s.Params = make(map[string]decimal.Decimal)
	}

	changed := false
	for key, raw := range kv {
		if mapped, ok := shortKeys[key]; ok {
			key = mapped
		}

		switch key {
		case "freq":
			d, err := decimal.NewFromString(raw)
			if err != nil {
				continue
			}
			if hz := d.IntPart(); hz != s.FreqHz {
				s.SetFreq(hz)
				changed = true
			}
		case "ppm":
			d, err := decimal.NewFromString(raw)
			if err != nil {
				continue
			}
			if !d.Equal(s.PPM) {
				s.PPM = d
				changed = true
			}
		case "jitter":
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			if n != s.JitterUS {
				s.JitterUS = n
				changed = true
			}
		case "txpwr":
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			if n != s.TxPowerDBm {
				s.TxPowerDBm = n
				changed = true
			}
		case "bp":
			changed = s.applyEnable(&s.EnableBP, raw) || changed
		case "eq":
			changed = s.applyEnable(&s.EnableEQ, raw) || changed
		case "comp":
			changed = s.applyEnable(&s.EnableComp, raw) || changed
		default:
			if _, ok := LookupParam(key); !ok {
				continue
			}
			d, err := decimal.NewFromString(raw)
			if err != nil {
				continue
			}
			if cur, ok := s.Params[key]; !ok || !cur.Equal(d) {
				s.Params[key] = d
				changed = true
			}
		}
	}
	return changed
}

func (s *Settings) applyEnable(field *bool, raw string) bool {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}
	on := n != 0
	if *field == on {
		return false
	}
	*field = on
	return true
}
