package dsp

// Params is a named bag of scalar/choice effect parameters.
type Params map[string]any

// ParamSpec documents one accepted parameter key: its range, default, and
// step, centralized so the automation engine can validate/clamp without
// duplicating knowledge of each effect's internals (folds in the original's
// per-effect AUTOMATABLE_PARAMS table).
type ParamSpec struct {
	Key     string
	Display string
	Min     float64
	Max     float64
	Default float64
	Step    float64
	// Automatable records whether the param is marked automatable in the
	// effect's table; a few numeric params (e.g. phaser stages, tape_stop
	// duration_ms) are marked false. No code path reads it. Choice params
	// such as filter_type or mode have no ParamSpec at all.
	Automatable bool
}

// Clamp restricts v to [spec.Min, spec.Max].
func (s ParamSpec) Clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

func (p Params) Float(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		}
	}
	return def
}

func (p Params) Int(key string, def int) int {
	if v, ok := p[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case float32:
			return int(n)
		}
	}
	return def
}

func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func (p Params) String(key, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}
