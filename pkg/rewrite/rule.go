package rewrite

// Phase names the routing stage at which a group of rewrites is applied.
type Phase string

const (
	// PhaseBeforeFiles rewrites are checked before pages and static files.
	PhaseBeforeFiles Phase = "beforeFiles"
	// PhaseAfterFiles rewrites are checked after pages and static files.
	PhaseAfterFiles Phase = "afterFiles"
	// PhaseFallback rewrites are checked when nothing else matched.
	PhaseFallback Phase = "fallback"
)

// Phases lists all phases in evaluation order.
var Phases = []Phase{PhaseBeforeFiles, PhaseAfterFiles, PhaseFallback}

// Rule is a single configured rewrite.
type Rule struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	HasLocale   bool   `json:"hasLocale" yaml:"hasLocale"`
}

// RuleSet groups rules by phase, each list in configured order.
type RuleSet struct {
	BeforeFiles []Rule `json:"beforeFiles" yaml:"beforeFiles"`
	AfterFiles  []Rule `json:"afterFiles" yaml:"afterFiles"`
	Fallback    []Rule `json:"fallback" yaml:"fallback"`
}

// Phase returns the rules configured for p, or nil for an unknown phase.
func (s RuleSet) Phase(p Phase) []Rule {
	switch p {
	case PhaseBeforeFiles:
		return s.BeforeFiles
	case PhaseAfterFiles:
		return s.AfterFiles
	case PhaseFallback:
		return s.Fallback
	default:
		return nil
	}
}

// Len returns the total number of rules across all phases.
func (s RuleSet) Len() int {
	return len(s.BeforeFiles) + len(s.AfterFiles) + len(s.Fallback)
}

// Clone returns a deep copy of s.
func (s RuleSet) Clone() RuleSet {
	return RuleSet{
		BeforeFiles: cloneRules(s.BeforeFiles),
		AfterFiles:  cloneRules(s.AfterFiles),
		Fallback:    cloneRules(s.Fallback),
	}
}

func cloneRules(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
