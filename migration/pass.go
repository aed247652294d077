package migration

// Pass is an ordered list of rules applied to the full text of one file. Each rule sees the
// output of the previous one and is gated by its own precondition, evaluated against that
// current text rather than the original input.
type Pass struct {
	Name string
	// Guard short-circuits the whole pass when it does not hold for the input
	Guard Condition
	Rules []Rule
	// Counters lists the counters this pass reports, in report order
	Counters []string
}

// Result is the outcome of applying a pass to one text
type Result struct {
	Content string
	Changed bool
	Counts  *Stats
}

// Apply runs the pass over text. When no rule fires, Content is text itself and Changed is false.
func (p *Pass) Apply(text string) Result {
	counts := NewStats(p.Counters...)
	if p.Guard != nil && !p.Guard(text) {
		return Result{Content: text, Counts: counts}
	}

	out := text
	for _, r := range p.Rules {
		if r.When != nil && !r.When(out) {
			continue
		}
		next, n := r.Apply(out)
		if n == 0 {
			continue
		}
		out = next
		if r.Name != "" {
			counts.Add(r.Name, n)
		}
	}

	return Result{Content: out, Changed: out != text, Counts: counts}
}
