package rewrite

import (
	"time"

	"github.com/segmentio/ksuid"
	"github.com/tliron/commonlog"

	"fieldeq/internal/egraph"
)

// StopReason names why a saturation run ended (§4.4 "an orderly stop
// reason is recorded and exposed").
type StopReason string

const (
	StopSaturated  StopReason = "saturated"
	StopIterations StopReason = "iteration_cap"
	StopNodes      StopReason = "node_cap"
	StopTimeout    StopReason = "timeout"
)

// Limits are the saturation loop's resource caps (§4.4). A zero field
// means that cap is disabled.
type Limits struct {
	MaxIterations int
	MaxNodes      int
	Timeout       time.Duration
}

// Saturator runs a fixed rule set to saturation or a resource cap,
// mirroring the teacher's OptimizationPipeline idiom (a named sequence
// of passes run to a fixpoint) generalized to e-graph rewriting, where
// one "pass" is match-all-rules-then-apply-then-rebuild instead of a
// single linear instruction-list transform.
type Saturator[D comparable] struct {
	Rules  []Rule[D]
	Limits Limits
	Logger commonlog.Logger
}

// NewSaturator builds a Saturator over rules with the given caps. If
// logger is nil, a package-scoped commonlog logger is used.
func NewSaturator[D comparable](rules []Rule[D], limits Limits, logger commonlog.Logger) *Saturator[D] {
	if logger == nil {
		logger = commonlog.GetLogger("fieldeq.rewrite")
	}
	return &Saturator[D]{Rules: rules, Limits: limits, Logger: logger}
}

type pendingApplication[D comparable] struct {
	rule  Rule[D]
	match ruleMatch
}

// Run iterates the saturation loop of §4.4 against g until no rule
// application changes anything, or a resource cap is hit. traceID
// (a ksuid) is attached to every log line so a run's iterations can be
// grepped out of interleaved test-case output.
func (s *Saturator[D]) Run(g *egraph.EGraph[D]) StopReason {
	traceID := ksuid.New().String()
	start := time.Now()

	for iter := 0; ; iter++ {
		if s.Limits.MaxIterations > 0 && iter >= s.Limits.MaxIterations {
			s.Logger.Infof("saturation[%s] stopped: iteration cap (%d) reached", traceID, s.Limits.MaxIterations)
			return StopIterations
		}
		if s.Limits.MaxNodes > 0 && g.NumNodes() >= s.Limits.MaxNodes {
			s.Logger.Infof("saturation[%s] stopped: node cap (%d) reached", traceID, s.Limits.MaxNodes)
			return StopNodes
		}
		if s.Limits.Timeout > 0 && time.Since(start) > s.Limits.Timeout {
			s.Logger.Infof("saturation[%s] stopped: timeout (%s) exceeded", traceID, s.Limits.Timeout)
			return StopTimeout
		}

		// Matching phase: read-only over g, batched across every rule
		// before any rule fires (§4.4 step 1). §4.4/§5 note rule matching
		// *may* be parallelized across rules since it never writes g —
		// but g.Find performs path compression on every call, so two
		// rules' match goroutines would race on the same union-find
		// slice. Correctness never depends on this phase running in
		// parallel, so it stays sequential rather than protecting Find
		// with locking that would serialize it anyway.
		var batch []pendingApplication[D]
		for _, r := range s.Rules {
			for _, m := range r.match(g) {
				batch = append(batch, pendingApplication[D]{rule: r, match: m})
			}
		}

		// Apply phase (§4.4 step 2).
		changed := false
		for _, p := range batch {
			if p.rule.apply(g, p.match) {
				changed = true
			}
		}

		// Restore invariants (§4.4 step 3).
		g.Rebuild()

		s.Logger.Debugf("saturation[%s] iteration %d: %d matches, %d classes, %d nodes",
			traceID, iter, len(batch), g.NumClasses(), g.NumNodes())

		if !changed {
			s.Logger.Infof("saturation[%s] stopped: saturated after %d iterations", traceID, iter+1)
			return StopSaturated
		}
	}
}
