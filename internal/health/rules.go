package health

import "timed-set/internal/metrics"

// RuleResult represents the outcome of a single rule.
type RuleResult struct {
	Triggered      bool
	Signal         string
	Recommendation string
	Severity       Status
}

// Rule evaluates a metrics snapshot.
type Rule func(snapshot map[string]int64) RuleResult

// ---------- RULES ----------

// Most drained keys had already expired: values are added but nobody
// traverses the set before they time out.
func ExpiredDrainRule(snapshot map[string]int64) RuleResult {
	drained := snapshot[string(metrics.TimedSetDrainedKeysTotal)]
	skipped := snapshot[string(metrics.TimedSetExpiredSkippedTotal)]

	if drained > 0 && skipped*2 > drained {
		return RuleResult{
			Triggered:      true,
			Signal:         "Most drained values had already expired",
			Recommendation: "Drain more often than the TTL or raise the TTL",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// Duplicates outnumber first sightings in the dedupe window.
func DuplicateRateRule(snapshot map[string]int64) RuleResult {
	first := snapshot[string(metrics.DedupeFirstSeenTotal)]
	dups := snapshot[string(metrics.DedupeDuplicatesTotal)]

	if dups > 0 && dups > first {
		return RuleResult{
			Triggered:      true,
			Signal:         "Duplicate rate exceeds first-seen rate",
			Recommendation: "Check producers for retry storms or replayed messages",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// Recovered handler panics.
func HandlerPanicRule(snapshot map[string]int64) RuleResult {
	if snapshot[string(metrics.HTTPPanicsTotal)] > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "HTTP handler panics recovered",
			Recommendation: "Inspect logs for the failing request and fix the handler",
			Severity:       StatusCritical,
		}
	}
	return RuleResult{}
}
