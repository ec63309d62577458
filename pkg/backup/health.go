package backup

// EvaluateHealth derives the overall status of a run from its ordered step
// results. Precedence, first match wins:
//
//  1. no results at all        -> FAILED
//  2. any step FAILED          -> FAILED
//  3. any step WARNING         -> WARNING
//  4. otherwise                -> SUCCESS
//
// SKIPPED results are neutral; they never influence the outcome.
func EvaluateHealth(results []StepResult) Status {
	if len(results) == 0 {
		return StatusFailed
	}

	warned := false
	for _, res := range results {
		switch res.Status {
		case StatusFailed:
			return StatusFailed
		case StatusWarning:
			warned = true
		}
	}

	if warned {
		return StatusWarning
	}
	return StatusSuccess
}
