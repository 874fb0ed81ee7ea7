package exec

import (
	"context"

	"github.com/corvid-db/jsonpath/ast"
)

// predOutcome is the tri-valued (Kleene) result of jsonpath predicate
// evaluation: true, false, or unknown (SQL NULL).
type predOutcome uint8

const (
	predFalse predOutcome = iota
	predTrue
	predUnknown
)

// String returns a human-readable name for p, mainly for debugging.
func (p predOutcome) String() string {
	switch p {
	case predFalse:
		return "FALSE"
	case predTrue:
		return "TRUE"
	case predUnknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN_PREDICATE_OUTCOME"
	}
}

// predFrom converts a plain bool to a predOutcome: predTrue for true,
// predFalse for false. Never returns predUnknown; callers needing that
// third state construct it explicitly.
func predFrom(ok bool) predOutcome {
	if ok {
		return predTrue
	}
	return predFalse
}

// predicateCallback evaluates a single pair of operand items for one kind of
// predicate (comparison, starts with, like_regex, and so on).
type predicateCallback func(ctx context.Context, node ast.Node, left, right any) (predOutcome, error)

// executePredicate runs a unary or binary predicate using callback.
//
// jsonpath predicates have existence semantics: left and right are each item
// sequences, and every pair drawn from them is checked. The predicate is
// true if any pair satisfies it. In strict mode every pair must still be
// examined even after a satisfying one is found, since strict mode demands
// the absence of errors across the whole sequence, not just a witness.
// Returns predUnknown (SQL-NULL-like) if any callback invocation errors.
func (exec *Executor) executePredicate(
	ctx context.Context,
	pred, left, right ast.Node,
	value any,
	unwrapRightArg bool,
	callback predicateCallback,
) (predOutcome, error) {
	// The left operand is always auto-unwrapped regardless of mode.
	lSeq := newList()
	if res, err := exec.executeItemOptUnwrapResultSilent(ctx, left, value, true, lSeq); res == statusFailed {
		return predUnknown, err
	}

	rSeq := newList()
	switch {
	case right != nil:
		// The right operand is conditionally unwrapped by the caller.
		if res, err := exec.executeItemOptUnwrapResultSilent(ctx, right, value, unwrapRightArg, rSeq); res == statusFailed {
			return predUnknown, err
		}
	default:
		rSeq.append(nil)
	}

	return exec.scanPredicatePairs(ctx, pred, lSeq, rSeq, callback)
}

// scanPredicatePairs applies callback across every (left, right) pair and
// folds the per-pair outcomes into the overall tri-valued result, honoring
// strict mode's exhaustive-scan requirement.
func (exec *Executor) scanPredicatePairs(
	ctx context.Context,
	pred ast.Node,
	lSeq, rSeq *valueList,
	callback predicateCallback,
) (predOutcome, error) {
	strict := exec.strictAbsenceOfErrors()
	sawError, sawMatch := false, false

	for _, lVal := range lSeq.list {
		for _, rVal := range rSeq.list {
			outcome, err := callback(ctx, pred, lVal, rVal)
			if err != nil {
				return predUnknown, err
			}

			switch outcome {
			case predUnknown:
				if strict {
					return predUnknown, nil
				}
				sawError = true
			case predTrue:
				if !strict {
					return predTrue, nil
				}
				sawMatch = true
			case predFalse:
			}
		}
	}

	switch {
	case sawMatch: // only reachable in strict mode
		return predTrue, nil
	case sawError: // only reachable in lax mode
		return predUnknown, nil
	default:
		return predFalse, nil
	}
}
