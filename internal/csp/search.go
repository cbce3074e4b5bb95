package csp

import (
	"context"
	"time"

	"github.com/rhyrak/coursecsp/pkg/model"
)

// Search is the iterative depth-first backtracking driver from
// spec.md §4.4. It owns no state beyond one solve: a fresh Search is
// built per request via NewSearch.
//
// Grounded on solveIterative in original_source's CSP engine —
// same explicit stack, same "advance domain index, apply, recurse;
// exhausted, undo, backtrack" loop — but with the mandatory
// re-validation on take that spec.md §4.4 step 3 requires (the
// original takes the next domain entry on faith; domains computed at
// entry can be stale once sibling branches mutate shared resources).
type Search struct {
	variables     []*model.Variable
	idx           *Index
	sectionIDs    []string
	deadline      time.Time
	maxIterations int
	diagnostics   *Diagnostics
}

// NewSearch builds a Search over variables against idx, budgeted by
// deadline and maxIterations, with a failure-history ring buffer sized
// historyCap. sectionIDs maps section index to section ID for
// diagnostics messages.
func NewSearch(variables []*model.Variable, idx *Index, sectionIDs []string, deadline time.Time, maxIterations int, historyCap int) *Search {
	return &Search{
		variables:     variables,
		idx:           idx,
		sectionIDs:    sectionIDs,
		deadline:      deadline,
		maxIterations: maxIterations,
		diagnostics:   NewDiagnostics(historyCap),
	}
}

// Result is the outcome of one Search.Run.
type Result struct {
	Success     bool
	Diagnostics *Diagnostics
}

// Run drives the backtracking loop to completion, budget breach, or
// infeasibility. ctx supplies cooperative cancellation on top of the
// wall-clock deadline and iteration ceiling; the loop never blocks on
// it, only polls ctx.Err() alongside its own budget checks.
func (s *Search) Run(ctx context.Context) *Result {
	start := time.Now()
	n := len(s.variables)
	if n == 0 {
		s.diagnostics.ElapsedMillis = time.Since(start).Milliseconds()
		return &Result{Success: true, Diagnostics: s.diagnostics}
	}

	domains := make([][]model.Value, n)
	domainIndices := make([]int, n)
	appliedCount := make([]int, n)
	for i := range domainIndices {
		domainIndices[i] = -1
	}

	depth := 0
	domains[0] = s.idx.Domain(s.variables[0])

	iterations := 0
	for depth >= 0 && depth < n {
		if time.Now().After(s.deadline) {
			s.diagnostics.Iterations = iterations
			s.diagnostics.record(FailureInfo{Kind: FailureTimeBudget, Reason: "Timeout limit reached.", Depth: depth})
			s.diagnostics.ElapsedMillis = time.Since(start).Milliseconds()
			return &Result{Success: false, Diagnostics: s.diagnostics}
		}
		if err := ctx.Err(); err != nil {
			s.diagnostics.Iterations = iterations
			s.diagnostics.record(FailureInfo{Kind: FailureTimeBudget, Reason: "Cancelled: " + err.Error(), Depth: depth})
			s.diagnostics.ElapsedMillis = time.Since(start).Milliseconds()
			return &Result{Success: false, Diagnostics: s.diagnostics}
		}

		iterations++
		if iterations > s.maxIterations {
			s.diagnostics.Iterations = iterations
			s.diagnostics.record(FailureInfo{Kind: FailureIterationBudget, Reason: "Max iterations reached.", Depth: depth})
			s.diagnostics.ElapsedMillis = time.Since(start).Milliseconds()
			return &Result{Success: false, Diagnostics: s.diagnostics}
		}

		foundAssignment := false
		for {
			domainIndices[depth]++
			if domainIndices[depth] >= len(domains[depth]) {
				break
			}

			val := domains[depth][domainIndices[depth]]
			// Mandatory re-check: domains are computed lazily at entry
			// but other branches may have mutated live state since.
			if !s.idx.IsValid(s.variables[depth], val) {
				continue
			}

			s.idx.Apply(s.variables[depth], val)
			appliedCount[depth]++
			foundAssignment = true
			break
		}

		if foundAssignment {
			depth++
			if depth == n {
				s.diagnostics.Iterations = iterations
				s.diagnostics.ElapsedMillis = time.Since(start).Milliseconds()
				return &Result{Success: true, Diagnostics: s.diagnostics}
			}
			domains[depth] = s.idx.Domain(s.variables[depth])
			domainIndices[depth] = -1
			appliedCount[depth] = 0
			continue
		}

		info := s.classifyExhaustedDomain(depth, appliedCount[depth])
		s.diagnostics.record(info)
		domains[depth] = nil

		depth--
		if depth >= 0 {
			prevVal := domains[depth][domainIndices[depth]]
			s.idx.Undo(s.variables[depth], prevVal)
		}
	}

	s.diagnostics.Iterations = iterations
	s.diagnostics.ElapsedMillis = time.Since(start).Milliseconds()
	return &Result{Success: depth == n, Diagnostics: s.diagnostics}
}
