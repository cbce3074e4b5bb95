package csp

import (
	"fmt"
	"strings"

	"github.com/rhyrak/coursecsp/pkg/model"
)

// FailureKind is the search-layer error taxonomy from spec.md §7.
// Transport and InputValidation are not represented here: they never
// reach the search driver.
type FailureKind string

const (
	FailureNoDomain          FailureKind = "NoDomain"
	FailureNoPlacement       FailureKind = "NoPlacement"
	FailureFixedCourseNoFit  FailureKind = "FixedCourseNoFit"
	FailureBacktrackOnly     FailureKind = "BacktrackOnly"
	FailureTimeBudget        FailureKind = "TimeBudget"
	FailureIterationBudget   FailureKind = "IterationBudget"
)

// FailureInfo is one entry in the bounded ring buffer of recent
// domain-exhaustion events, per spec.md §4.5.
type FailureInfo struct {
	Kind             FailureKind
	CourseID         string
	CourseName       string
	SectionID        string
	Reason           string
	Depth            int
	PlacementsTried  int
	RoomsConsidered  int
}

// Diagnostics accumulates everything the search driver reports on
// termination: the two headline error strings, a bounded history, and
// aggregate counters.
type Diagnostics struct {
	LastError     string
	DeepestError  string
	deepestDepth  int
	History       []FailureInfo
	historyCap    int
	Iterations    int
	ElapsedMillis int64
}

// NewDiagnostics allocates a Diagnostics with the given ring-buffer
// capacity (config.Config.FailureHistoryCapacity).
func NewDiagnostics(historyCap int) *Diagnostics {
	return &Diagnostics{historyCap: historyCap, deepestDepth: -1}
}

func (d *Diagnostics) record(info FailureInfo) {
	d.LastError = info.Reason
	if info.Depth >= d.deepestDepth {
		d.deepestDepth = info.Depth
		d.DeepestError = info.Reason
	}
	d.History = append(d.History, info)
	if len(d.History) > d.historyCap {
		d.History = d.History[len(d.History)-d.historyCap:]
	}
}

// classifyExhaustedDomain builds the FailureInfo for a variable whose
// domain is empty (never had a value) or has just been fully consumed
// without leading to a global solution, per the four causes spec.md
// §4.5 names.
func (s *Search) classifyExhaustedDomain(depth int, placementsTried int) FailureInfo {
	v := s.variables[depth]
	c := s.idx.CourseByID[v.CourseID]
	sectionID := s.sectionIDFor(v)

	qualifiedTeachers := 0
	for _, t := range s.idx.Teachers {
		if isQualified(t.QualifiedCourses, v.CourseID) {
			qualifiedTeachers++
		}
	}

	switch {
	case qualifiedTeachers == 0:
		return FailureInfo{
			Kind:       FailureNoDomain,
			CourseID:   v.CourseID,
			CourseName: c.CourseName,
			SectionID:  sectionID,
			Reason:     fmt.Sprintf("ROOT CAUSE: No qualified instructor/TA for %s", c.CourseName),
			Depth:      depth,
		}

	case placementsTried == 0 && v.Hard:
		runs := s.longestFreeRuns(v)
		suggestion := suggestReducedDuration(runs, v.Duration)
		return FailureInfo{
			Kind:       FailureFixedCourseNoFit,
			CourseID:   v.CourseID,
			CourseName: c.CourseName,
			SectionID:  sectionID,
			Reason: fmt.Sprintf(
				"ROOT CAUSE: %s requires %d consecutive free slots but the longest run available is %d.%s",
				c.CourseName, v.Duration, maxInt(runs), suggestion),
			Depth:           depth,
			PlacementsTried: placementsTried,
		}

	case placementsTried == 0:
		roomsConsidered := s.idx.CountQualifiedRooms(c, v.TotalStudents)
		return FailureInfo{
			Kind:       FailureNoPlacement,
			CourseID:   v.CourseID,
			CourseName: c.CourseName,
			SectionID:  sectionID,
			Reason: fmt.Sprintf(
				"ROOT CAUSE: No feasible room/slot for %s\n  kind: %s\n  duration: %d\n  requiredStudents: %d\n  labType: %s\n  roomsMatchingFilter: %d (all suitable rooms/slots blocked)",
				c.CourseName, c.Type, v.Duration, v.TotalStudents, orDash(c.LabType), roomsConsidered),
			Depth:           depth,
			RoomsConsidered: roomsConsidered,
		}

	default:
		return FailureInfo{
			Kind:            FailureBacktrackOnly,
			CourseID:        v.CourseID,
			CourseName:      c.CourseName,
			SectionID:       sectionID,
			Reason:          fmt.Sprintf("Unable to place %s after trying %d placement(s) at depth %d; backtracking", c.CourseName, placementsTried, depth),
			Depth:           depth,
			PlacementsTried: placementsTried,
		}
	}
}

func (s *Search) sectionIDFor(v *model.Variable) string {
	if len(v.TargetSectionIndices) == 0 {
		return ""
	}
	return s.sectionIDs[v.TargetSectionIndices[0]]
}

// longestFreeRuns counts the maximal consecutive free-slot runs in the
// row of each of the variable's target sections, used for the
// FixedCourseNoFit reduced-duration suggestion.
func (s *Search) longestFreeRuns(v *model.Variable) []int {
	runs := make([]int, 0, len(v.TargetSectionIndices))
	for _, secIdx := range v.TargetSectionIndices {
		best, current := 0, 0
		for slot := 0; slot < len(s.idx.Grid); slot++ {
			if s.idx.Grid[slot][secIdx].Taken {
				current = 0
				continue
			}
			current++
			if current > best {
				best = current
			}
		}
		runs = append(runs, best)
	}
	return runs
}

func suggestReducedDuration(runs []int, wanted int) string {
	m := maxInt(runs)
	if m <= 0 || m >= wanted {
		return ""
	}
	return fmt.Sprintf(" Consider reducing duration to %d.", m)
}

func maxInt(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Summary renders a human-readable multi-line report combining the
// root cause, secondary context, and failure history, per spec.md
// §4.5's "returns the deepestError as the root cause, the lastError as
// secondary context" contract.
func (d *Diagnostics) Summary() string {
	var b strings.Builder
	if d.DeepestError != "" {
		fmt.Fprintf(&b, "%s\n", d.DeepestError)
	}
	if d.LastError != "" && d.LastError != d.DeepestError {
		fmt.Fprintf(&b, "Last attempt: %s\n", d.LastError)
	}
	if len(d.History) > 0 {
		fmt.Fprintf(&b, "Failure history:\n")
		for _, f := range d.History {
			fmt.Fprintf(&b, "  - %s\n", f.Reason)
		}
	}
	fmt.Fprintf(&b, "Iterations: %d, Elapsed: %dms\n", d.Iterations, d.ElapsedMillis)
	return b.String()
}
