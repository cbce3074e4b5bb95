package csp

import (
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/rhyrak/coursecsp/pkg/model"
)

// BuildVariables converts the (section × assigned-course) multiset
// into the ordered list of CSP variables, merging offerings that must
// be co-scheduled, per spec.md §4.2.
//
// Grounded on identifyVariables in original_source's CSP engine, kept
// as a single top-to-bottom function in that source's style, but
// parameterised on the hard-priority course-ID set (cfg's
// HardPriorityCourseIDs) instead of literal GRAD1/GRAD2 comparisons.
func BuildVariables(in *model.Input, idx *model.Indices, hardPriorityCourseIDs map[string]bool) []*model.Variable {
	var variables []*model.Variable
	seenGroupCourse := make(map[string]bool)
	seenYearCourse := make(map[string]bool)

	for i, sec := range in.Sections {
		for _, cID := range sec.AssignedCourses {
			c, ok := idx.CourseByID[cID]
			if !ok {
				// Unknown course references are a validator concern;
				// the builder silently skips what validate.Input would
				// already have rejected.
				continue
			}

			switch {
			case c.AllYear:
				key := yearCourseKey(sec.Year, cID)
				if seenYearCourse[key] {
					continue
				}
				seenYearCourse[key] = true

				targets := idx.YearToSections[sec.Year]
				variables = append(variables, newVariable(cID, targets, c.Duration, in.Sections, hardPriorityCourseIDs[cID]))

			case c.Type == model.KindLecture:
				key := groupCourseKey(sec.GroupID, cID)
				if seenGroupCourse[key] {
					continue
				}
				seenGroupCourse[key] = true

				targets := idx.GroupToSections[sec.GroupID]
				if len(targets) == 0 {
					targets = []int{i}
				}
				variables = append(variables, newVariable(cID, targets, c.Duration, in.Sections, hardPriorityCourseIDs[cID]))

			default:
				variables = append(variables, newVariable(cID, []int{i}, c.Duration, in.Sections, hardPriorityCourseIDs[cID]))
			}
		}
	}

	sortVariables(variables)
	return variables
}

func newVariable(courseID string, targetSections []int, duration int, sections []model.Section, hard bool) *model.Variable {
	total := lo.SumBy(targetSections, func(idx int) int { return sections[idx].StudentCount })
	return &model.Variable{
		CourseID:             courseID,
		TargetSectionIndices: targetSections,
		TotalStudents:        total,
		Duration:             duration,
		Hard:                 hard,
	}
}

func groupCourseKey(groupID, courseID string) string { return groupID + "\x00" + courseID }
func yearCourseKey(year int, courseID string) string {
	return strconv.Itoa(year) + "\x00" + courseID
}

// sortVariables applies the most-constrained-first heuristic and its
// tie-break chain from spec.md §4.2: hard before non-hard, larger
// duration first, larger total-students first, more target sections
// first. sort.SliceStable keeps the tie-break chain deterministic for
// variables that compare equal on every key.
func sortVariables(variables []*model.Variable) {
	sort.SliceStable(variables, func(i, j int) bool {
		a, b := variables[i], variables[j]
		if a.Hard != b.Hard {
			return a.Hard
		}
		if a.Duration != b.Duration {
			return a.Duration > b.Duration
		}
		if a.TotalStudents != b.TotalStudents {
			return a.TotalStudents > b.TotalStudents
		}
		return len(a.TargetSectionIndices) > len(b.TargetSectionIndices)
	})
}
