// Package validate rejects inputs that provably have no solution
// before the search ever runs.
//
// Grounded on internal/scheduler.Validate in the teacher repository
// (a pure pre-flight check returning diagnostics as strings), reshaped
// per spec.md's fatal-error-list contract rather than the teacher's
// post-hoc schedule-collision check — this validator inspects the
// request, not a produced schedule.
package validate

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rhyrak/coursecsp/pkg/model"
)

// Input checks for the two provably-unsolvable conditions spec.md
// names: a section referencing an unknown course, and a course with no
// qualified instructor or TA anywhere in the request. It mutates
// nothing and returns an empty slice when the request may be
// solvable (solvability itself is only proven by running the search).
func Input(in *model.Input) []string {
	var diagnostics []string

	knownCourses := make(map[string]model.Course, len(in.Courses))
	for _, c := range in.Courses {
		knownCourses[c.CourseID] = c
	}

	for _, sec := range in.Sections {
		for _, cID := range sec.AssignedCourses {
			if _, ok := knownCourses[cID]; !ok {
				diagnostics = append(diagnostics, fmt.Sprintf(
					"Section %s is assigned unknown course: %s", sec.SectionID, cID))
			}
		}
	}

	for _, c := range in.Courses {
		if !hasQualifiedTeacher(c.CourseID, in.Instructors, in.TAs) {
			diagnostics = append(diagnostics, fmt.Sprintf(
				"Course %s (%s) has no qualified instructors or TAs", c.CourseID, c.CourseName))
		}
	}

	return diagnostics
}

func hasQualifiedTeacher(courseID string, instructors []model.Instructor, tas []model.TA) bool {
	anyInstructor := lo.SomeBy(instructors, func(i model.Instructor) bool {
		return lo.Contains(i.QualifiedCourses, courseID)
	})
	if anyInstructor {
		return true
	}
	return lo.SomeBy(tas, func(t model.TA) bool {
		return lo.Contains(t.QualifiedCourses, courseID)
	})
}
