package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/coursecsp/pkg/model"
)

func TestInput_FlagsUnknownCourseReference(t *testing.T) {
	in := &model.Input{
		Courses: []model.Course{{CourseID: "CS101"}},
		Sections: []model.Section{
			{SectionID: "S1", AssignedCourses: []string{"CS101", "PHYS200"}},
		},
	}

	errs := Input(in)
	require.Len(t, errs, 2, "PHYS200 is unknown and CS101 has no qualified teacher")
	require.Contains(t, errs[0], "S1")
	require.Contains(t, errs[0], "PHYS200")
}

func TestInput_FlagsCourseWithNoQualifiedTeacher(t *testing.T) {
	in := &model.Input{
		Courses:     []model.Course{{CourseID: "CS101", CourseName: "Intro"}},
		Instructors: []model.Instructor{{InstructorID: "I1", QualifiedCourses: []string{"CS999"}}},
		Sections:    []model.Section{{SectionID: "S1", AssignedCourses: []string{"CS101"}}},
	}

	errs := Input(in)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "CS101")
}

func TestInput_AcceptsTAOnlyQualification(t *testing.T) {
	in := &model.Input{
		Courses:  []model.Course{{CourseID: "CS101", CourseName: "Intro"}},
		TAs:      []model.TA{{TaID: "T1", QualifiedCourses: []string{"CS101"}}},
		Sections: []model.Section{{SectionID: "S1", AssignedCourses: []string{"CS101"}}},
	}

	require.Empty(t, Input(in))
}

func TestInput_CleanRequestHasNoDiagnostics(t *testing.T) {
	in := &model.Input{
		Courses:     []model.Course{{CourseID: "CS101", CourseName: "Intro"}},
		Instructors: []model.Instructor{{InstructorID: "I1", QualifiedCourses: []string{"CS101"}}},
		Sections:    []model.Section{{SectionID: "S1", AssignedCourses: []string{"CS101"}}},
	}

	require.Empty(t, Input(in))
}
