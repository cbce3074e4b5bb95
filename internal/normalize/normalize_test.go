package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/coursecsp/pkg/model"
)

func TestKind_AcceptsLooseAliases(t *testing.T) {
	require.Equal(t, model.KindLecture, Kind("lec"))
	require.Equal(t, model.KindLecture, Kind("Lecture"))
	require.Equal(t, model.KindTutorial, Kind("tut"))
	require.Equal(t, model.KindLab, Kind("lab"))
}

func TestKind_PassesThroughUnrecognised(t *testing.T) {
	require.Equal(t, model.Kind("Seminar"), Kind("Seminar"))
}

func TestCourse_DefaultsDurationToOne(t *testing.T) {
	c := Course(model.Course{CourseID: "CS101", Type: "lec"})
	require.Equal(t, model.KindLecture, c.Type)
	require.Equal(t, 1, c.Duration)
}

func TestCourse_KeepsExplicitDuration(t *testing.T) {
	c := Course(model.Course{CourseID: "CS101", Type: "lab", Duration: 3})
	require.Equal(t, 3, c.Duration)
}

func TestInput_NormalisesEveryCourseAndRoom(t *testing.T) {
	in := &model.Input{
		Courses: []model.Course{{CourseID: "A", Type: "lec"}},
		Rooms:   []model.Room{{RoomID: "R1", Type: "lab"}},
	}
	Input(in)
	require.Equal(t, model.KindLecture, in.Courses[0].Type)
	require.Equal(t, model.KindLab, in.Rooms[0].Type)
}
