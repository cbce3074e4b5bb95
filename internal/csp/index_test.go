package csp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/coursecsp/pkg/model"
)

func newTestIndex() (*Index, *model.Variable) {
	teachers := []model.Teacher{
		{ID: "I1", Name: "Ada", QualifiedCourses: []string{"CS101"}},
	}
	rooms := []model.Room{
		{RoomID: "R1", Type: model.KindLecture, Capacity: 40},
	}
	courseByID := map[string]model.Course{
		"CS101": {CourseID: "CS101", CourseName: "Intro", Type: model.KindLecture, Duration: 2},
	}
	idx := NewIndex(1, teachers, rooms, courseByID, model.SlotsMax, false, map[string]bool{})
	v := &model.Variable{CourseID: "CS101", TargetSectionIndices: []int{0}, TotalStudents: 30, Duration: 2}
	return idx, v
}

func TestIndex_ApplyUndoRoundTrip(t *testing.T) {
	idx, v := newTestIndex()
	val := model.Value{StartSlot: 4, TeacherID: "I1", RoomID: "R1"}

	require.True(t, idx.IsValid(v, val))
	idx.Apply(v, val)

	require.True(t, idx.Grid[4][0].Taken)
	require.True(t, idx.Grid[5][0].Taken)
	require.True(t, idx.Grid[5][0].IsContinuation)
	require.True(t, idx.BusyTeachers[4]["I1"])
	require.True(t, idx.BusyRooms[5]["R1"])

	idx.Undo(v, val)

	require.Equal(t, model.SlotAssignment{}, idx.Grid[4][0])
	require.Equal(t, model.SlotAssignment{}, idx.Grid[5][0])
	require.False(t, idx.BusyTeachers[4]["I1"])
	require.False(t, idx.BusyRooms[5]["R1"])
}

func TestIndex_IsValidRejectsOverrun(t *testing.T) {
	idx, v := newTestIndex()
	val := model.Value{StartSlot: model.SlotsMax - 1, TeacherID: "I1", RoomID: "R1"}
	require.False(t, idx.IsValid(v, val), "a two-slot course starting on the last slot must not fit")
}

func TestIndex_IsValidRejectsDoubleBookedTeacher(t *testing.T) {
	idx, v := newTestIndex()
	val := model.Value{StartSlot: 0, TeacherID: "I1", RoomID: "R1"}
	idx.Apply(v, val)

	other := &model.Variable{CourseID: "CS101", TargetSectionIndices: []int{0}, TotalStudents: 30, Duration: 2}
	overlapping := model.Value{StartSlot: 1, TeacherID: "I1", RoomID: "R1"}
	require.False(t, idx.IsValid(other, overlapping))
}

func TestIndex_DomainIsDeterministicallyOrdered(t *testing.T) {
	idx, v := newTestIndex()
	first := idx.Domain(v)
	second := idx.Domain(v)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)
	for i := 1; i < len(first); i++ {
		require.LessOrEqual(t, first[i-1].StartSlot, first[i].StartSlot)
	}
}

func TestIndex_DomainEmptyWithoutQualifiedTeacher(t *testing.T) {
	idx, _ := newTestIndex()
	v := &model.Variable{CourseID: "UNKNOWN", TargetSectionIndices: []int{0}, TotalStudents: 1, Duration: 1}
	require.Empty(t, idx.Domain(v))
}

func TestIndex_RoomlessCourseSkipsRoomLookup(t *testing.T) {
	teachers := []model.Teacher{{ID: "I1", QualifiedCourses: []string{"GRAD1"}}}
	courseByID := map[string]model.Course{
		"GRAD1": {CourseID: "GRAD1", Type: model.KindLecture, AllYear: true, Duration: 1},
	}
	idx := NewIndex(1, teachers, nil, courseByID, model.SlotsMax, false, map[string]bool{"GRAD1": true})
	v := &model.Variable{CourseID: "GRAD1", TargetSectionIndices: []int{0}, TotalStudents: 500, Duration: 1}

	domain := idx.Domain(v)
	require.NotEmpty(t, domain)
	for _, val := range domain {
		require.Equal(t, "", val.RoomID)
	}
}
