package csp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/coursecsp/internal/config"
	"github.com/rhyrak/coursecsp/pkg/model"
)

func TestSearch_TrivialSuccess(t *testing.T) {
	in := &model.Input{
		Courses: []model.Course{
			{CourseID: "CS101", CourseName: "Intro", Type: model.KindLecture, Duration: 1},
		},
		Instructors: []model.Instructor{
			{InstructorID: "I1", Name: "Ada", QualifiedCourses: []string{"CS101"}},
		},
		Rooms: []model.Room{
			{RoomID: "R1", Type: model.KindLecture, Capacity: 40},
		},
		Sections: []model.Section{
			{SectionID: "S1", GroupID: "G1", Year: 1, StudentCount: 30, AssignedCourses: []string{"CS101"}},
		},
	}

	cfg := config.Default()
	inst, result := Solve(context.Background(), in, cfg)
	require.True(t, result.Success)
	require.NotNil(t, inst)

	taken := false
	for slot := 0; slot < model.SlotsMax; slot++ {
		if inst.Index.Grid[slot][0].Taken {
			taken = true
		}
	}
	require.True(t, taken)
}

func TestSearch_TeacherDoubleBookIsInfeasible(t *testing.T) {
	in := &model.Input{
		Courses: []model.Course{
			{CourseID: "A", Type: model.KindLecture, Duration: model.SlotsMax},
			{CourseID: "B", Type: model.KindLecture, Duration: model.SlotsMax},
		},
		Instructors: []model.Instructor{
			{InstructorID: "I1", QualifiedCourses: []string{"A", "B"}},
		},
		Rooms: []model.Room{
			{RoomID: "R1", Type: model.KindLecture, Capacity: 100},
			{RoomID: "R2", Type: model.KindLecture, Capacity: 100},
		},
		Sections: []model.Section{
			{SectionID: "S1", GroupID: "G1", Year: 1, StudentCount: 10, AssignedCourses: []string{"A"}},
			{SectionID: "S2", GroupID: "G2", Year: 1, StudentCount: 10, AssignedCourses: []string{"B"}},
		},
	}

	cfg := config.Default()
	_, result := Solve(context.Background(), in, cfg)
	require.False(t, result.Success, "the single instructor cannot cover both full-grid courses at once")
	require.NotEmpty(t, result.Diagnostics.DeepestError)
}

func TestSearch_HonoursWallClockBudget(t *testing.T) {
	in := &model.Input{
		Courses: []model.Course{
			{CourseID: "A", Type: model.KindLecture, Duration: 1},
		},
		Sections: []model.Section{
			{SectionID: "S1", GroupID: "G1", Year: 1, StudentCount: 10, AssignedCourses: []string{"A"}},
		},
	}

	cfg := config.Default()
	cfg.WallClockBudget = time.Nanosecond

	_, result := Solve(context.Background(), in, cfg)
	require.False(t, result.Success)
}

func TestSearch_EmptyVariablesSucceedsImmediately(t *testing.T) {
	in := &model.Input{}
	cfg := config.Default()
	_, result := Solve(context.Background(), in, cfg)
	require.True(t, result.Success)
	require.Equal(t, 0, result.Diagnostics.Iterations)
}
