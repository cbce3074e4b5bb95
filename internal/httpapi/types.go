// Package httpapi is the gin-based transport: JSON request/response
// types, route registration, CORS, and the solve pipeline glue.
//
// Grounded on the teacher's cmd/server/main.go (the CORS middleware
// literal) and the greenmartialarts-shift-scheduler-api pkg/handlers
// ShouldBindJSON idiom; the wire schema itself follows spec.md §6.
package httpapi

import "github.com/rhyrak/coursecsp/pkg/model"

// ScheduleRequest is the wire shape of POST /api/schedule's body, per
// spec.md §6.
type ScheduleRequest struct {
	Courses     []model.Course     `json:"courses"`
	Instructors []model.Instructor `json:"instructors"`
	TAs         []model.TA         `json:"tas"`
	Rooms       []model.Room       `json:"rooms"`
	Groups      []model.Group      `json:"groups,omitempty"`
	Sections    []requestSection   `json:"sections"`
}

// requestSection accepts either "assignedCourses" or "courses" for the
// section's course list, per spec.md §6.
type requestSection struct {
	SectionID       string   `json:"sectionID"`
	GroupID         string   `json:"groupID"`
	Year            int      `json:"year"`
	StudentCount    int      `json:"studentCount"`
	AssignedCourses []string `json:"assignedCourses"`
	Courses         []string `json:"courses"`
}

func (r ScheduleRequest) toInput() *model.Input {
	sections := make([]model.Section, len(r.Sections))
	for i, s := range r.Sections {
		courses := s.AssignedCourses
		if len(courses) == 0 {
			courses = s.Courses
		}
		sections[i] = model.Section{
			SectionID:       s.SectionID,
			GroupID:         s.GroupID,
			Year:            s.Year,
			StudentCount:    s.StudentCount,
			AssignedCourses: courses,
		}
	}
	return &model.Input{
		Courses:     r.Courses,
		Instructors: r.Instructors,
		TAs:         r.TAs,
		Rooms:       r.Rooms,
		Groups:      r.Groups,
		Sections:    sections,
	}
}

// ScheduleCell is one head-cell entry in a section's rendered
// schedule, per spec.md §6's response schema.
type ScheduleCell struct {
	SlotIndex      int    `json:"slotIndex"`
	CourseID       string `json:"courseID"`
	CourseName     string `json:"courseName"`
	Type           string `json:"type"`
	RoomID         string `json:"roomID"`
	InstructorID   string `json:"instructorID"`
	InstructorName string `json:"instructorName"`
	Duration       int    `json:"duration"`
	SlotRange      string `json:"slotRange"`
}

// ScheduleSection is one section's rendered row.
type ScheduleSection struct {
	SectionID    string         `json:"sectionID"`
	GroupID      string         `json:"groupID"`
	Year         int            `json:"year"`
	StudentCount int            `json:"studentCount"`
	Schedule     []ScheduleCell `json:"schedule"`
}

// ScheduleResponse is the success body, per spec.md §6.
type ScheduleResponse struct {
	Success     bool              `json:"success"`
	SlotsMax    int               `json:"slotsMax"`
	SectionsMax int               `json:"sectionsMax"`
	Sections    []ScheduleSection `json:"sections"`
	RunID       string            `json:"runID,omitempty"`
}

// FailureDiagnostics mirrors internal/csp.Diagnostics for the wire.
type FailureDiagnostics struct {
	Iterations    int      `json:"iterations"`
	ElapsedMillis int64    `json:"elapsedMs"`
	FailureChain  []string `json:"failureChain"`
}

// FailureResponse is the failure body, per spec.md §6.
type FailureResponse struct {
	Success      bool               `json:"success"`
	Error        string             `json:"error"`
	RootCause    string             `json:"rootCause"`
	LastAttempt  string             `json:"lastAttempt"`
	FailureChain []string           `json:"failureChain"`
	Diagnostics  FailureDiagnostics `json:"diagnostics"`
	Suggestions  []string           `json:"suggestions,omitempty"`
}

// ValidationErrorResponse is returned when validate.Input rejects the
// request outright, before search ever runs.
type ValidationErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Errors  []string `json:"errors"`
}
