// Package csp implements the CSP core: variable identification, the
// mutable constraint index and its apply/undo/domain primitives, the
// iterative backtracking search, and failure attribution.
//
// Grounded on the original C++ CSP engine (identifyVariables,
// generateDomain, isValidMove, applyMove, undoMove, solveIterative)
// found in original_source, restructured per spec.md into a per-request
// owned value instead of process-global arrays, and written in the
// teacher repository's idiom (small mutating methods on a state struct,
// plain loops, no propagation beyond direct conflict checks).
package csp

import (
	"github.com/samber/lo"

	"github.com/rhyrak/coursecsp/pkg/model"
)

// Index is the mutable constraint-index state: the timetable grid, the
// per-slot busy-teacher/busy-room sets, and the per-section
// scheduled-course sets. All four are mutated only through Apply/Undo;
// Domain and IsValid read them as of the call, without locking, on the
// assumption of single-threaded use within one request.
type Index struct {
	slotsMax int

	// Grid[slot][sectionIndex]
	Grid [][]model.SlotAssignment

	// BusyTeachers[slot] is the set of teacher IDs occupied at slot.
	BusyTeachers []map[string]bool

	// BusyRooms[slot] is the set of room IDs occupied at slot.
	BusyRooms []map[string]bool

	// SectionScheduled[sectionIndex] is the set of course IDs already
	// scheduled (as a head cell) for that section.
	SectionScheduled []map[string]bool

	// Teachers is the combined instructor+TA pool, instructors first,
	// in input order, matching the discovery order the domain
	// enumeration must preserve for determinism.
	Teachers []model.Teacher

	// Rooms is the room pool in input order.
	Rooms []model.Room

	CourseByID map[string]model.Course

	// AlignToDuration toggles the optional "start slot must be a
	// multiple of duration" rule. Defaults to false; see config.Config.
	AlignToDuration bool

	// roomlessCourseIDs names courses that never require a room (the
	// GRAD1/GRAD2 convention from the source, expressed as per-request
	// data instead of literals baked into the solver).
	roomlessCourseIDs map[string]bool
}

// NewIndex allocates an empty constraint index sized for the given
// number of sections and the teacher/room pools of one request.
func NewIndex(sectionCount int, teachers []model.Teacher, rooms []model.Room, courseByID map[string]model.Course, slotsMax int, alignToDuration bool, roomlessCourseIDs map[string]bool) *Index {
	idx := &Index{
		slotsMax:          slotsMax,
		Grid:              make([][]model.SlotAssignment, slotsMax),
		BusyTeachers:      make([]map[string]bool, slotsMax),
		BusyRooms:         make([]map[string]bool, slotsMax),
		SectionScheduled:  make([]map[string]bool, sectionCount),
		Teachers:          teachers,
		Rooms:             rooms,
		CourseByID:        courseByID,
		AlignToDuration:   alignToDuration,
		roomlessCourseIDs: roomlessCourseIDs,
	}
	for s := 0; s < slotsMax; s++ {
		idx.Grid[s] = make([]model.SlotAssignment, sectionCount)
		idx.BusyTeachers[s] = make(map[string]bool)
		idx.BusyRooms[s] = make(map[string]bool)
	}
	for i := range idx.SectionScheduled {
		idx.SectionScheduled[i] = make(map[string]bool)
	}
	return idx
}

// TeacherByID returns the pooled teacher record, searching instructors
// then TAs (discovery order), and whether it was found.
func (idx *Index) TeacherByID(id string) (model.Teacher, bool) {
	for _, t := range idx.Teachers {
		if t.ID == id {
			return t, true
		}
	}
	return model.Teacher{}, false
}

// TeacherName resolves a teacher ID to its display name, or "" if the
// ID names neither an instructor nor a TA.
func (idx *Index) TeacherName(id string) string {
	if t, ok := idx.TeacherByID(id); ok {
		return t.Name
	}
	return ""
}

func (idx *Index) isTeacherAvailable(teacherID string, slot int) bool {
	if idx.BusyTeachers[slot][teacherID] {
		return false
	}
	t, ok := idx.TeacherByID(teacherID)
	if !ok {
		return true
	}
	for _, s := range t.UnavailableTimeSlots {
		if s == slot {
			return false
		}
	}
	return true
}

// isQualified mirrors the membership check internal/validate uses for
// the same qualifiedCourses field.
func isQualified(qualified []string, courseID string) bool {
	return lo.Contains(qualified, courseID)
}

// IsValid reports whether val is currently a legal placement of var
// against the live index state, per spec.md §4.3.
func (idx *Index) IsValid(v *model.Variable, val model.Value) bool {
	if val.StartSlot+v.Duration > idx.slotsMax {
		return false
	}
	if idx.AlignToDuration && v.Duration > 1 && val.StartSlot%v.Duration != 0 {
		return false
	}

	for s := val.StartSlot; s < val.StartSlot+v.Duration; s++ {
		if !idx.isTeacherAvailable(val.TeacherID, s) {
			return false
		}
	}

	if val.RoomID != "" {
		for s := val.StartSlot; s < val.StartSlot+v.Duration; s++ {
			if idx.BusyRooms[s][val.RoomID] {
				return false
			}
		}
	}

	for _, secIdx := range v.TargetSectionIndices {
		for s := val.StartSlot; s < val.StartSlot+v.Duration; s++ {
			if idx.Grid[s][secIdx].Taken {
				return false
			}
		}
	}

	return true
}

// Domain enumerates every value that currently passes IsValid for var,
// in the deterministic order spec.md §5 requires: slot ascending,
// teacher in instructor-then-TA discovery order, room in input order.
func (idx *Index) Domain(v *model.Variable) []model.Value {
	var domain []model.Value
	c := idx.CourseByID[v.CourseID]

	qualifiedTeachers := lo.FilterMap(idx.Teachers, func(t model.Teacher, _ int) (string, bool) {
		return t.ID, isQualified(t.QualifiedCourses, v.CourseID)
	})
	if len(qualifiedTeachers) == 0 {
		return nil
	}

	qualifiedRooms := idx.qualifiedRoomIDs(c, v)
	if len(qualifiedRooms) == 0 {
		return nil
	}

	for slot := 0; slot <= idx.slotsMax-c.Duration; slot++ {
		if idx.AlignToDuration && c.Duration > 1 && slot%c.Duration != 0 {
			continue
		}

		sectionsFree := true
		for _, secIdx := range v.TargetSectionIndices {
			for s := slot; s < slot+c.Duration; s++ {
				if idx.Grid[s][secIdx].Taken {
					sectionsFree = false
					break
				}
			}
			if !sectionsFree {
				break
			}
		}
		if !sectionsFree {
			continue
		}

		for _, teacherID := range qualifiedTeachers {
			teacherFree := true
			for s := slot; s < slot+c.Duration; s++ {
				if !idx.isTeacherAvailable(teacherID, s) {
					teacherFree = false
					break
				}
			}
			if !teacherFree {
				continue
			}

			for _, roomID := range qualifiedRooms {
				val := model.Value{StartSlot: slot, TeacherID: teacherID, RoomID: roomID}
				if idx.IsValid(v, val) {
					domain = append(domain, val)
				}
			}
		}
	}

	return domain
}

// qualifiedRoomIDs returns the room-less sentinel ([""]) for a
// designated room-less course, otherwise every room whose kind (and,
// for labs with a sub-type, lab sub-type) matches the course, and
// whose capacity covers the variable's total students (waived for
// all-year courses).
func (idx *Index) qualifiedRoomIDs(c model.Course, v *model.Variable) []string {
	if idx.roomlessCourseIDs[c.CourseID] {
		return []string{""}
	}
	matching := lo.Filter(idx.Rooms, func(r model.Room, _ int) bool {
		return roomMatchesCourse(r, c, v.TotalStudents)
	})
	return lo.Map(matching, func(r model.Room, _ int) string { return r.RoomID })
}

// CountQualifiedRooms is the diagnostics-facing counterpart to
// qualifiedRoomIDs, used when attributing a NoPlacement failure to
// "all suitable rooms/slots blocked" (spec.md §4.5).
func (idx *Index) CountQualifiedRooms(c model.Course, totalStudents int) int {
	if idx.roomlessCourseIDs[c.CourseID] {
		return 1
	}
	return lo.CountBy(idx.Rooms, func(r model.Room) bool {
		return roomMatchesCourse(r, c, totalStudents)
	})
}

func roomMatchesCourse(r model.Room, c model.Course, totalStudents int) bool {
	if r.Type != c.Type {
		return false
	}
	if c.Type == model.KindLab && c.LabType != "" && r.LabType != c.LabType {
		return false
	}
	if !c.AllYear && r.Capacity < totalStudents {
		return false
	}
	return true
}

// Apply writes var's placement val into the grid, marks the teacher
// and (if any) room busy across the occupied range, and records the
// course as scheduled for every target section. Only ever called after
// a successful IsValid; performs no checks itself.
func (idx *Index) Apply(v *model.Variable, val model.Value) {
	c := idx.CourseByID[v.CourseID]

	for _, secIdx := range v.TargetSectionIndices {
		idx.SectionScheduled[secIdx][v.CourseID] = true

		idx.Grid[val.StartSlot][secIdx] = model.SlotAssignment{
			Taken:          true,
			CourseID:       v.CourseID,
			Type:           c.Type,
			RoomID:         val.RoomID,
			TeacherID:      val.TeacherID,
			Duration:       v.Duration,
			IsContinuation: false,
		}
		for i := 1; i < v.Duration; i++ {
			idx.Grid[val.StartSlot+i][secIdx] = model.SlotAssignment{
				Taken:          true,
				CourseID:       v.CourseID,
				Type:           c.Type,
				RoomID:         val.RoomID,
				TeacherID:      val.TeacherID,
				Duration:       v.Duration,
				IsContinuation: true,
			}
		}
	}

	for s := val.StartSlot; s < val.StartSlot+v.Duration; s++ {
		idx.BusyTeachers[s][val.TeacherID] = true
		if val.RoomID != "" {
			idx.BusyRooms[s][val.RoomID] = true
		}
	}
}

// Undo is the exact inverse of Apply. Calling it on a move not
// currently applied is undefined, per spec.md §4.3.
func (idx *Index) Undo(v *model.Variable, val model.Value) {
	for _, secIdx := range v.TargetSectionIndices {
		delete(idx.SectionScheduled[secIdx], v.CourseID)
		for s := val.StartSlot; s < val.StartSlot+v.Duration; s++ {
			idx.Grid[s][secIdx] = model.SlotAssignment{}
		}
	}

	for s := val.StartSlot; s < val.StartSlot+v.Duration; s++ {
		delete(idx.BusyTeachers[s], val.TeacherID)
		if val.RoomID != "" {
			delete(idx.BusyRooms[s], val.RoomID)
		}
	}
}
