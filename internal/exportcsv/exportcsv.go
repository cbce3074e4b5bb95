// Package exportcsv renders a solved schedule to CSV, for the CLI
// entry point and the optional debug export endpoint.
//
// Grounded on internal/csvio/writer.go in the teacher repository
// (ExportSchedule / ExportScheduleString / PrintSchedule, all built
// atop gocarina/gocsv) — the row shape is new (this domain's grid is
// slot-indexed, not day/time-indexed); the marshal-to-string and
// marshal-to-file entry points are kept, with no print entry point.
package exportcsv

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/coursecsp/internal/csp"
)

// Row is one head-cell entry, flattened for CSV output.
type Row struct {
	SectionID      string `csv:"section_id"`
	GroupID        string `csv:"group_id"`
	SlotIndex      int    `csv:"slot_index"`
	SlotRange      string `csv:"slot_range"`
	CourseID       string `csv:"course_id"`
	CourseName     string `csv:"course_name"`
	Type           string `csv:"type"`
	Duration       int    `csv:"duration"`
	RoomID         string `csv:"room_id"`
	InstructorID   string `csv:"instructor_id"`
	InstructorName string `csv:"instructor_name"`
}

// Rows flattens a solved Instance into CSV rows, ordered by section
// then ascending slot index, mirroring formatAndFilterSchedule's
// dedup-by-head-cell pass in the teacher writer.
func Rows(inst *csp.Instance) []*Row {
	var rows []*Row
	for secIdx, sec := range inst.Input.Sections {
		for slot := 0; slot < len(inst.Index.Grid); slot++ {
			cell := inst.Index.Grid[slot][secIdx]
			if !cell.Taken || cell.IsContinuation {
				continue
			}
			course := inst.Indices.CourseByID[cell.CourseID]
			slotRange := fmt.Sprintf("%d", slot)
			if cell.Duration > 1 {
				slotRange = fmt.Sprintf("%d-%d", slot, slot+cell.Duration-1)
			}
			rows = append(rows, &Row{
				SectionID:      sec.SectionID,
				GroupID:        sec.GroupID,
				SlotIndex:      slot,
				SlotRange:      slotRange,
				CourseID:       cell.CourseID,
				CourseName:     course.CourseName,
				Type:           string(cell.Type),
				Duration:       cell.Duration,
				RoomID:         cell.RoomID,
				InstructorID:   cell.TeacherID,
				InstructorName: inst.Index.TeacherName(cell.TeacherID),
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SectionID != rows[j].SectionID {
			return rows[i].SectionID < rows[j].SectionID
		}
		return rows[i].SlotIndex < rows[j].SlotIndex
	})
	return rows
}

// ToString marshals a solved Instance to a CSV string.
func ToString(inst *csp.Instance) (string, error) {
	rows := Rows(inst)
	return gocsv.MarshalString(&rows)
}

// ToFile marshals a solved Instance to a CSV file at path, overwriting
// any existing file, mirroring the teacher's ExportSchedule.
func ToFile(inst *csp.Instance, path string) error {
	rows := Rows(inst)

	if _, err := os.Stat(path); err == nil {
		os.Remove(path)
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	return gocsv.MarshalFile(&rows, out)
}
