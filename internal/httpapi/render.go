package httpapi

import (
	"fmt"

	"github.com/rhyrak/coursecsp/internal/csp"
	"github.com/rhyrak/coursecsp/pkg/model"
)

// renderSuccess walks inst.Index.Grid section by section and emits
// only head cells (non-continuation), ascending by slot index, per
// spec.md §6.
//
// Grounded on the original source's timetableToJson: same "istaken &&
// !isCont" filter, same slotRange single-vs-range formatting.
func renderSuccess(inst *csp.Instance, runID string) *ScheduleResponse {
	resp := &ScheduleResponse{
		Success:     true,
		SlotsMax:    model.SlotsMax,
		SectionsMax: len(inst.Input.Sections),
		Sections:    make([]ScheduleSection, len(inst.Input.Sections)),
		RunID:       runID,
	}

	for secIdx, sec := range inst.Input.Sections {
		row := ScheduleSection{
			SectionID:    sec.SectionID,
			GroupID:      sec.GroupID,
			Year:         sec.Year,
			StudentCount: sec.StudentCount,
		}

		for slot := 0; slot < len(inst.Index.Grid); slot++ {
			cell := inst.Index.Grid[slot][secIdx]
			if !cell.Taken || cell.IsContinuation {
				continue
			}
			course := inst.Indices.CourseByID[cell.CourseID]
			row.Schedule = append(row.Schedule, ScheduleCell{
				SlotIndex:      slot,
				CourseID:       cell.CourseID,
				CourseName:     course.CourseName,
				Type:           string(cell.Type),
				RoomID:         cell.RoomID,
				InstructorID:   cell.TeacherID,
				InstructorName: inst.Index.TeacherName(cell.TeacherID),
				Duration:       cell.Duration,
				SlotRange:      slotRange(slot, cell.Duration),
			})
		}

		resp.Sections[secIdx] = row
	}

	return resp
}

func slotRange(start, duration int) string {
	if duration <= 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, start+duration-1)
}

// renderFailure builds the failure body from a csp.Diagnostics, per
// spec.md §4.5 / §6: DeepestError as root cause, LastError as
// secondary context, the bounded history as failureChain, and
// aggregate counters.
func renderFailure(diag *csp.Diagnostics) *FailureResponse {
	rootCause := diag.DeepestError
	if rootCause == "" {
		rootCause = "No valid solution found."
	}

	chain := make([]string, 0, len(diag.History))
	for _, f := range diag.History {
		chain = append(chain, f.Reason)
	}

	return &FailureResponse{
		Success:      false,
		Error:        rootCause,
		RootCause:    rootCause,
		LastAttempt:  diag.LastError,
		FailureChain: chain,
		Diagnostics: FailureDiagnostics{
			Iterations:    diag.Iterations,
			ElapsedMillis: diag.ElapsedMillis,
			FailureChain:  chain,
		},
	}
}
