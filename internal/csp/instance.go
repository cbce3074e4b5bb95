package csp

import (
	"context"
	"time"

	"github.com/rhyrak/coursecsp/internal/config"
	"github.com/rhyrak/coursecsp/pkg/model"
)

// Instance is a per-request owned solve: its own indices, its own
// constraint index, its own variable list. Nothing here is shared
// across requests, per spec.md §5.
type Instance struct {
	Input      *model.Input
	Indices    *model.Indices
	Variables  []*model.Variable
	Index      *Index
	SectionIDs []string
}

// NewInstance builds every per-request structure a Search needs from
// an already-validated, already-normalised Input.
func NewInstance(in *model.Input, cfg *config.Config) *Instance {
	indices := model.BuildIndices(in)

	teachers := make([]model.Teacher, 0, len(in.Instructors)+len(in.TAs))
	for _, i := range in.Instructors {
		teachers = append(teachers, model.Teacher{
			ID:                   i.InstructorID,
			Name:                 i.Name,
			QualifiedCourses:     i.QualifiedCourses,
			UnavailableTimeSlots: i.UnavailableTimeSlots,
		})
	}
	for _, t := range in.TAs {
		teachers = append(teachers, model.Teacher{
			ID:                   t.TaID,
			Name:                 t.Name,
			QualifiedCourses:     t.QualifiedCourses,
			UnavailableTimeSlots: t.UnavailableTimeSlots,
		})
	}

	sectionIDs := make([]string, len(in.Sections))
	for i, s := range in.Sections {
		sectionIDs[i] = s.SectionID
	}

	idx := NewIndex(len(in.Sections), teachers, in.Rooms, indices.CourseByID, cfg.SlotsMax, cfg.AlignPlacements, cfg.RoomlessCourseIDs)
	variables := BuildVariables(in, indices, cfg.HardPriorityCourseIDs)

	return &Instance{
		Input:      in,
		Indices:    indices,
		Variables:  variables,
		Index:      idx,
		SectionIDs: sectionIDs,
	}
}

// Solve runs one deterministic search, and — when cfg.RandomRetries is
// positive and the deterministic run fails — the optional randomized
// retry policy layer described in the Design Notes: reshuffle the
// variable order and retry with a fresh index, up to RandomRetries
// additional attempts. The deterministic core (the first attempt)
// never depends on randomness for correctness; retries are strictly
// an availability improvement layered on top.
//
// Returns the Instance the returned Result was produced against, so a
// caller can render or export the solved grid without re-running the
// search.
func Solve(ctx context.Context, in *model.Input, cfg *config.Config) (*Instance, *Result) {
	inst := NewInstance(in, cfg)
	result := runOnce(ctx, inst, cfg)
	if result.Success || cfg.RandomRetries <= 0 {
		return inst, result
	}

	for attempt := 0; attempt < cfg.RandomRetries; attempt++ {
		retryInst := NewInstance(in, cfg)
		shuffleVariables(retryInst.Variables, attempt)
		retryResult := runOnce(ctx, retryInst, cfg)
		if retryResult.Success {
			return retryInst, retryResult
		}
		inst, result = retryInst, retryResult
	}
	return inst, result
}

func runOnce(ctx context.Context, inst *Instance, cfg *config.Config) *Result {
	deadline := time.Now().Add(cfg.WallClockBudget)
	search := NewSearch(inst.Variables, inst.Index, inst.SectionIDs, deadline, cfg.MaxIterations, cfg.FailureHistoryCapacity)
	return search.Run(ctx)
}

// shuffleVariables reshuffles the variable order deterministically per
// attempt (a simple LCG keyed on the attempt number) rather than
// pulling in a global RNG — repeated calls with the same attempt index
// always produce the same order, which keeps retry behaviour
// reproducible for a given attempt count even though the overall
// policy is "randomized".
func shuffleVariables(variables []*model.Variable, attempt int) {
	seed := uint64(attempt*2654435761 + 1)
	for i := len(variables) - 1; i > 0; i-- {
		seed = seed*6364136223846793005 + 1442695040888963407
		j := int(seed % uint64(i+1))
		variables[i], variables[j] = variables[j], variables[i]
	}
}
