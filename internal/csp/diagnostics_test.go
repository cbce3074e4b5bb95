package csp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/coursecsp/pkg/model"
)

func TestClassifyExhaustedDomain_NoDomain(t *testing.T) {
	idx, _ := newTestIndex()
	v := &model.Variable{CourseID: "MISSING", TargetSectionIndices: []int{0}, Duration: 1}
	s := NewSearch([]*model.Variable{v}, idx, []string{"S1"}, time.Now().Add(time.Minute), 1000, 10)

	info := s.classifyExhaustedDomain(0, 0)
	require.Equal(t, FailureNoDomain, info.Kind)
	require.Contains(t, info.Reason, "No qualified instructor/TA")
}

func TestClassifyExhaustedDomain_FixedCourseNoFit(t *testing.T) {
	idx, _ := newTestIndex()
	v := &model.Variable{CourseID: "CS101", TargetSectionIndices: []int{0}, Duration: 2, Hard: true}
	s := NewSearch([]*model.Variable{v}, idx, []string{"S1"}, time.Now().Add(time.Minute), 1000, 10)

	info := s.classifyExhaustedDomain(0, 0)
	require.Equal(t, FailureFixedCourseNoFit, info.Kind)
}

func TestDiagnostics_HistoryIsBoundedRingBuffer(t *testing.T) {
	d := NewDiagnostics(2)
	d.record(FailureInfo{Reason: "first", Depth: 0})
	d.record(FailureInfo{Reason: "second", Depth: 1})
	d.record(FailureInfo{Reason: "third", Depth: 2})

	require.Len(t, d.History, 2)
	require.Equal(t, "second", d.History[0].Reason)
	require.Equal(t, "third", d.History[1].Reason)
}

func TestDiagnostics_DeepestErrorTracksMaxDepth(t *testing.T) {
	d := NewDiagnostics(10)
	d.record(FailureInfo{Reason: "shallow", Depth: 1})
	d.record(FailureInfo{Reason: "deep", Depth: 5})
	d.record(FailureInfo{Reason: "shallow again", Depth: 2})

	require.Equal(t, "deep", d.DeepestError)
	require.Equal(t, "shallow again", d.LastError)
}
