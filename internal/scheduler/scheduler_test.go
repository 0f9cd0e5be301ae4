package scheduler

import (
	"errors"
	"testing"

	"focusfit/internal/models"
)

type fakeUsers struct {
	ids []int64
	err error
}

func (f *fakeUsers) ListUserIDs() ([]int64, error) {
	return f.ids, f.err
}

type recordingEvaluator struct {
	evaluated []int64
	failFor   int64
}

func (e *recordingEvaluator) Evaluate(userID int64, day string) (models.StreakVerdict, error) {
	e.evaluated = append(e.evaluated, userID)
	if userID == e.failFor {
		return models.StreakVerdict{}, errors.New("boom")
	}
	return models.StreakVerdict{}, nil
}

func (e *recordingEvaluator) Today() string {
	return "2025-06-11"
}

func TestSweepEvaluatesAllUsers(t *testing.T) {
	eval := &recordingEvaluator{}
	sweep(&fakeUsers{ids: []int64{1, 2, 3}}, eval)

	if len(eval.evaluated) != 3 {
		t.Fatalf("evaluated %v, want all three users", eval.evaluated)
	}
}

func TestSweepContinuesPastFailures(t *testing.T) {
	eval := &recordingEvaluator{failFor: 2}
	sweep(&fakeUsers{ids: []int64{1, 2, 3}}, eval)

	if len(eval.evaluated) != 3 {
		t.Errorf("evaluated %v, want the sweep to continue past user 2", eval.evaluated)
	}
}

func TestSweepSkipsWhenListingFails(t *testing.T) {
	eval := &recordingEvaluator{}
	sweep(&fakeUsers{err: errors.New("db down")}, eval)

	if len(eval.evaluated) != 0 {
		t.Errorf("evaluated %v, want none when listing fails", eval.evaluated)
	}
}
