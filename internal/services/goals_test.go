package services

import (
	"context"
	"testing"

	"github.com/celadonapp/celadon-backend/internal/models"
	"github.com/celadonapp/celadon-backend/internal/store"
)

func TestGoalLifecycle(t *testing.T) {
	s, st := newTestState(t, nil)
	ctx := context.Background()

	goal := s.AddGoal(ctx, "Learn watercolor")
	if goal.ID == "" || goal.Completed {
		t.Fatalf("new goal should be incomplete with an id, got %+v", goal)
	}

	s.AddTask(ctx, goal.ID, "Buy brushes")
	s.AddTask(ctx, goal.ID, "Paint a sky")
	goals := s.Goals()
	if len(goals) != 1 || len(goals[0].Tasks) != 2 {
		t.Fatalf("expected one goal with two tasks, got %+v", goals)
	}

	s.ToggleTask(ctx, goal.ID, goals[0].Tasks[0].ID)
	goals = s.Goals()
	if !goals[0].Tasks[0].Completed {
		t.Fatalf("task should be completed after toggle")
	}

	s.RemoveTask(ctx, goal.ID, goals[0].Tasks[1].ID)
	goals = s.Goals()
	if len(goals[0].Tasks) != 1 {
		t.Fatalf("expected one task after removal, got %d", len(goals[0].Tasks))
	}

	s.ToggleGoalCompletion(ctx, goal.ID)
	goals = s.Goals()
	if !goals[0].Completed {
		t.Fatalf("goal should be completed after toggle")
	}

	// Mutations mirror into the store.
	raw, ok, _ := st.Get(ctx, store.KeyGoals)
	if !ok {
		t.Fatalf("goals not persisted")
	}
	persisted := store.ParseOrDefault(raw, []models.Goal{})
	if len(persisted) != 1 || len(persisted[0].Tasks) != 1 {
		t.Fatalf("persisted goals out of sync: %+v", persisted)
	}
}

func TestGoalMutationsIgnoreUnknownIDs(t *testing.T) {
	s, _ := newTestState(t, nil)
	ctx := context.Background()

	goal := s.AddGoal(ctx, "Stay calm")
	s.AddTask(ctx, goal.ID, "Breathe")
	before := s.Goals()

	s.ToggleGoalCompletion(ctx, "missing")
	s.AddTask(ctx, "missing", "orphan")
	s.ToggleTask(ctx, goal.ID, "missing")
	s.ToggleTask(ctx, "missing", before[0].Tasks[0].ID)
	s.RemoveTask(ctx, goal.ID, "missing")

	after := s.Goals()
	if len(after) != 1 || len(after[0].Tasks) != 1 {
		t.Fatalf("unknown ids must be silent no-ops, got %+v", after)
	}
	if after[0].Completed != before[0].Completed || after[0].Tasks[0].Completed != before[0].Tasks[0].Completed {
		t.Fatalf("unknown ids must not flip flags")
	}
}

func TestGoalProgress(t *testing.T) {
	// No tasks: the completion flag alone decides.
	if got := GoalProgress(models.Goal{Completed: false}); got != 0 {
		t.Fatalf("incomplete taskless goal should be 0, got %d", got)
	}
	if got := GoalProgress(models.Goal{Completed: true}); got != 100 {
		t.Fatalf("completed taskless goal should be 100, got %d", got)
	}

	// With tasks: rounded share of completed tasks, flag ignored.
	goal := models.Goal{
		Completed: true,
		Tasks: []models.Task{
			{Completed: true},
			{Completed: false},
			{Completed: false},
		},
	}
	if got := GoalProgress(goal); got != 33 {
		t.Fatalf("1/3 should round to 33, got %d", got)
	}

	goal.Tasks[1].Completed = true
	if got := GoalProgress(goal); got != 67 {
		t.Fatalf("2/3 should round to 67, got %d", got)
	}

	goal.Tasks[2].Completed = true
	if got := GoalProgress(goal); got != 100 {
		t.Fatalf("3/3 should be 100, got %d", got)
	}
}
