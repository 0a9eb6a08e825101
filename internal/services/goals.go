package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/celadonapp/celadon-backend/internal/models"
	"github.com/celadonapp/celadon-backend/internal/store"
)

// Goals returns a copy of the goals collection.
func (s *State) Goals() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Goal, len(s.goals))
	for i, g := range s.goals {
		g.Tasks = append([]models.Task(nil), g.Tasks...)
		out[i] = g
	}
	return out
}

// AddGoal appends a new goal with no tasks.
func (s *State) AddGoal(ctx context.Context, text string) models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := models.Goal{ID: uuid.NewString(), Text: text, Tasks: []models.Task{}}
	s.goals = append(s.goals, goal)
	s.persist(ctx, store.KeyGoals, s.goals)
	return goal
}

// ToggleGoalCompletion flips the goal's completion flag. The flag is
// independent of task-derived progress; the two are not reconciled.
// Unknown ids are silent no-ops.
func (s *State) ToggleGoalCompletion(ctx context.Context, goalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID == goalID {
			s.goals[i].Completed = !s.goals[i].Completed
			s.persist(ctx, store.KeyGoals, s.goals)
			return
		}
	}
}

// AddTask appends a checklist item to the goal.
func (s *State) AddTask(ctx context.Context, goalID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID == goalID {
			s.goals[i].Tasks = append(s.goals[i].Tasks, models.Task{ID: uuid.NewString(), Text: text})
			s.persist(ctx, store.KeyGoals, s.goals)
			return
		}
	}
}

// ToggleTask flips a task's completion flag.
func (s *State) ToggleTask(ctx context.Context, goalID, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != goalID {
			continue
		}
		for j := range s.goals[i].Tasks {
			if s.goals[i].Tasks[j].ID == taskID {
				s.goals[i].Tasks[j].Completed = !s.goals[i].Tasks[j].Completed
				s.persist(ctx, store.KeyGoals, s.goals)
				return
			}
		}
		return
	}
}

// RemoveTask deletes a task from its goal.
func (s *State) RemoveTask(ctx context.Context, goalID, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != goalID {
			continue
		}
		for j := range s.goals[i].Tasks {
			if s.goals[i].Tasks[j].ID == taskID {
				s.goals[i].Tasks = append(s.goals[i].Tasks[:j], s.goals[i].Tasks[j+1:]...)
				s.persist(ctx, store.KeyGoals, s.goals)
				return
			}
		}
		return
	}
}

// GoalProgress is the goal's completion percentage: with no tasks it is
// 100 or 0 from the completion flag alone, otherwise the rounded share of
// completed tasks.
func GoalProgress(goal models.Goal) int {
	if len(goal.Tasks) == 0 {
		if goal.Completed {
			return 100
		}
		return 0
	}
	completed := 0
	for _, t := range goal.Tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(goal.Tasks)) * 100))
}
