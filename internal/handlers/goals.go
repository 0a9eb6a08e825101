package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/celadonapp/celadon-backend/internal/models"
	"github.com/celadonapp/celadon-backend/internal/services"
)

// goalView is a goal plus its derived progress percentage.
type goalView struct {
	models.Goal
	Progress int `json:"progress"`
}

type GetGoalsResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Goals   []goalView `json:"goals"`
}

type GoalResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Goal    *models.Goal `json:"goal,omitempty"`
}

// GetGoals lists all goals with their progress.
func GetGoals(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(GetGoalsResponse{
			Success: false,
			Message: "Authentication required",
			Goals:   []goalView{},
		})
		return
	}

	goals := state.Goals()
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView{Goal: g, Progress: services.GoalProgress(g)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetGoalsResponse{
		Success: true,
		Goals:   views,
	})
}

type CreateGoalRequest struct {
	Text string `json:"text"`
}

// CreateGoal adds a new goal with an empty checklist.
func CreateGoal(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	goal := state.AddGoal(r.Context(), req.Text)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(GoalResponse{
		Success: true,
		Message: "Goal created successfully",
		Goal:    &goal,
	})
}

type GoalActionRequest struct {
	GoalID string `json:"goal_id"`
	TaskID string `json:"task_id,omitempty"`
	Text   string `json:"text,omitempty"`
}

// ToggleGoal flips a goal's completion flag.
func ToggleGoal(w http.ResponseWriter, r *http.Request) {
	goalAction(w, r, func(req GoalActionRequest) {
		state.ToggleGoalCompletion(r.Context(), req.GoalID)
	})
}

// AddGoalTask appends a checklist item to a goal.
func AddGoalTask(w http.ResponseWriter, r *http.Request) {
	userReq, ok := decodeGoalAction(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(userReq.Text) == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}
	state.AddTask(r.Context(), userReq.GoalID, userReq.Text)
	goalActionOK(w)
}

// ToggleGoalTask flips a task's completion flag.
func ToggleGoalTask(w http.ResponseWriter, r *http.Request) {
	goalAction(w, r, func(req GoalActionRequest) {
		state.ToggleTask(r.Context(), req.GoalID, req.TaskID)
	})
}

// RemoveGoalTask deletes a task from its goal.
func RemoveGoalTask(w http.ResponseWriter, r *http.Request) {
	goalAction(w, r, func(req GoalActionRequest) {
		state.RemoveTask(r.Context(), req.GoalID, req.TaskID)
	})
}

// goalAction wraps the shared decode/auth/respond plumbing of the small
// goal mutations. Unknown identifiers are silent no-ops, so the response
// is success either way.
func goalAction(w http.ResponseWriter, r *http.Request, apply func(GoalActionRequest)) {
	req, ok := decodeGoalAction(w, r)
	if !ok {
		return
	}
	apply(req)
	goalActionOK(w)
}

func decodeGoalAction(w http.ResponseWriter, r *http.Request) (GoalActionRequest, bool) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return GoalActionRequest{}, false
	}

	var req GoalActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return GoalActionRequest{}, false
	}
	if req.GoalID == "" {
		http.Error(w, "Goal id is required", http.StatusBadRequest)
		return GoalActionRequest{}, false
	}
	return req, true
}

func goalActionOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
}
