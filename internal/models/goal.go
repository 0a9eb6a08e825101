package models

// Goal is a user-defined objective with an optional task checklist.
//
// Completed is toggled independently of the task list, so a goal can read
// completed while its derived progress is below 100% (and vice versa).
// That mismatch is inherited behavior and is left alone.
type Goal struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Tasks     []Task `json:"tasks"`
}

// Task is a checklist item belonging to exactly one goal.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
