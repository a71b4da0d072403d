package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/weeklist/internal/domain"
)

type taskRequest struct {
	Description string `json:"description"`
}

// HandleAddTask appends a task to the caller's week list.
// POST /weeklist/{userId}/{weekListId}/addtask
// Request:  {"description":"..."}
// Response: 201 {"message":"...","task":{...}}
func (h *WeekListHandler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.weekLists.AddTask(r.Context(), userID, r.PathValue("weekListId"), req.Description)
	if err != nil {
		writeServiceError(w, "add task", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Task added successfully",
		"task":    toTaskDTO(*task),
	})
}

// HandleUpdateTask replaces a task's description.
// PUT /weeklist/{userId}/{weekListId}/{taskId}/updatetask
func (h *WeekListHandler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.weekLists.UpdateTask(r.Context(), userID, r.PathValue("weekListId"), r.PathValue("taskId"), req.Description)
	if err != nil {
		writeServiceError(w, "update task", err)
		return
	}
	writeMessage(w, http.StatusOK, "Task updated successfully")
}

// HandleDeleteTask removes a task.
// DELETE /weeklist/{userId}/{weekListId}/{taskId}/deletetask
func (h *WeekListHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := h.weekLists.DeleteTask(r.Context(), userID, r.PathValue("weekListId"), r.PathValue("taskId")); err != nil {
		writeServiceError(w, "delete task", err)
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted successfully")
}

// HandleListTasks returns the week list's tasks in insertion order.
// GET /weeklist/{userId}/{weekListId}/alltasks
// Response: {"tasks":[...]}
func (h *WeekListHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	tasks, err := h.weekLists.ListTasks(r.Context(), userID, r.PathValue("weekListId"))
	if err != nil {
		writeServiceError(w, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": toTaskDTOs(tasks)})
}

// HandleMarkTaskDone marks a task done. Runs behind RequireOpenWeekList.
// PUT /weeklist/{userId}/{weekListId}/{taskId}/markdone
func (h *WeekListHandler) HandleMarkTaskDone(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	task, err := h.weekLists.MarkTaskDone(r.Context(), userID, r.PathValue("weekListId"), r.PathValue("taskId"))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCompleted) {
			writeError(w, http.StatusBadRequest, "task is already marked as done")
			return
		}
		writeServiceError(w, "mark task done", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "task marked as done successfully",
		"task":    toTaskDTO(*task),
	})
}
