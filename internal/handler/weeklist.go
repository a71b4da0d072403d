package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/weeklist/internal/domain"
	"github.com/msomdec/weeklist/internal/service"
)

// WeekListHandler handles week list and task HTTP requests.
type WeekListHandler struct {
	weekLists *service.WeekListService
}

// NewWeekListHandler creates a new WeekListHandler.
func NewWeekListHandler(weekLists *service.WeekListService) *WeekListHandler {
	return &WeekListHandler{weekLists: weekLists}
}

// HandleCreate adds a week list for the caller.
// POST /weeklist/{userId}
// Request:  {"weekListName":"...","description":"..."}
// Response: 201 {"message":"...","weekList":{...}}
func (h *WeekListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"weekListName"`
		Description string `json:"description"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	weekList, err := h.weekLists.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, "create week list", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Week list added successfully",
		"weekList": toWeekListDTO(weekList, h.weekLists.Now()),
	})
}

// HandleUpdate replaces a week list's description within the edit window.
// PUT /weeklist/{userId}/{weekListId}
// Request:  {"description":"..."}
func (h *WeekListHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.weekLists.UpdateDescription(r.Context(), userID, r.PathValue("weekListId"), req.Description); err != nil {
		writeServiceError(w, "update week list", err)
		return
	}
	writeMessage(w, http.StatusOK, "Week list updated successfully")
}

// HandleDelete removes a week list within the edit window.
// DELETE /weeklist/{userId}/{weekListId}
func (h *WeekListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := h.weekLists.Delete(r.Context(), userID, r.PathValue("weekListId")); err != nil {
		writeServiceError(w, "delete week list", err)
		return
	}
	writeMessage(w, http.StatusOK, "Week list deleted successfully")
}

// HandleList returns the caller's week lists with their time left.
// GET /weeklists/{userId}
// Response: [{...}, ...]
func (h *WeekListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	weekLists, err := h.weekLists.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list week lists", err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekListSummaryDTOs(weekLists, h.weekLists.Now()))
}

// HandleGet returns the full detail of a week list.
// GET /weeklist/{weekListId}
func (h *WeekListHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	weekList, err := h.weekLists.Get(r.Context(), r.PathValue("weekListId"))
	if err != nil {
		writeServiceError(w, "get week list", err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekListDTO(weekList, h.weekLists.Now()))
}

// HandleFeed returns every active, unexpired week list across all users.
// GET /feed
// Response: {"activeWeekLists":[...]}
func (h *WeekListHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.weekLists.Feed(r.Context())
	if err != nil {
		writeServiceError(w, "list feed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"activeWeekLists": toWeekListDTOs(feed, h.weekLists.Now()),
	})
}

// HandleMarkDone completes a week list. Runs behind RequireOpenWeekList.
// PUT /weeklist/{userId}/{weekListId}/markdoneWeeklist
func (h *WeekListHandler) HandleMarkDone(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	weekList, err := h.weekLists.MarkDone(r.Context(), userID, r.PathValue("weekListId"))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCompleted) {
			writeError(w, http.StatusBadRequest, "Week list is already marked as done")
			return
		}
		writeServiceError(w, "mark week list done", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Week list marked as done successfully",
		"weekList": toWeekListDTO(weekList, h.weekLists.Now()),
	})
}
