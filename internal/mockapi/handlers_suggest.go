package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/taskbench/taskbench-go/internal/api"
)

// GetSuggestions handles POST ai/suggestions/.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	var req api.SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	now := time.Now()
	if req.Timestamp != "" {
		if t, err := time.Parse(wireTimeLayout, req.Timestamp); err == nil {
			now = t
		}
	}

	sug := s.suggester.Suggest(req.Title, now)

	resp := api.SuggestionsResponse{Suggestions: sug.subtasks}
	if sug.deadline != nil {
		deadline := sug.deadline.Format(wireTimeLayout)
		resp.SuggestedDpc.Deadline = &deadline
	}
	if sug.priority != nil {
		priority := 0
		if *sug.priority {
			priority = 1
		}
		resp.SuggestedDpc.Priority = &priority
	}
	// A category is only suggested when the user already has one with a
	// matching name; the mock never invents category IDs.
	if sug.category != "" {
		for _, cat := range s.store.ListCategories(userID) {
			if strings.EqualFold(cat.Name, sug.category) {
				id := cat.ID
				name := cat.Name
				resp.SuggestedDpc.CategoryID = &id
				resp.SuggestedDpc.CategoryName = &name
				break
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
