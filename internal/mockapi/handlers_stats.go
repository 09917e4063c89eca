package mockapi

import (
	"net/http"
	"time"

	"github.com/taskbench/taskbench-go/internal/api"
)

// GetStatistics handles GET statistics (no trailing slash, matching the
// production route table). Weekly bars are normalized against the busiest
// day of the current week so the client can render them directly.
func (s *Server) GetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	now := time.Now()
	counts := s.store.CompletedCounts(userID, now)

	today := int(now.Weekday()+6) % 7
	doneToday := counts[today]
	maxDone := s.store.BumpMaxDone(userID, doneToday)

	peak := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	weekly := make([]float64, len(counts))
	if peak > 0 {
		for i, c := range counts {
			weekly[i] = float64(c) / float64(peak)
		}
	}

	writeJSON(w, http.StatusOK, api.StatisticsResponse{
		DoneToday: doneToday,
		MaxDone:   maxDone,
		Weekly:    weekly,
	})
}
