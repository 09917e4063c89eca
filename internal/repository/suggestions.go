package repository

import (
	"context"

	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// SuggestionAPI is the slice of the API client the suggestion repository uses.
type SuggestionAPI interface {
	GetSuggestions(ctx context.Context, access string, req api.SuggestionsRequest) (*api.SuggestionsResponse, error)
}

// Suggestions fetches AI task-field proposals for a prompt.
type Suggestions struct {
	gateway *auth.Gateway
	client  SuggestionAPI
}

// NewSuggestions creates the suggestion repository.
func NewSuggestions(gateway *auth.Gateway, client SuggestionAPI) *Suggestions {
	return &Suggestions{gateway: gateway, client: client}
}

// Get requests suggestions for the query. Hints present in the query are
// echoed to the server so it does not override the user's own choices.
func (r *Suggestions) Get(ctx context.Context, q domain.SuggestionQuery) (domain.AiSuggestions, error) {
	req := api.NewSuggestionsRequest(q)
	return auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.AiSuggestions, error) {
		resp, err := r.client.GetSuggestions(ctx, access, req)
		if err != nil {
			return domain.AiSuggestions{}, err
		}
		return api.SuggestionsFromResponse(*resp)
	})
}
