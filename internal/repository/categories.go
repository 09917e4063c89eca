package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// CategoryAPI is the slice of the API client the category repository uses.
type CategoryAPI interface {
	GetCategories(ctx context.Context, access string) ([]api.CategoryResponse, error)
	CreateCategory(ctx context.Context, access string, req api.CategoryCreateRequest) (*api.CategoryResponse, error)
	UpdateCategory(ctx context.Context, access string, categoryID int64, req api.CategoryUpdateRequest) (*api.CategoryResponse, error)
	DeleteCategory(ctx context.Context, access string, categoryID int64) error
}

// Categories is the network-backed category repository. It keeps a preloaded
// in-memory cache that search and listing run against; deletes that fail
// remotely still hide the category locally via the tombstone set.
type Categories struct {
	gateway *auth.Gateway
	client  CategoryAPI

	mu      sync.Mutex
	cache   []domain.Category
	deleted map[int64]struct{}
}

// NewCategories creates the category repository.
func NewCategories(gateway *auth.Gateway, client CategoryAPI) *Categories {
	return &Categories{
		gateway: gateway,
		client:  client,
		deleted: make(map[int64]struct{}),
	}
}

// Preload replaces the cache with the server's category list.
func (r *Categories) Preload(ctx context.Context) error {
	return r.gateway.WithAuth(ctx, func(ctx context.Context, access string) error {
		resp, err := r.client.GetCategories(ctx, access)
		if err != nil {
			return err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		r.cache = r.cache[:0]
		for _, cr := range resp {
			if _, gone := r.deleted[cr.ID]; gone {
				continue
			}
			id := cr.ID
			r.cache = append(r.cache, domain.Category{ID: &id, Name: cr.Name})
		}
		log.Debug().Int("count", len(r.cache)).Msg("preloaded categories")
		return nil
	})
}

// All returns cached categories whose name contains query, case-insensitively,
// sorted by name. An empty query returns everything.
func (r *Categories) All(query string) []domain.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Category, 0, len(r.cache))
	for _, c := range r.cache {
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Save creates the category when it has no ID and renames it otherwise.
func (r *Categories) Save(ctx context.Context, category domain.Category) (domain.Category, error) {
	if category.ID != nil {
		return r.update(ctx, category)
	}

	saved, err := auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.Category, error) {
		resp, err := r.client.CreateCategory(ctx, access, api.CategoryCreateRequest{Name: category.Name})
		if err != nil {
			return domain.Category{}, err
		}
		return domain.Category{ID: &resp.ID, Name: resp.Name}, nil
	})
	if err != nil {
		return domain.Category{}, err
	}

	if err := r.Preload(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to reload categories after create")
	}
	return saved, nil
}

func (r *Categories) update(ctx context.Context, category domain.Category) (domain.Category, error) {
	updated, err := auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.Category, error) {
		resp, err := r.client.UpdateCategory(ctx, access, *category.ID, api.CategoryUpdateRequest{Name: category.Name})
		if err != nil {
			return domain.Category{}, err
		}
		return domain.Category{ID: &resp.ID, Name: resp.Name}, nil
	})
	if err != nil {
		return domain.Category{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.cache {
		if c.ID != nil && *c.ID == *updated.ID {
			r.cache[i] = updated
			return updated, nil
		}
	}
	r.cache = append(r.cache, updated)
	return updated, nil
}

// Delete removes a category. A remote failure still hides the category
// locally, matching the mobile client's behavior.
func (r *Categories) Delete(ctx context.Context, category domain.Category) error {
	if category.ID == nil {
		return errors.New("cannot delete an unsaved category")
	}

	err := r.gateway.WithAuth(ctx, func(ctx context.Context, access string) error {
		return r.client.DeleteCategory(ctx, access, *category.ID)
	})
	if err != nil {
		log.Warn().Err(err).Int64("id", *category.ID).Msg("remote category delete failed, hiding locally")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[*category.ID] = struct{}{}
	kept := r.cache[:0]
	for _, c := range r.cache {
		if c.ID == nil || *c.ID != *category.ID {
			kept = append(kept, c)
		}
	}
	r.cache = kept
	return nil
}
