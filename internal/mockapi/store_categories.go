package mockapi

import "sort"

// CreateCategory stores a new category for the user.
func (s *Store) CreateCategory(userID int64, name string) *Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := &Category{ID: s.allocateID(), UserID: userID, Name: name}
	s.categories[cat.ID] = cat
	return cat
}

// ListCategories returns the user's categories ordered by ID.
func (s *Store) ListCategories(userID int64) []*Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Category
	for _, cat := range s.categories {
		if cat.UserID == userID {
			out = append(out, cat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateCategory renames a category owned by userID.
func (s *Store) UpdateCategory(userID, categoryID int64, name string) (*Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[categoryID]
	if !ok || cat.UserID != userID {
		return nil, false
	}
	cat.Name = name
	return cat, true
}

// DeleteCategory removes a category and detaches it from any tasks.
func (s *Store) DeleteCategory(userID, categoryID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[categoryID]
	if !ok || cat.UserID != userID {
		return false
	}
	delete(s.categories, categoryID)
	for _, task := range s.tasks {
		if task.CategoryID != nil && *task.CategoryID == categoryID {
			task.CategoryID = nil
		}
	}
	return true
}

// CategoryByID looks up a category owned by userID.
func (s *Store) CategoryByID(userID, categoryID int64) (*Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[categoryID]
	if !ok || cat.UserID != userID {
		return nil, false
	}
	return cat, true
}
