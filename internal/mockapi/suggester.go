package mockapi

import (
	"strings"
	"time"
)

// Suggester is the mock stand-in for the AI suggestion service. It is a pile
// of keyword heuristics, deterministic on purpose so tests can assert on the
// output.
type Suggester struct{}

type suggestion struct {
	subtasks []string
	deadline *time.Time
	priority *bool
	category string
}

var keywordRules = []struct {
	keywords []string
	subtasks []string
	category string
	urgent   bool
}{
	{
		keywords: []string{"buy", "shop", "groceries", "purchase"},
		subtasks: []string{"Make a shopping list", "Check the budget", "Compare prices"},
		category: "Shopping",
	},
	{
		keywords: []string{"clean", "tidy", "wash", "laundry"},
		subtasks: []string{"Gather supplies", "Sort items", "Finish one room at a time"},
		category: "Home",
	},
	{
		keywords: []string{"study", "learn", "read", "exam", "course"},
		subtasks: []string{"Collect materials", "Outline key topics", "Schedule review sessions"},
		category: "Learning",
	},
	{
		keywords: []string{"meeting", "report", "email", "deadline", "project"},
		subtasks: []string{"Draft an agenda", "Collect input from the team", "Send a follow-up"},
		category: "Work",
		urgent:   true,
	},
	{
		keywords: []string{"workout", "run", "gym", "exercise"},
		subtasks: []string{"Plan the routine", "Prepare gear", "Track the result"},
		category: "Health",
	},
}

var urgencyWords = []string{"urgent", "asap", "immediately", "important"}

// datePhrases maps title phrases onto day offsets from now.
var datePhrases = []struct {
	phrase string
	days   int
}{
	{"today", 0},
	{"tonight", 0},
	{"tomorrow", 1},
	{"next week", 7},
}

// Suggest produces subtask and deadline/priority/category proposals for a
// task title. Titles listing several things ("a, b and c") are split into one
// subtask per item; otherwise a keyword rule supplies stock steps.
func (g *Suggester) Suggest(title string, now time.Time) suggestion {
	lower := strings.ToLower(title)

	out := suggestion{subtasks: splitItems(title)}
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				if len(out.subtasks) == 0 {
					out.subtasks = rule.subtasks
				}
				out.category = rule.category
				if rule.urgent {
					urgent := true
					out.priority = &urgent
				}
				break
			}
		}
		if out.category != "" {
			break
		}
	}
	if len(out.subtasks) == 0 {
		out.subtasks = []string{"Break the task into smaller steps", "Set aside focused time"}
	}

	for _, w := range urgencyWords {
		if strings.Contains(lower, w) {
			urgent := true
			out.priority = &urgent
			break
		}
	}

	out.deadline = findDeadline(lower, now)
	return out
}

// splitItems breaks "a, b and c" style enumerations into one entry per item.
// A title without an enumeration yields nothing.
func splitItems(title string) []string {
	normalized := strings.ReplaceAll(title, " and ", ",")
	parts := strings.Split(normalized, ",")
	if len(parts) < 2 {
		return nil
	}

	var items []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	if len(items) < 2 {
		return nil
	}
	return items
}

// findDeadline turns a date phrase in the title into a concrete evening
// deadline. No phrase means the stock proposal of tomorrow evening.
func findDeadline(lower string, now time.Time) *time.Time {
	days := 1
	for _, dp := range datePhrases {
		if strings.Contains(lower, dp.phrase) {
			days = dp.days
			break
		}
	}
	deadline := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location()).
		AddDate(0, 0, days)
	return &deadline
}
