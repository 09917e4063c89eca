package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/taskbench/taskbench-go/internal/domain"
	"github.com/taskbench/taskbench-go/internal/suggest"
)

const deadlineLayout = "2006-01-02T15:04"

func (a *app) runTasks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: taskbench tasks <list|add|done|rm> [args]")
	}
	switch args[0] {
	case "list":
		return a.listTasks(ctx, args[1:])
	case "add":
		return a.addTask(ctx, args[1:])
	case "done":
		return a.completeTask(ctx, args[1:])
	case "rm":
		return a.removeTask(ctx, args[1:])
	default:
		return fmt.Errorf("unknown tasks subcommand %q", args[0])
	}
}

func (a *app) listTasks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks list", flag.ContinueOnError)
	sortBy := fs.String("sort", "priority", "sort mode: priority or deadline")
	date := fs.String("date", "", "only tasks due on this date (YYYY-MM-DD)")
	category := fs.Int64("category", 0, "only tasks in this category ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode := domain.SortByPriority
	if *sortBy == "deadline" {
		mode = domain.SortByDeadline
	}

	var day *time.Time
	if *date != "" {
		t, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		day = &t
	}

	filter := domain.CategoryFilter{}
	if *category != 0 {
		filter = domain.CategoryFilter{Enabled: true, Category: &domain.Category{ID: category}}
	}

	tasks, err := a.tasks.List(ctx, filter, mode, day)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		printTask(task)
	}
	return nil
}

func printTask(task domain.Task) {
	mark := " "
	if task.Done {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] #%d %s", mark, *task.ID, task.Content)
	if task.HighPriority {
		line += " (!)"
	}
	if task.Deadline != nil {
		line += " due " + task.Deadline.Format(deadlineLayout)
	}
	fmt.Println(line)
	for _, sub := range task.Subtasks {
		subMark := " "
		if sub.Done {
			subMark = "x"
		}
		fmt.Printf("    [%s] %s\n", subMark, sub.Content)
	}
}

func (a *app) addTask(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks add", flag.ContinueOnError)
	deadline := fs.String("deadline", "", "deadline (YYYY-MM-DDTHH:MM)")
	priority := fs.Bool("priority", false, "mark as high priority")
	category := fs.Int64("category", 0, "category ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: taskbench tasks add [flags] <content>")
	}

	task := domain.Task{Content: fs.Arg(0), HighPriority: *priority}
	if *deadline != "" {
		t, err := time.Parse(deadlineLayout, *deadline)
		if err != nil {
			return fmt.Errorf("invalid deadline: %w", err)
		}
		task.Deadline = &t
	}
	if *category != 0 {
		task.CategoryID = category
	}

	saved, err := a.tasks.Save(ctx, task)
	if err != nil {
		return err
	}
	fmt.Printf("created task #%d\n", *saved.ID)
	return nil
}

func (a *app) completeTask(ctx context.Context, args []string) error {
	task, err := a.findTask(ctx, args)
	if err != nil {
		return err
	}
	task.Done = true
	if _, err := a.tasks.Save(ctx, task); err != nil {
		return err
	}
	fmt.Printf("task #%d done\n", *task.ID)
	return nil
}

func (a *app) removeTask(ctx context.Context, args []string) error {
	task, err := a.findTask(ctx, args)
	if err != nil {
		return err
	}
	if err := a.tasks.Delete(ctx, task); err != nil {
		return err
	}
	fmt.Printf("task #%d removed\n", *task.ID)
	return nil
}

func (a *app) findTask(ctx context.Context, args []string) (domain.Task, error) {
	if len(args) != 1 {
		return domain.Task{}, fmt.Errorf("expected a task ID")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return domain.Task{}, fmt.Errorf("invalid task ID: %w", err)
	}

	tasks, err := a.tasks.List(ctx, domain.CategoryFilter{}, domain.SortByPriority, nil)
	if err != nil {
		return domain.Task{}, err
	}
	for _, task := range tasks {
		if task.ID != nil && *task.ID == id {
			return task, nil
		}
	}
	return domain.Task{}, fmt.Errorf("task #%d not found", id)
}

func (a *app) runCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: taskbench categories <list|add|rename|rm> [args]")
	}

	if err := a.categories.Preload(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		for _, cat := range a.categories.All("") {
			fmt.Printf("#%d %s\n", *cat.ID, cat.Name)
		}
		return nil
	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: taskbench categories add <name>")
		}
		cat, err := a.categories.Save(ctx, domain.Category{Name: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("created category #%d\n", *cat.ID)
		return nil
	case "rename":
		if len(args) != 3 {
			return fmt.Errorf("usage: taskbench categories rename <id> <name>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category ID: %w", err)
		}
		if _, err := a.categories.Save(ctx, domain.Category{ID: &id, Name: args[2]}); err != nil {
			return err
		}
		fmt.Println("renamed")
		return nil
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: taskbench categories rm <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category ID: %w", err)
		}
		if err := a.categories.Delete(ctx, domain.Category{ID: &id}); err != nil {
			return err
		}
		fmt.Println("removed")
		return nil
	default:
		return fmt.Errorf("unknown categories subcommand %q", args[0])
	}
}

func (a *app) stats(ctx context.Context) error {
	stats, err := a.statistics.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("done today: %d (record: %d)\n", stats.DoneToday, stats.DoneAllTimeHigh)
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, v := range stats.Weekly {
		bars := int(v * 20)
		fmt.Printf("%s ", days[i])
		for b := 0; b < bars; b++ {
			fmt.Print("#")
		}
		fmt.Println()
	}
	return nil
}

func (a *app) premium(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskbench premium <status|activate|deactivate>")
	}
	switch args[0] {
	case "status":
		status, err := a.subscription.Update(ctx)
		if err != nil {
			return err
		}
		if status.Kind == domain.StatusPremium {
			fmt.Printf("premium, next payment %s\n", status.NextPayment.Format("2006-01-02"))
		} else {
			fmt.Println("free tier")
		}
		return nil
	case "activate":
		result, err := a.subscription.Activate(ctx)
		if err != nil {
			return err
		}
		fmt.Println("confirm payment at:", result.PaymentURL)
		return nil
	case "deactivate":
		if err := a.subscription.Deactivate(ctx); err != nil {
			return err
		}
		fmt.Println("subscription cancelled")
		return nil
	default:
		return fmt.Errorf("unknown premium subcommand %q", args[0])
	}
}

// compose is the interactive task editor. Typed lines become the task title
// and trigger the suggestion cycle; "!N" accepts suggestion N; an empty line
// submits the composed task.
func (a *app) compose(ctx context.Context, args []string) error {
	editor := suggest.NewEditor(a.suggestions, a.tasks,
		suggest.WithQuietInterval(a.quietInterval.QuietInterval),
		suggest.WithMinPromptLen(a.quietInterval.MinPromptLen),
	)
	if len(args) > 0 {
		editor.SetInput(strings.Join(args, " "))
	}

	fmt.Println("compose a task: type a title, !N accepts suggestion N, empty line submits, q quits")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		a.renderEditor(editor)
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()

		switch {
		case line == "q":
			return nil
		case line == "":
			if editor.Input() == "" {
				fmt.Println("nothing to submit")
				continue
			}
			task, err := editor.Submit(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("created task #%d\n", *task.ID)
			return nil
		case strings.HasPrefix(line, "!"):
			n, err := strconv.Atoi(line[1:])
			suggestions := editor.Suggestions()
			if err != nil || n < 1 || n > len(suggestions) {
				fmt.Println("no such suggestion")
				continue
			}
			editor.AcceptSuggestion(suggestions[n-1])
		default:
			editor.SetInput(line)
			// Let the debounced fetch land before redrawing.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case kind := <-editor.Errors():
				fmt.Println("suggestion fetch failed:", kind)
			case <-time.After(a.quietInterval.QuietInterval + 2*time.Second):
			}
		}
	}
}

func (a *app) renderEditor(editor *suggest.Editor) {
	if input := editor.Input(); input != "" {
		fmt.Println("title:", input)
	}
	if d := editor.Deadline(); d != nil {
		fmt.Println("deadline:", d.Format(deadlineLayout))
	}
	if editor.HighPriority() {
		fmt.Println("priority: high")
	}
	if c := editor.Category(); c != nil {
		fmt.Println("category:", c.Name)
	}
	for _, sub := range editor.Subtasks() {
		fmt.Println("  -", sub.Content)
	}
	for i, s := range editor.Suggestions() {
		fmt.Printf("  !%d %s\n", i+1, s)
	}
}
