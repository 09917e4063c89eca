package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/config"
	"github.com/taskbench/taskbench-go/internal/logging"
	"github.com/taskbench/taskbench-go/internal/repository"
	"github.com/taskbench/taskbench-go/internal/store"
)

const usage = `taskbench - to-do client

Usage:
  taskbench signup <email> <password>
  taskbench login <email> <password>
  taskbench logout
  taskbench whoami
  taskbench password <old> <new>
  taskbench tasks <list|add|done|rm> [args]
  taskbench categories <list|add|rename|rm> [args]
  taskbench stats
  taskbench premium <status|activate|deactivate>
  taskbench compose [title]
`

// app wires the gateway and repositories behind the subcommands.
type app struct {
	gateway       *auth.Gateway
	tasks         *repository.Tasks
	categories    *repository.Categories
	statistics    *repository.Statistics
	subscription  *repository.Subscription
	suggestions   *repository.Suggestions
	user          *repository.User
	quietInterval config.SuggestConfig
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.Logging); err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up logging:", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	db, err := store.OpenSQLite(cfg.Auth.StorePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer db.Close()

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	gateway := auth.NewGateway(client, db)
	subscription := repository.NewSubscription(gateway, client)

	a := &app{
		gateway:       gateway,
		tasks:         repository.NewTasks(gateway, client),
		categories:    repository.NewCategories(gateway, client),
		statistics:    repository.NewStatistics(gateway, client),
		subscription:  subscription,
		suggestions:   repository.NewSuggestions(gateway, client),
		user:          repository.NewUser(gateway, subscription),
		quietInterval: cfg.Suggest,
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "signup":
		return a.signup(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.gateway.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "password":
		return a.changePassword(ctx, args)
	case "tasks":
		return a.runTasks(ctx, args)
	case "categories":
		return a.runCategories(ctx, args)
	case "stats":
		return a.stats(ctx)
	case "premium":
		return a.premium(ctx, args)
	case "compose":
		return a.compose(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) signup(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskbench signup <email> <password>")
	}
	if err := a.gateway.SignUp(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("account created, logged in as", args[0])
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskbench login <email> <password>")
	}
	if err := a.gateway.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("logged in as", args[0])
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.user.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Println(user.Email)
	return nil
}

func (a *app) changePassword(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskbench password <old> <new>")
	}
	if err := a.gateway.ChangePassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("password changed")
	return nil
}
