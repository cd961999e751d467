package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"

	"libris/internal/api"
	"libris/internal/app"
	"libris/internal/database"
	"libris/internal/session"
	"libris/internal/store"
	apperrors "libris/pkg/errors"
	"libris/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("libris", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	fs.Usage = func() { printUsage(fs.Output()) }

	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		printUsage(fs.Output())
		return errors.New("no command given")
	}

	cfg, err := loadApplicationConfig(configPath)
	if err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Log); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	env, err := newEnvironment(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: shutdown: %v\n", cerr)
		}
	}()

	command, rest := fs.Arg(0), fs.Args()[1:]
	err = dispatch(ctx, env, command, rest)
	if errors.Is(err, apperrors.ErrRefreshRejected) || errors.Is(err, apperrors.ErrNoActiveSession) {
		fmt.Fprintln(os.Stderr, `Your session has expired; run "libris login" to sign in again.`)
	}
	return err
}

func dispatch(ctx context.Context, env *environment, command string, args []string) error {
	switch command {
	case "login":
		return cmdLogin(ctx, env, args)
	case "logout":
		return cmdLogout(ctx, env)
	case "whoami":
		return cmdWhoami(env)
	case "register":
		return cmdRegister(ctx, env, args)
	case "forgot-password":
		return cmdForgotPassword(ctx, env, args)
	case "reset-password":
		return cmdResetPassword(ctx, env, args)
	case "sessions":
		return cmdSessions(ctx, env, args)
	case "documents":
		return cmdDocuments(ctx, env, args)
	case "read":
		return cmdRead(ctx, env, args)
	case "activity":
		return cmdActivity(ctx, env, args)
	case "catalog":
		return cmdCatalog(ctx, env, args)
	case "users":
		return cmdUsers(ctx, env, args)
	case "help":
		printUsage(os.Stdout)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run \"libris help\")", command)
	}
}

func loadApplicationConfig(configPath string) (*app.Config, error) {
	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}
	cfg, err := app.LoadConfig(paths...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// environment wires the local state store, session manager and API services
// behind a single handle with a single close.
type environment struct {
	cfg     *app.Config
	store   *store.Store
	manager *session.Manager
	client  *api.Client

	accounts   *api.AccountService
	documents  *api.DocumentService
	categories *api.CategoryService
	tags       *api.TagService
	authors    *api.AuthorService
	publishers *api.PublisherService
	languages  *api.LanguageService
	users      *api.UserService
}

func newEnvironment(cfg *app.Config) (*environment, error) {
	st, err := store.Open(database.Config{Path: cfg.State.Path, DSN: cfg.State.DSN})
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	manager, err := session.NewManager(st, session.Config{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout,
	})
	if err != nil {
		err = multierr.Append(err, st.Close())
		return nil, err
	}

	client, err := api.NewClient(st, manager, api.Config{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout,
	})
	if err != nil {
		err = multierr.Append(err, st.Close())
		return nil, err
	}

	return &environment{
		cfg:        cfg,
		store:      st,
		manager:    manager,
		client:     client,
		accounts:   api.NewAccountService(client),
		documents:  api.NewDocumentService(client),
		categories: api.NewCategoryService(client),
		tags:       api.NewTagService(client),
		authors:    api.NewAuthorService(client),
		publishers: api.NewPublisherService(client),
		languages:  api.NewLanguageService(client),
		users:      api.NewUserService(client),
	}, nil
}

func (e *environment) close() error {
	return multierr.Append(e.store.Close(), logger.Sync())
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: libris [-config DIR] COMMAND [ARGS]

Account:
  login -username USER -password PASS   Sign in and persist the session
  logout                                Revoke the session and clear local state
  whoami                                Show the signed-in account
  register                              Create an account
  forgot-password -email ADDR           Request a password reset code
  reset-password                        Reset the password with a code

Sessions:
  sessions list                         List active sessions for this account
  sessions revoke -id SESSION           Revoke one session

Documents:
  documents list                        List documents
  documents get -id DOC                 Show one document
  documents rm -id DOC                  Delete a document
  read -id DOC                          Fetch a document and record the view
  activity [-document DOC]              Show the access log

Catalog:
  catalog categories|tags|authors|publishers|languages

Users:
  users profile                         Show the profile
  users list                            List accounts (admin)
`)
}
