package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"libris/internal/api"
	"libris/internal/models"
	"libris/internal/session"
)

func cmdDocuments(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return errors.New("documents: expected list, get or rm")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("documents list", flag.ContinueOnError)
		fs.SetOutput(os.Stdout)
		var opts api.ListDocumentsOptions
		fs.IntVar(&opts.Skip, "skip", 0, "Offset into the result set")
		fs.IntVar(&opts.Limit, "limit", 20, "Page size")
		fs.StringVar(&opts.CategoryID, "category", "", "Filter by category ID")
		fs.StringVar(&opts.Search, "search", "", "Full-text search")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		page, err := env.documents.List(ctx, opts)
		if err != nil {
			return err
		}
		for _, d := range page.Documents {
			fmt.Printf("%s  %-10s  %s\n", d.ID, d.Status, d.Title)
		}
		fmt.Printf("%d of %d documents\n", len(page.Documents), page.Total)
		return nil

	case "get":
		id, err := parseIDFlag("documents get", args[1:])
		if err != nil {
			return err
		}
		doc, err := env.documents.Get(ctx, id)
		if err != nil {
			return err
		}
		printDocument(doc)
		return nil

	case "rm":
		id, err := parseIDFlag("documents rm", args[1:])
		if err != nil {
			return err
		}
		if err := env.documents.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Document %s deleted\n", id)
		return nil

	default:
		return fmt.Errorf("documents: unknown subcommand %q", args[0])
	}
}

// cmdRead fetches a document and records the view in the access log, the
// same sequence a reader opening the document in the browser triggers.
func cmdRead(ctx context.Context, env *environment, args []string) error {
	id, err := parseIDFlag("read", args)
	if err != nil {
		return err
	}

	doc, err := env.documents.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := env.manager.LogAccess(ctx, doc.ID, models.AccessActionView); err != nil {
		return err
	}

	printDocument(doc)
	if doc.Summary != "" {
		fmt.Printf("\n%s\n", doc.Summary)
	}
	return nil
}

// cmdActivity lists the caller's document access trail.
func cmdActivity(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("activity", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	var documentID string
	fs.StringVar(&documentID, "document", "", "Filter by document ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := env.manager.ListAccessLogs(ctx, session.AccessLogFilter{DocumentID: documentID})
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %-9s  %s\n", e.Timestamp.Local().Format("2006-01-02 15:04"), e.Action, e.DocumentID)
	}
	return nil
}

func cmdCatalog(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return errors.New("catalog: expected categories, tags, authors, publishers or languages")
	}

	switch args[0] {
	case "categories":
		categories, err := env.categories.List(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%s  %-10s  %s\n", c.ID, c.Status, c.Name)
		}
		return nil

	case "tags":
		tags, err := env.tags.List(ctx)
		if err != nil {
			return err
		}
		for _, tg := range tags {
			fmt.Printf("%s  %-10s  %s\n", tg.ID, tg.Status, tg.Name)
		}
		return nil

	case "authors":
		authors, err := env.authors.List(ctx)
		if err != nil {
			return err
		}
		for _, a := range authors {
			fmt.Printf("%s  %-10s  %s\n", a.ID, a.Status, a.Name)
		}
		return nil

	case "publishers":
		publishers, err := env.publishers.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range publishers {
			fmt.Printf("%s  %-10s  %s\n", p.ID, p.Status, p.Name)
		}
		return nil

	case "languages":
		languages, err := env.languages.List(ctx)
		if err != nil {
			return err
		}
		for _, l := range languages {
			fmt.Printf("%-5s  %s\n", l.Code, l.Name)
		}
		return nil

	default:
		return fmt.Errorf("catalog: unknown subcommand %q", args[0])
	}
}

func cmdUsers(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return errors.New("users: expected profile or list")
	}

	switch args[0] {
	case "profile":
		user, err := env.users.Profile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> role=%s verified=%t\n", user.Username, user.Email, user.Role, user.IsVerified)
		return nil

	case "list":
		fs := flag.NewFlagSet("users list", flag.ContinueOnError)
		fs.SetOutput(os.Stdout)
		var skip, limit int
		fs.IntVar(&skip, "skip", 0, "Offset into the result set")
		fs.IntVar(&limit, "limit", 20, "Page size")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		page, err := env.users.List(ctx, skip, limit)
		if err != nil {
			return err
		}
		for _, u := range page.Users {
			fmt.Printf("%6d  %-8s  %-20s  %s\n", u.ID, u.Role, u.Username, u.Email)
		}
		fmt.Printf("%d of %d accounts\n", len(page.Users), page.Total)
		return nil

	default:
		return fmt.Errorf("users: unknown subcommand %q", args[0])
	}
}

func parseIDFlag(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	var id string
	fs.StringVar(&id, "id", "", "Document ID")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%s: -id is required", name)
	}
	return id, nil
}

func printDocument(doc *models.Document) {
	fmt.Printf("%s\n", doc.Title)
	fmt.Printf("  id:       %s\n", doc.ID)
	fmt.Printf("  status:   %s (%s)\n", doc.Status, doc.AccessLevel)
	fmt.Printf("  language: %s\n", doc.Language)
	if doc.ISBN != "" {
		fmt.Printf("  isbn:     %s\n", doc.ISBN)
	}
	fmt.Printf("  file:     %s (%d bytes)\n", doc.FileName, doc.FileSize)
	fmt.Printf("  views:    %d, downloads: %d\n", doc.ViewCount, doc.DownloadCount)
}
