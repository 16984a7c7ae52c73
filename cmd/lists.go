package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/fivhter/internal/auth"
	"github.com/desertthunder/fivhter/internal/formatter"
	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/store"
	"github.com/desertthunder/fivhter/internal/tasks"
	"github.com/desertthunder/fivhter/internal/ui"
)

const itemsPerList = 5

// listsCommand handles creating, browsing and editing lists
func listsCommand(r *Runner) *cli.Command {
	idArg := []cli.Argument{&cli.StringArg{Name: "id"}}

	return &cli.Command{
		Name:    "lists",
		Aliases: []string{"list", "l"},
		Usage:   "Top 5 list operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a list from exactly five ranked items",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "List title"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "List description"},
					&cli.StringFlag{Name: "category", Usage: "Category such as entertainment or travel"},
					&cli.BoolFlag{Name: "private", Usage: "Hide the list from discovery"},
					&cli.StringSliceFlag{
						Name:    "item",
						Aliases: []string{"i"},
						Usage:   `Item as "title[:description]", ranked in the order given`,
					},
				},
				Action: r.ListsCreate,
			},
			{
				Name:      "show",
				Usage:     "Show a list",
				Arguments: idArg,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: card, rendered, text, markdown or csv",
						Value:   "card",
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: `Glamour style for --format rendered ("dark", "light", "notty" or a JSON style file)`,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the export to disk (file for text, directory for markdown, base path for csv)",
					},
				},
				Action: r.ListsShow,
			},
			{
				Name:    "ls",
				Aliases: []string{"browse"},
				Usage:   "Browse lists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "mine", Usage: "Only lists owned by the signed in user"},
					&cli.StringFlag{Name: "owner", Usage: "Only lists owned by this user id"},
					&cli.StringFlag{Name: "category", Usage: `Category filter, "all" for any`},
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Search titles and descriptions"},
					&cli.StringFlag{Name: "sort", Usage: "recent or popular", Value: string(store.SortRecent)},
					&cli.IntFlag{Name: "page", Usage: "0-based page number"},
					&cli.IntFlag{Name: "page-size", Usage: "Lists per page, 0 for all"},
				},
				Action: r.ListsBrowse,
			},
			{
				Name:      "update",
				Usage:     "Update a list and its items",
				Arguments: idArg,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title, ignored when empty"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
					&cli.BoolFlag{Name: "clear-description", Usage: "Remove the description"},
					&cli.StringFlag{Name: "category", Usage: "New category"},
					&cli.BoolFlag{Name: "clear-category", Usage: "Remove the category"},
					&cli.StringFlag{Name: "visibility", Usage: "public or private"},
					&cli.StringSliceFlag{
						Name:    "item",
						Aliases: []string{"i"},
						Usage:   `Item patch as "id=..,title=..,description=..,rank=.."; omit id to add an item`,
					},
				},
				Action: r.ListsUpdate,
			},
			{
				Name:      "export",
				Usage:     "Export lists to disk concurrently, with a manifest",
				ArgsUsage: "[list-id...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "Export every list visible to the signed in user"},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown or txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: fivhter_export_{epoch})",
					},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent export workers", Value: 5},
					&cli.FloatFlag{Name: "rate", Usage: "Lists fetched per second", Value: 5},
				},
				Action: r.ListsExport,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a list with its items, votes and comments",
				Arguments: idArg,
				Action:    r.ListsDelete,
			},
		},
	}
}

// ListsCreate validates the form and creates a list owned by the signed in user.
func (r *Runner) ListsCreate(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringSlice("item")
	if len(raw) != itemsPerList {
		return fmt.Errorf("%w: a list needs exactly %d items, got %d", shared.ErrInvalidArgument, itemsPerList, len(raw))
	}

	params := models.CreateListParams{
		Title: cmd.String("title"),
		Items: parseNewItems(raw),
	}
	if d := cmd.String("description"); d != "" {
		params.Description = &d
	}
	if c := cmd.String("category"); c != "" {
		params.Category = &c
	}
	if cmd.Bool("private") {
		params.Visibility = models.VisibilityPrivate
	}

	if err := auth.ValidateListForm(params.Title, params.Items); err != nil {
		return render(r, cmd, shared.Fail[models.TopFiveList](err), nil)
	}

	if err := r.open(); err != nil {
		return err
	}

	res := mutated(r, r.client.CreateList(ctx, params))
	return render(r, cmd, res, func(l models.TopFiveList) error {
		r.writePlain("%s created %s\n", ui.Styles.OK("✓"), l.ID)
		return r.writePlain("%s\n", formatter.RenderCard(l, 0))
	})
}

// ListsShow prints one list in the requested format, or writes it to disk with --output.
func (r *Runner) ListsShow(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	switch format {
	case "card", "rendered", "text", "markdown", "md", "csv":
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	if err := r.open(); err != nil {
		return err
	}

	res := r.client.GetList(ctx, cmd.StringArg("id"))
	return render(r, cmd, res, func(l models.TopFiveList) error {
		if out := cmd.String("output"); out != "" {
			return r.exportList(l, format, out)
		}

		var data []byte
		var err error
		switch format {
		case "text":
			data, err = formatter.ExportToText(l)
		case "markdown", "md":
			data, err = formatter.ExportToMarkdown(l)
		case "csv":
			data, err = formatter.ExportToCSV(l)
		case "rendered":
			var out string
			out, err = formatter.RenderMarkdown(l, cmd.String("style"), 0)
			data = []byte(out)
		default:
			data = []byte(formatter.RenderCard(l, 0) + "\n")
		}
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	})
}

func (r *Runner) exportList(l models.TopFiveList, format, out string) error {
	switch format {
	case "text":
		path, err := formatter.WriteTextExport(l, out)
		if err != nil {
			return err
		}
		return r.writePlain("%s wrote %s\n", ui.Styles.OK("✓"), path)
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(l, out)
		if err != nil {
			return err
		}
		return r.writePlain("%s wrote %s\n", ui.Styles.OK("✓"), path)
	case "csv":
		result, err := formatter.WriteCSVExport(l, out)
		if err != nil {
			return err
		}
		return r.writePlain("%s wrote %s and %s\n", ui.Styles.OK("✓"), result.ItemsFile, result.MetadataFile)
	default:
		return fmt.Errorf("%w: format %q cannot be written to disk", shared.ErrInvalidArgument, format)
	}
}

// ListsBrowse filters, sorts and pages the visible lists.
func (r *Runner) ListsBrowse(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	q := store.Query{
		OwnerID:  cmd.String("owner"),
		Category: cmd.String("category"),
		Search:   cmd.String("search"),
		SortBy:   store.SortBy(cmd.String("sort")),
		Page:     cmd.Int("page"),
		PageSize: cmd.Int("page-size"),
	}

	if cmd.Bool("mine") {
		sess, _ := r.client.GetSession(ctx).Unwrap()
		if !sess.SignedIn() {
			return render(r, cmd, shared.Fail[[]models.TopFiveList](shared.ErrNotAuthenticated), nil)
		}
		q.OwnerID = sess.User.ID
	}

	res := r.client.ListLists(ctx, q)
	return render(r, cmd, res, func(lists []models.TopFiveList) error {
		if len(lists) == 0 {
			return r.writePlain("%s\n", ui.Styles.Help("no lists found"))
		}
		now := time.Now()
		for _, l := range lists {
			r.writePlain("%s  %s\n", formatter.RenderRow(l), ui.Styles.Help(formatter.Age(l.CreatedAt, now)))
		}
		return nil
	})
}

// ListsExport runs a bulk export of the named lists, or of every visible list with --all.
func (r *Runner) ListsExport(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 && !cmd.Bool("all") {
		return fmt.Errorf("%w: pass list ids or --all", shared.ErrMissingArgument)
	}

	if err := r.open(); err != nil {
		return err
	}

	if cmd.Bool("all") {
		res := r.client.ListLists(ctx, store.Query{})
		lists, ok := res.Unwrap()
		if !ok {
			return render(r, cmd, res, nil)
		}
		for _, l := range lists {
			ids = append(ids, l.ID)
		}
	}

	prog := make(chan tasks.ProgressUpdate, len(ids)*2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range prog {
			r.logger.Info(u.Message, "phase", u.Phase)
		}
	}()

	result, err := tasks.NewExporter(r.client).BulkExport(ctx, prog, ids, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlain("%s exported %d of %d lists to %s\n", ui.Styles.OK("✓"), result.SuccessfulExports, result.TotalLists, result.OutputDirectory)
	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("  %s %s: %s\n", ui.Styles.Err("✗"), res.ListID, res.Error)
		}
	}
	return r.writePlain("manifest: %s\n", result.ManifestPath)
}

// ListsUpdate applies a field level patch to a list.
func (r *Runner) ListsUpdate(ctx context.Context, cmd *cli.Command) error {
	var patch models.ListPatch

	if cmd.IsSet("title") {
		patch.Title = models.Some(cmd.String("title"))
	}
	switch {
	case cmd.Bool("clear-description"):
		patch.Description = models.Null[string]()
	case cmd.IsSet("description"):
		patch.Description = models.Some(cmd.String("description"))
	}
	switch {
	case cmd.Bool("clear-category"):
		patch.Category = models.Null[string]()
	case cmd.IsSet("category"):
		patch.Category = models.Some(cmd.String("category"))
	}
	if cmd.IsSet("visibility") {
		v := models.Visibility(cmd.String("visibility"))
		if !v.Valid() {
			return fmt.Errorf("%w: visibility must be public or private, got %q", shared.ErrInvalidArgument, v)
		}
		patch.Visibility = models.Some(v)
	}

	for _, raw := range cmd.StringSlice("item") {
		ip, err := parseItemPatch(raw)
		if err != nil {
			return err
		}
		patch.Items = append(patch.Items, ip)
	}

	if err := r.open(); err != nil {
		return err
	}

	res := mutated(r, r.client.UpdateList(ctx, cmd.StringArg("id"), patch))
	return render(r, cmd, res, func(l models.TopFiveList) error {
		r.writePlain("%s updated %s\n", ui.Styles.OK("✓"), l.ID)
		return r.writePlain("%s\n", formatter.RenderCard(l, 0))
	})
}

func (r *Runner) ListsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	res := mutated(r, r.client.DeleteList(ctx, id))
	return render(r, cmd, res, func(shared.Empty) error {
		return r.writePlain("%s deleted %s\n", ui.Styles.OK("✓"), id)
	})
}

// parseNewItems ranks items 1..n in the order given. Each value is "title[:description]".
func parseNewItems(raw []string) []models.NewItem {
	items := make([]models.NewItem, 0, len(raw))
	for i, v := range raw {
		title, desc, found := strings.Cut(v, ":")
		item := models.NewItem{Title: strings.TrimSpace(title), Rank: i + 1}
		if desc = strings.TrimSpace(desc); found && desc != "" {
			item.Description = &desc
		}
		items = append(items, item)
	}
	return items
}

// parseItemPatch reads "id=..,title=..,description=..,rank=..". An empty description clears it.
func parseItemPatch(raw string) (models.ItemPatch, error) {
	var ip models.ItemPatch
	for field := range strings.SplitSeq(raw, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return ip, fmt.Errorf("%w: item field %q is not key=value", shared.ErrInvalidArgument, field)
		}

		switch strings.TrimSpace(key) {
		case "id":
			ip.ID = strings.TrimSpace(value)
		case "title":
			ip.Title = models.Some(value)
		case "description":
			if value == "" {
				ip.Description = models.Null[string]()
			} else {
				ip.Description = models.Some(value)
			}
		case "rank":
			rank, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return ip, fmt.Errorf("%w: rank %q", shared.ErrInvalidArgument, value)
			}
			ip.Rank = models.Some(rank)
		default:
			return ip, fmt.Errorf("%w: unknown item field %q", shared.ErrInvalidArgument, key)
		}
	}
	return ip, nil
}
