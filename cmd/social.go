package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/fivhter/internal/formatter"
	"github.com/desertthunder/fivhter/internal/metrics"
	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/ui"
)

// voteCommand toggles the signed in user's vote on a list
func voteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "vote",
		Aliases:   []string{"star"},
		Usage:     "Vote for a list, or take the vote back",
		Arguments: []cli.Argument{&cli.StringArg{Name: "list-id"}},
		Action:    r.Vote,
	}
}

// commentCommand handles list comments
func commentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "comment",
		Usage: "List comments",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Comment on a list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "list-id"},
					&cli.StringArg{Name: "text"},
				},
				Action: r.CommentAdd,
			},
			{
				Name:      "ls",
				Usage:     "Show the comments on a list, oldest first",
				Arguments: []cli.Argument{&cli.StringArg{Name: "list-id"}},
				Action:    r.CommentList,
			},
		},
	}
}

// profileCommand shows and edits profiles
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Profile operations",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a profile, the signed in user's by default",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Update the signed in user's profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "New username"},
					&cli.StringFlag{Name: "avatar-url", Usage: "New avatar URL"},
					&cli.BoolFlag{Name: "clear-avatar", Usage: "Remove the avatar"},
				},
				Action: r.ProfileUpdate,
			},
		},
	}
}

// metricsCommand dumps the process metrics in the prometheus text format
func metricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "metrics",
		Usage:  "Print backend call metrics for this process",
		Action: r.Metrics,
	}
}

func (r *Runner) Vote(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	res := mutated(r, r.client.ToggleVote(ctx, cmd.StringArg("list-id")))
	return render(r, cmd, res, func(v models.VoteState) error {
		if v.Voted {
			return r.writePlain("%s voted for %s (%d votes)\n", ui.Styles.OK("★"), v.ListID, v.VoteCount)
		}
		return r.writePlain("%s removed vote from %s (%d votes)\n", ui.Styles.Warn("☆"), v.ListID, v.VoteCount)
	})
}

func (r *Runner) CommentAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	res := mutated(r, r.client.AddComment(ctx, cmd.StringArg("list-id"), cmd.StringArg("text")))
	return render(r, cmd, res, func(c models.Comment) error {
		return r.writePlain("%s commented on %s\n", ui.Styles.OK("✓"), c.ListID)
	})
}

func (r *Runner) CommentList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	res := r.client.ListComments(ctx, cmd.StringArg("list-id"))
	return render(r, cmd, res, func(comments []models.Comment) error {
		if len(comments) == 0 {
			return r.writePlain("%s\n", ui.Styles.Help("no comments yet"))
		}
		now := time.Now()
		for _, c := range comments {
			r.writePlain("%s %s\n  %s\n", ui.Styles.Title(c.Username), ui.Styles.Help(formatter.Age(c.CreatedAt, now)), c.Content)
		}
		return nil
	})
}

func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		sess, _ := r.client.GetSession(ctx).Unwrap()
		if !sess.SignedIn() {
			return render(r, cmd, shared.Fail[models.Profile](shared.ErrNotAuthenticated), nil)
		}
		id = sess.User.ID
	}

	return render(r, cmd, r.client.GetProfile(ctx, id), r.printProfile)
}

func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	var patch models.ProfilePatch
	if cmd.IsSet("username") {
		patch.Username = models.Some(cmd.String("username"))
	}
	switch {
	case cmd.Bool("clear-avatar"):
		patch.AvatarURL = models.Null[string]()
	case cmd.IsSet("avatar-url"):
		patch.AvatarURL = models.Some(cmd.String("avatar-url"))
	}

	if err := r.open(); err != nil {
		return err
	}

	res := mutated(r, r.client.UpdateProfile(ctx, patch))
	return render(r, cmd, res, r.printProfile)
}

func (r *Runner) printProfile(p models.Profile) error {
	r.writePlain("%s %s\n", ui.Styles.Title(p.Username), ui.Styles.Help("("+p.ID+")"))
	if p.AvatarURL != nil {
		r.writePlain("avatar: %s\n", *p.AvatarURL)
	}
	return r.writePlain("joined: %s\n", p.CreatedAt.Format("Jan 2, 2006"))
}

// Metrics opens the backend so the store gauge is populated, then prints every registered series.
func (r *Runner) Metrics(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}
	return metrics.WriteText(r.output, r.registry)
}
