// Package blogcmd implements the `storefront blog` command group.
package blogcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront blog`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the blog command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "blog",
		Short: "Read and write the farm journal",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newList(ctx),
		newShow(ctx),
		newPost(ctx),
		newLike(ctx),
		newComment(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newList(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journal posts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			out := cmd.OutOrStdout()
			for _, p := range svc.Blog.Posts() {
				fmt.Fprintf(out, "%s  %s — %s (%d likes, %d comments)\n",
					p.CreatedAt.Format("2006-01-02"), p.Title, p.Author.Name,
					p.Likes, len(p.Comments))
				fmt.Fprintf(out, "    id: %s\n", p.ID)
			}
			return nil
		},
	}
}

func newShow(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show one post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			p, err := svc.Blog.Post(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", p.Title)
			fmt.Fprintf(out, "by %s on %s", p.Author.Name, p.CreatedAt.Format("2006-01-02"))
			if len(p.Tags) > 0 {
				fmt.Fprintf(out, " | %s", strings.Join(p.Tags, ", "))
			}
			fmt.Fprintf(out, " | %d likes\n\n%s\n", p.Likes, p.Content)
			for _, cm := range p.Comments {
				fmt.Fprintf(out, "\n  %s (%s):\n  %s\n",
					cm.Author.Name, cm.CreatedAt.Format("2006-01-02"), cm.Content)
			}
			return nil
		},
	}
}

func newPost(ctx *shared.Context) *cobra.Command {
	var title, content, excerpt, tags, imageURL string
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish a new journal post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			post, err := svc.Blog.Add(title, content, excerpt, splitCSV(tags), imageURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published: %s (id: %s)\n", post.Title, post.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "Post title (required)")
	f.StringVar(&content, "content", "", "Post body (required)")
	f.StringVar(&excerpt, "excerpt", "", "Short preview (derived from the body when empty)")
	f.StringVar(&tags, "tags", "", "Comma-separated tags")
	f.StringVar(&imageURL, "image", "", "Cover image URL")

	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newLike(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Blog.Like(args[0]); err != nil {
				return err
			}
			p, err := svc.Blog.Post(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d likes.\n", p.Title, p.Likes)
			return nil
		},
	}
}

func newComment(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <post-id> <text>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			comment, err := svc.Blog.AddComment(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment added (id: %s)\n", comment.ID)
			return nil
		},
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
