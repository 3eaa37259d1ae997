// Package chatcmd implements the `storefront chat` command group.
package chatcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cartusagri/storefront/cmd/storefront/shared"
	"github.com/cartusagri/storefront/internal/models"
	"github.com/cartusagri/storefront/internal/service"
)

// Command implements `storefront chat`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the chat command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "chat",
		Short: "Message farm support",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newSend(ctx),
		newList(ctx),
		newUnread(ctx),
		newMarkRead(ctx),
		newPosition(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newSend(ctx *shared.Context) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a message (customers always reach support)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			msg, err := svc.Chat.Send(strings.Join(args, " "), to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent to %s (id: %s)\n", msg.ReceiverID, msg.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Recipient user id (admin only; ignored for customers)")
	return cmd
}

func newList(ctx *shared.Context) *cobra.Command {
	var with string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			out := cmd.OutOrStdout()

			// The admin without a partner gets the open conversations.
			if with == "" && svc.Session.IsAdmin() {
				ids := svc.Chat.Participants()
				if len(ids) == 0 {
					fmt.Fprintln(out, "No conversations.")
					return nil
				}
				fmt.Fprintln(out, "Conversations with:")
				for _, id := range ids {
					fmt.Fprintf(out, "  %s\n", id)
				}
				fmt.Fprintln(out, "Use --with <user-id> to read one.")
				return nil
			}

			msgs := svc.Chat.MessagesWith(with)
			if len(msgs) == 0 {
				fmt.Fprintln(out, "No messages.")
				return nil
			}
			current := svc.Session.Current()
			for _, m := range msgs {
				printMessage(out, m, current)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&with, "with", "", "Conversation partner user id (admin only)")
	return cmd
}

func newUnread(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Count unread messages addressed to you",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", svc.Chat.UnreadCount())
			return nil
		},
	}
}

func newMarkRead(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-read <message-id>...",
		Short: "Mark messages as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Chat.MarkRead(args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", svc.Chat.UnreadCount())
			return nil
		},
	}
}

func newPosition(ctx *shared.Context) *cobra.Command {
	var x, y int
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Show or set the chat widget screen position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service.New(ctx.StoreHome)
			if err != nil {
				return err
			}
			defer svc.Close()

			out := cmd.OutOrStdout()
			pos, ok, err := svc.Chat.WidgetPosition()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
				// Overlay only the flags given; the other axis keeps
				// its stored value.
				if cmd.Flags().Changed("x") {
					pos.X = x
				}
				if cmd.Flags().Changed("y") {
					pos.Y = y
				}
				if err := svc.Chat.SetWidgetPosition(pos); err != nil {
					return err
				}
				fmt.Fprintf(out, "Widget position: %d,%d\n", pos.X, pos.Y)
				return nil
			}
			if !ok {
				fmt.Fprintln(out, "Widget position not set.")
				return nil
			}
			fmt.Fprintf(out, "Widget position: %d,%d\n", pos.X, pos.Y)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&x, "x", 0, "Horizontal offset in pixels")
	f.IntVar(&y, "y", 0, "Vertical offset in pixels")
	return cmd
}

func printMessage(out io.Writer, m models.Message, current *models.User) {
	who := m.SenderID
	if current != nil && m.SenderID == current.ID {
		who = "you"
	}
	flag := " "
	if !m.Read {
		flag = "*"
	}
	fmt.Fprintf(out, "%s [%s] %s: %s (id: %s)\n",
		flag, m.CreatedAt.Local().Format("2006-01-02 15:04"), who, m.Content, m.ID)
}
