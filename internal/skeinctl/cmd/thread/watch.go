package thread

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/internal/skeinctl/client"
)

var watchExample = heredoc.Doc(`
	# Follow a conversation, re-rendering whenever new events land
	skeinctl watch 9f6a1c2e`)

// WatchOptions holds the state of the 'watch' sub command.
type WatchOptions struct {
	Client *client.SkeindClient
}

// NewCmdWatch returns the 'watch' sub command.
func NewCmdWatch(newClient func() *client.SkeindClient) *cobra.Command {
	o := &WatchOptions{}

	cmd := &cobra.Command{
		Use:                   "watch CONVERSATION_ID",
		DisableFlagsInUseLine: true,
		Short:                 "Follow a conversation's display thread",
		Long: "Follow a conversation's invalidation stream and re-render the " +
			"display thread on every change. Press Ctrl+C to stop.",
		Example: watchExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Client = newClient()
			return o.Run(cmd, args[0])
		},
	}

	return cmd
}

// Run executes the 'watch' sub command. The stream carries no thread data,
// so every invalidation triggers a full refetch and re-render.
func (o *WatchOptions) Run(cmd *cobra.Command, conversationID string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	render := func() {
		thread, err := o.Client.GetThread(ctx, conversationID)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "refetch thread: %v\n", err)
			return
		}
		// Clear screen and repaint from the top.
		fmt.Fprint(out, "\033[2J\033[H")
		renderThread(out, thread)
	}

	render()

	err := o.Client.Watch(ctx, conversationID, func(int64) {
		render()
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch conversation: %w", err)
	}

	return nil
}
