// Package thread implements the 'skeinctl thread' sub command.
package thread

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/internal/skeinctl/client"
)

var threadExample = heredoc.Doc(`
	# Render the reconstructed display thread of a conversation
	skeinctl thread 9f6a1c2e`)

// Options holds the state of the 'thread' sub command.
type Options struct {
	Client *client.SkeindClient
}

// NewCmdThread returns the 'thread' sub command.
func NewCmdThread(newClient func() *client.SkeindClient) *cobra.Command {
	o := &Options{}

	cmd := &cobra.Command{
		Use:                   "thread CONVERSATION_ID",
		DisableFlagsInUseLine: true,
		Short:                 "Render a conversation's display thread",
		Long:                  "Fetch a conversation's reconstructed display thread and render it.",
		Example:               threadExample,
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Client = newClient()
			return o.Run(cmd, args[0])
		},
	}

	return cmd
}

// Run executes the 'thread' sub command.
func (o *Options) Run(cmd *cobra.Command, conversationID string) error {
	thread, err := o.Client.GetThread(cmd.Context(), conversationID)
	if err != nil {
		return fmt.Errorf("get thread: %w", err)
	}

	renderThread(cmd.OutOrStdout(), thread)

	return nil
}
