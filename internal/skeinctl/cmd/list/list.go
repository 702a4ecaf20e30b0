// Package list implements the 'skeinctl list' sub command.
package list

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/internal/skeinctl/client"
)

var listExample = heredoc.Doc(`
	# List all conversations known to skeind
	skeinctl list`)

// Options holds the state of the 'list' sub command.
type Options struct {
	Client *client.SkeindClient
}

// NewCmdList returns the 'list' sub command.
func NewCmdList(newClient func() *client.SkeindClient) *cobra.Command {
	o := &Options{}

	cmd := &cobra.Command{
		Use:                   "list",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"ls"},
		Short:                 "List conversations",
		Long:                  "List conversations, most recently updated first.",
		Example:               listExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Client = newClient()
			return o.Run(cmd)
		},
	}

	return cmd
}

// Run executes the 'list' sub command.
func (o *Options) Run(cmd *cobra.Command) error {
	convs, err := o.Client.ListConversations(cmd.Context())
	if err != nil {
		return fmt.Errorf("list conversations: %w", err)
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "TITLE", "AGENT", "EVENTS", "UPDATED")
	for _, conv := range convs {
		title := conv.Title
		if title == "" {
			title = "<untitled>"
		}
		table.AddRow(conv.ID, title, conv.AgentID, conv.EventCount, conv.UpdatedAt)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)

	return nil
}
