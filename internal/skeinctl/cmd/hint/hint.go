// Package hint implements the 'skeinctl hint' sub command.
package hint

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/internal/skeinctl/client"
)

var hintExample = heredoc.Doc(`
	# Annotate a pending tool call with an activity hint
	skeinctl hint toolu_0142 "Searching the codebase..."`)

// Options holds the state of the 'hint' sub command.
type Options struct {
	Client *client.SkeindClient
}

// NewCmdHint returns the 'hint' sub command.
func NewCmdHint(newClient func() *client.SkeindClient) *cobra.Command {
	o := &Options{}

	cmd := &cobra.Command{
		Use:                   "hint TOOL_ID TEXT",
		DisableFlagsInUseLine: true,
		Short:                 "Set an activity hint for a pending tool call",
		Long: "Store a short-lived activity hint for a pending tool call. " +
			"The hint shows up next to the call in thread output until it " +
			"expires or the call completes.",
		Example: hintExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Client = newClient()
			return o.Run(cmd, args[0], args[1])
		},
	}

	return cmd
}

// Run executes the 'hint' sub command.
func (o *Options) Run(cmd *cobra.Command, toolID, text string) error {
	if err := o.Client.SetHint(cmd.Context(), toolID, text); err != nil {
		return fmt.Errorf("set hint: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "hint set for %s\n", toolID)

	return nil
}
