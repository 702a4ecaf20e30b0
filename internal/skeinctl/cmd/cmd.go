// Package cmd wires the skeinctl command tree.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/internal/skeinctl/cmd/hint"
	"github.com/skeinlab/skein/internal/skeinctl/cmd/info"
	"github.com/skeinlab/skein/internal/skeinctl/cmd/list"
	"github.com/skeinlab/skein/internal/skeinctl/cmd/thread"
	"github.com/skeinlab/skein/pkg/version"
)

// NewDefaultSkeinCtlCommand creates the `skeinctl` command with default arguments.
func NewDefaultSkeinCtlCommand() *cobra.Command {
	return NewSkeinCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

// NewSkeinCtlCommand builds the skeinctl command tree against the given streams.
func NewSkeinCtlCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var printVersion bool

	cmds := &cobra.Command{
		Use:   "skeinctl",
		Short: "skeinctl inspects agent conversation threads served by skeind",
		Long: heredoc.Docf(`%s
			skeinctl is the CLI for the skein daemon.

			It lists recorded conversations, renders their reconstructed
			display threads, follows live conversations as they grow, and
			annotates pending tool calls with activity hints.`, Banner()),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if printVersion {
				fmt.Fprintln(out, version.Get().String())
				return
			}
			_ = cmd.Help()
		},
	}

	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(errOut)

	flags := cmds.PersistentFlags()
	addGlobalFlags(flags)
	cmds.Flags().BoolVar(&printVersion, "version", false, "Print version information and quit.")

	cmds.AddCommand(
		list.NewCmdList(NewClient),
		thread.NewCmdThread(NewClient),
		thread.NewCmdWatch(NewClient),
		hint.NewCmdHint(NewClient),
		info.NewCmdInfo(),
	)

	return cmds
}
