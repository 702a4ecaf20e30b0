package thread

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/skeinlab/skein/internal/skeinctl/client"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

var (
	labelUser     = color.New(color.FgBlue, color.Bold)
	labelAgent    = color.New(color.FgMagenta, color.Bold)
	labelTool     = color.New(color.FgCyan)
	labelSubagent = color.New(color.FgYellow, color.Bold)
	labelError    = color.New(color.FgRed, color.Bold)
	labelDim      = color.New(color.Faint)
	labelOK       = color.New(color.FgGreen)
)

func getTermWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// renderMarkdown renders markdown content for terminal display, falling back
// to the raw text when rendering fails.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 76
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithColorProfile(termenv.ANSI256),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// renderThread writes a full display thread to out.
func renderThread(out io.Writer, thread *client.Thread) {
	width := getTermWidth()
	pending := make(map[string]bool, len(thread.PendingToolIDs))
	for _, id := range thread.PendingToolIDs {
		pending[id] = true
	}

	labelDim.Fprintf(out, "conversation %s (%d events, %d groups)\n",
		thread.ConversationID, thread.EventCount, len(thread.Groups))

	for _, group := range thread.Groups {
		fmt.Fprintln(out)
		switch group.Kind {
		case entity.GroupKindMessage:
			renderMessage(out, group.Message, pending, thread.Hints, width)
		case entity.GroupKindSubagent:
			renderSubagent(out, group.Subagent, pending, thread.Hints, "")
		case entity.GroupKindParallelSubagents:
			labelSubagent.Fprintf(out, "parallel subagents (%d)\n", len(group.Parallel))
			for _, block := range group.Parallel {
				renderSubagent(out, block, pending, thread.Hints, "  ")
			}
		}
	}
}

func renderMessage(out io.Writer, msg *entity.MessageData, pending map[string]bool, hints map[string]string, width int) {
	ev := msg.Event
	switch ev.Kind {
	case entity.EventKindText:
		labelAgent.Fprintln(out, "agent")
		fmt.Fprintln(out, renderMarkdown(ev.Text, width-2))
	case entity.EventKindToolCall:
		renderToolCall(out, ev, msg.Result, pending, hints, "")
	case entity.EventKindError:
		labelError.Fprint(out, "error ")
		fmt.Fprintln(out, wordwrap.WrapString(ev.Text, uint(width-8)))
	case entity.EventKindApprovalRequest:
		labelError.Fprint(out, "approval requested ")
		fmt.Fprintln(out, ev.Text)
	case entity.EventKindUserQuestion:
		labelUser.Fprintln(out, "question for you")
		fmt.Fprintln(out, wordwrap.WrapString(ev.Text, uint(width-2)))
	case entity.EventKindPending:
		labelDim.Fprintln(out, "working...")
	default:
		fmt.Fprintln(out, ev.Text)
	}
}

func renderToolCall(out io.Writer, call, result *entity.Event, pending map[string]bool, hints map[string]string, indent string) {
	name := "tool"
	args := ""
	toolID := ""
	if call.Tool != nil {
		name = call.Tool.Name
		args = call.Tool.Arguments
		toolID = call.Tool.ToolID
	}
	if len(args) > 60 {
		args = args[:57] + "..."
	}

	fmt.Fprint(out, indent)
	labelTool.Fprintf(out, "%s", name)
	if args != "" {
		labelDim.Fprintf(out, "(%s)", args)
	}

	switch {
	case result == nil && pending[toolID]:
		labelDim.Fprint(out, "  pending")
		if hint, ok := hints[toolID]; ok {
			labelDim.Fprintf(out, " - %s", hint)
		}
		fmt.Fprintln(out)
	case result != nil && result.Result != nil && result.Result.IsError:
		labelError.Fprintln(out, "  failed")
		if result.Result.Content != "" {
			labelDim.Fprintf(out, "%s  %s\n", indent, firstLine(result.Result.Content))
		}
	default:
		labelOK.Fprintln(out, "  done")
	}
}

func renderSubagent(out io.Writer, block *entity.SubagentData, pending map[string]bool, hints map[string]string, indent string) {
	desc := subagentLabel(block.Spawn)
	fmt.Fprint(out, indent)
	labelSubagent.Fprintf(out, "subagent %s", desc)
	if block.LastPollStatus != "" {
		labelDim.Fprintf(out, " [background: %s]", block.LastPollStatus)
	}
	fmt.Fprintln(out)

	for _, nested := range block.NestedCalls {
		renderToolCall(out, nested, nil, pending, hints, indent+"  ")
	}

	switch {
	case block.SpawnResult != nil && block.SpawnResult.Result != nil:
		res := block.SpawnResult.Result
		if res.IsError {
			labelError.Fprintf(out, "%s  failed: %s\n", indent, firstLine(res.Content))
		} else {
			labelOK.Fprintf(out, "%s  finished\n", indent)
			if res.Content != "" {
				labelDim.Fprintf(out, "%s  %s\n", indent, firstLine(res.Content))
			}
		}
	case block.LastPollStatus == "" || block.LastPollStatus == entity.PollStatusRunning:
		fmt.Fprint(out, indent+"  ")
		labelDim.Fprint(out, "running")
		if block.Spawn.Tool != nil {
			if hint, ok := hints[block.Spawn.Tool.ToolID]; ok {
				labelDim.Fprintf(out, " - %s", hint)
			}
		}
		fmt.Fprintln(out)
	}
}

func subagentLabel(spawn *entity.Event) string {
	if spawn == nil || spawn.Tool == nil {
		return "<unknown>"
	}
	if spawn.Tool.Subagent != nil && spawn.Tool.Subagent.Type != "" {
		return spawn.Tool.Subagent.Type
	}
	return spawn.Tool.Name
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 100 {
		s = s[:97] + "..."
	}
	return s
}
