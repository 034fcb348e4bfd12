package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenewire/scenewire"
)

var (
	flagFormat    string
	flagAmbiguous bool
	flagSubtree   bool
	flagLog       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "scenewire",
	Short:         "Hierarchy-scoped dependency injection for scene graphs",
	Long:          "Scenewire resolves declared dependencies between behaviors attached to a scene tree: nearest ancestor first, uniquely matching global service second.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// No Run — prints help by default.
}

func init() {
	demoCmd.Flags().StringVar(&flagFormat, "format", "text", "output format: text|json")
	demoCmd.Flags().BoolVar(&flagAmbiguous, "ambiguous", false, "attach a second clock service to demonstrate ambiguity")
	demoCmd.Flags().BoolVar(&flagSubtree, "subtree", false, "resolve only the tank subtree instead of the whole scene")
	demoCmd.Flags().BoolVar(&flagLog, "log", false, "emit slog diagnostics to stderr while resolving")

	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build the example battlefield scene and resolve it",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("invalid format %q (expected text or json)", flagFormat)
	}

	h, tank, err := buildScene(flagAmbiguous)
	if err != nil {
		return err
	}

	var opts []scenewire.ResolveOption
	if flagLog {
		opts = append(opts, scenewire.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))))
	}

	var res scenewire.Result
	if flagSubtree {
		res = scenewire.ResolveSubtree(h, []scenewire.NodeID{tank}, opts...)
	} else {
		res = scenewire.Resolve(h, opts...)
	}

	return writeResult(cmd.OutOrStdout(), h, res, flagFormat)
}

// row is the serializable view of one outcome.
type row struct {
	Node     string `json:"node"`
	Behavior string `json:"behavior"`
	Member   string `json:"member"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Source   string `json:"source,omitempty"`
	Error    string `json:"error,omitempty"`
}

func writeResult(w io.Writer, h *scenewire.Hierarchy, res scenewire.Result, format string) error {
	rows := make([]row, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		r := row{
			Node:     o.NodeName,
			Behavior: typeString(o.BehaviorType),
			Member:   o.Member,
			Type:     typeString(o.DeclaredType),
			Status:   o.Status.String(),
		}
		if o.Status == scenewire.StatusInjected {
			r.Source = typeString(o.SourceType)
			if o.SourceNode != scenewire.NoNode {
				r.Source += " on " + h.Name(o.SourceNode)
			}
		} else if o.Err != nil {
			r.Error = o.Err.Error()
		}
		rows = append(rows, r)
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Pass     string `json:"pass"`
			Resolved bool   `json:"resolved"`
			Outcomes []row  `json:"outcomes"`
		}{Pass: res.PassID, Resolved: res.OK(), Outcomes: rows})
	}

	for _, r := range rows {
		switch {
		case r.Source != "":
			fmt.Fprintf(w, "%-10s %s.%s <- %s\n", r.Status, r.Behavior, r.Member, r.Source)
		case r.Error != "":
			fmt.Fprintf(w, "%-10s %s.%s: %s\n", r.Status, r.Behavior, r.Member, r.Error)
		default:
			fmt.Fprintf(w, "%-10s %s.%s\n", r.Status, r.Behavior, r.Member)
		}
	}
	fmt.Fprintf(w, "%d member(s), %d failed\n", len(rows), len(res.Failed()))
	return nil
}

func typeString(t interface{ String() string }) string {
	if t == nil {
		return ""
	}
	return t.String()
}
