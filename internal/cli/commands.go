package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	keyboard "github.com/reoring/keyboard"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a keyboard description is consistent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := a.load(args[0])
			if err != nil {
				return reportIssues(cmd.OutOrStdout(), args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d keys\n", kb.Len())
			return nil
		},
	}
}

func newInspectCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the keys of a keyboard description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := a.load(args[0])
			if err != nil {
				return reportIssues(cmd.OutOrStdout(), args[0], err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), kb.Keys())
			}
			return writeTable(cmd.OutOrStdout(), kb)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the keys as JSON")
	return cmd
}

func newPlotCommand(a *app) *cobra.Command {
	var (
		labels  string
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "plot <file>",
		Short: "Render the plot template with one label per key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := a.load(args[0])
			if err != nil {
				return reportIssues(cmd.OutOrStdout(), args[0], err)
			}
			var out string
			if compact {
				out, err = kb.PlotCompact([]rune(labels))
			} else {
				out, err = kb.Plot([]rune(labels))
			}
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&labels, "labels", "l", "", "labels in key order, one character per key")
	cmd.Flags().BoolVar(&compact, "compact", false, "use the compact template")
	_ = cmd.MarkFlagRequired("labels")
	return cmd
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of keyboard descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), keyboard.ConfigJSONSchema())
		},
	}
}

// invalidError reports a description rejected with one or more issues. The
// issues themselves have already been printed.
type invalidError struct {
	name string
	n    int
	err  error
}

func (e *invalidError) Error() string {
	return fmt.Sprintf("%s: %d issue(s)", e.name, e.n)
}

func (e *invalidError) Unwrap() error { return e.err }

// reportIssues prints one line per issue carried by err. Errors without
// issues are returned unchanged.
func reportIssues(w io.Writer, name string, err error) error {
	iss, ok := keyboard.AsIssues(err)
	if !ok {
		return err
	}
	for _, it := range iss {
		msg := it.Message
		if msg == "" {
			msg = it.Code
		}
		if it.Hint != "" {
			fmt.Fprintf(w, "%s: %s (%s)\n", it.Path, msg, it.Hint)
		} else {
			fmt.Fprintf(w, "%s: %s\n", it.Path, msg)
		}
	}
	return &invalidError{name: name, n: len(iss), err: err}
}

func writeTable(w io.Writer, kb *keyboard.Keyboard) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tMATRIX\tPOSITION\tHAND\tFINGER\tCOST\tSYMMETRY\tUNBALANCING")
	for i, k := range kb.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%g\t%d\t%g\n",
			i, k.MatrixPosition, k.Position, k.Hand, k.Finger, k.Cost, k.SymmetryIndex, k.Unbalancing)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
