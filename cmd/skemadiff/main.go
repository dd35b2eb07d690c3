package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// exitError carries a process exit status other than 1.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command and maps its error to an exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(stderr, ee.msg)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return 1
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skemadiff [flags] <old> <new>",
		Short: "Structural diff for JSON Schema documents",
		Long: `skemadiff compares two JSON Schema documents (JSON, YAML or Kubernetes CRDs)
and prints every atomic change together with whether it is breaking, that is
whether a document valid under the new schema may be rejected by the old one.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().String("color", "auto", "colorize text output (auto|on|off)")
	cmd.PersistentFlags().String("config", "", "settings file (default: nearest .skemadiff.toml)")
	cmd.PersistentFlags().Bool("verbose", false, "log debug records to stderr")

	cmd.Flags().String("format", "json", "output format (json|text)")
	cmd.Flags().String("lang", "en", "message language for text output (en|ja)")
	cmd.Flags().Bool("breaking-only", false, "print breaking changes only")
	cmd.Flags().Bool("fail-on-breaking", false, "exit with status 2 when any change is breaking")
	cmd.Flags().Int("max-depth", 0, "recursion bound for nested schemas and $ref hops (0 = default)")
	cmd.Flags().String("input-format", "auto", "input format (auto|json|yaml)")
	cmd.Flags().Bool("strict", false, "reject duplicate keys in input documents")
	cmd.Flags().String("crd-kind", "", "pick the CustomResourceDefinition with this kind from multi-document input")
	return cmd
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
