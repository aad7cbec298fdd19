package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [COMMIT]",
		Short: "Display history of a given commit, as graphviz data",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name := gitcore.Head
		if len(args) > 0 {
			name = args[0]
		}
		return logCmd(cmd.OutOrStdout(), cfg, name)
	}

	return cmd
}

func logCmd(out io.Writer, cfg *globalFlags, name string) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	oid, err := r.ResolveName(name, object.TypeCommit, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "digraph log{")
	fmt.Fprintln(out, "  node[shape=rect]")

	err = r.WalkHistory(oid, func(ci *object.Commit) error {
		// only the first line of the message is displayed, with the
		// label delimiters escaped
		message := strings.TrimSpace(ci.Message())
		if i := strings.Index(message, "\n"); i >= 0 {
			message = message[:i]
		}
		message = strings.ReplaceAll(message, "\\", "\\\\")
		message = strings.ReplaceAll(message, "\"", "\\\"")

		sha := ci.ID().String()
		fmt.Fprintf(out, "  c_%s [label=\"%s: %s\"]\n", sha, sha[0:7], message)
		for _, parent := range ci.ParentIDs() {
			fmt.Fprintf(out, "  c_%s -> c_%s;\n", sha, parent.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "}")
	return nil
}
