package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newStatusCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the working tree status",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return statusCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func statusCmd(out io.Writer, cfg *globalFlags) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	st, err := r.Status()
	if err != nil {
		return err
	}

	switch {
	case st.Branch != "":
		fmt.Fprintf(out, "On branch %s.\n", st.Branch)
	case !st.DetachedOid.IsZero():
		fmt.Fprintf(out, "HEAD detached at %s\n", st.DetachedOid.String())
	default:
		fmt.Fprintln(out, "On an unborn branch.")
	}

	fmt.Fprintln(out, "\nChanges to be committed:")
	for _, p := range st.Added {
		fmt.Fprintln(out, "  added:   ", p)
	}
	for _, p := range st.Modified {
		fmt.Fprintln(out, "  modified:", p)
	}
	for _, p := range st.Deleted {
		fmt.Fprintln(out, "  deleted: ", p)
	}

	fmt.Fprintln(out, "\nChanges not staged for commit:")
	for _, p := range st.WorktreeModified {
		fmt.Fprintln(out, "  modified:", p)
	}
	for _, p := range st.WorktreeDeleted {
		fmt.Fprintln(out, "  deleted: ", p)
	}

	fmt.Fprintln(out, "\nUntracked files:")
	for _, p := range st.Untracked {
		fmt.Fprintln(out, " ", p)
	}
	return nil
}
