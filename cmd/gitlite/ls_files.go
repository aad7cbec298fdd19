package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gitlite/gitlite/gitcore/index"
	"github.com/spf13/cobra"
)

func newLsFilesCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-files",
		Short: "List all the files staged in the index",
		Args:  cobra.NoArgs,
	}

	verbose := cmd.Flags().Bool("verbose", false, "Show everything the index stores about each entry.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsFilesCmd(cmd.OutOrStdout(), cfg, *verbose)
	}

	return cmd
}

func lsFilesCmd(out io.Writer, cfg *globalFlags, verbose bool) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	idx, err := r.Index()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(out, "Index file format v%d, containing %d entries.\n", idx.Version(), idx.Len())
	}

	for _, e := range idx.Entries() {
		fmt.Fprintln(out, e.Path)
		if !verbose {
			continue
		}
		fmt.Fprintf(out, "  %s with perms: %o\n", modeTypeName(e.ModeType), e.ModePerms)
		fmt.Fprintf(out, "  on blob: %s\n", e.ID.String())
		fmt.Fprintf(out, "  created: %s, modified: %s\n",
			time.Unix(int64(e.CtimeSec), int64(e.CtimeNsec)).Format(time.RFC3339),
			time.Unix(int64(e.MtimeSec), int64(e.MtimeNsec)).Format(time.RFC3339))
		fmt.Fprintf(out, "  device: %d, inode: %d\n", e.Dev, e.Ino)
		fmt.Fprintf(out, "  user: %d, group: %d\n", e.UID, e.GID)
		fmt.Fprintf(out, "  flags: stage=%d assume_valid=%v\n", e.Stage, e.AssumeValid)
	}
	return nil
}

func modeTypeName(t uint16) string {
	switch t {
	case index.ModeTypeSymlink:
		return "symlink"
	case index.ModeTypeGitlink:
		return "git link"
	default:
		return "regular file"
	}
}
