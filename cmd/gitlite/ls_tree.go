package main

import (
	"fmt"
	"io"
	"path"

	git "github.com/gitlite/gitlite"
	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/cobra"
)

func newLsTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-tree TREE",
		Short: "Print a tree object",
		Args:  cobra.ExactArgs(1),
	}

	recursive := cmd.Flags().BoolP("recursive", "r", false, "Recurse into sub-trees.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsTreeCmd(cmd.OutOrStdout(), cfg, args[0], *recursive)
	}

	return cmd
}

func lsTreeCmd(out io.Writer, cfg *globalFlags, name string, recursive bool) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	oid, err := r.ResolveName(name, object.TypeTree, true)
	if err != nil {
		return err
	}
	return lsTree(out, r, oid, recursive, "")
}

func lsTree(out io.Writer, r *git.Repository, oid gitcore.Oid, recursive bool, prefix string) error {
	o, err := r.Object(oid)
	if err != nil {
		return err
	}
	tree, err := o.AsTree()
	if err != nil {
		return err
	}

	for _, e := range tree.Entries() {
		if recursive && e.Mode.IsDirectory() {
			if err := lsTree(out, r, e.ID, recursive, path.Join(prefix, e.Path)); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "%06o %s %s\t%s\n", e.Mode, e.Mode.ObjectType().String(), e.ID.String(), path.Join(prefix, e.Path))
	}
	return nil
}
