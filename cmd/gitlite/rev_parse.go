package main

import (
	"fmt"
	"io"

	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newRevParseCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rev-parse NAME",
		Short: "Parse revision identifiers",
		Args:  cobra.ExactArgs(1),
	}

	typ := cmd.Flags().StringP("type", "t", "", "The expected type of the object (commit, tree, blob, or tag).")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return revParseCmd(cmd.OutOrStdout(), cfg, args[0], *typ)
	}

	return cmd
}

func revParseCmd(out io.Writer, cfg *globalFlags, name, typ string) error {
	var oType object.Type
	if typ != "" {
		var err error
		if oType, err = object.NewTypeFromString(typ); err != nil {
			return xerrors.Errorf("%s: %w", typ, err)
		}
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	oid, err := r.ResolveName(name, oType, true)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, oid.String())
	return nil
}
