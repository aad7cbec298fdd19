package main

import (
	"io"

	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newCatFileCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat-file TYPE OBJECT",
		Short: "Provide content of repository objects",
		Args:  cobra.ExactArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return catFileCmd(cmd.OutOrStdout(), cfg, args[0], args[1])
	}

	return cmd
}

func catFileCmd(out io.Writer, cfg *globalFlags, typ, name string) error {
	oType, err := object.NewTypeFromString(typ)
	if err != nil {
		return xerrors.Errorf("%s: %w", typ, err)
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	oid, err := r.ResolveName(name, oType, true)
	if err != nil {
		return err
	}
	o, err := r.Object(oid)
	if err != nil {
		return err
	}

	// the payload is dumped verbatim, whatever the type
	_, err = out.Write(o.Bytes())
	return err
}
