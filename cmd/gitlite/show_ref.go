package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newShowRefCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-ref",
		Short: "List references",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return showRefCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func showRefCmd(out io.Writer, cfg *globalFlags) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	refs, err := r.References()
	if err != nil {
		return err
	}
	for _, ref := range refs {
		fmt.Fprintf(out, "%s %s\n", ref.Target().String(), ref.Name())
	}
	return nil
}
