package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCheckIgnoreCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-ignore PATH...",
		Short: "Check paths against the ignore rules",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return checkIgnoreCmd(cmd.OutOrStdout(), cfg, args)
	}

	return cmd
}

func checkIgnoreCmd(out io.Writer, cfg *globalFlags, paths []string) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	rules, err := r.GitIgnore()
	if err != nil {
		return err
	}

	for _, p := range paths {
		ignored, err := rules.CheckIgnore(p)
		if err != nil {
			return err
		}
		if ignored {
			fmt.Fprintln(out, p)
		}
	}
	return nil
}
