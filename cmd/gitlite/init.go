package main

import (
	"fmt"
	"io"

	git "github.com/gitlite/gitlite"
	"github.com/spf13/cobra"
)

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		directory := ""
		if len(args) > 0 {
			directory = args[0]
		}
		return initCmd(cmd.OutOrStdout(), cfg, directory)
	}

	return cmd
}

func initCmd(out io.Writer, cfg *globalFlags, directory string) error {
	if directory == "" {
		directory = cfg.C.String()
	}

	r, err := git.InitRepository(directory, nil)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Initialized empty Git repository in", r.GitDir())
	return nil
}
