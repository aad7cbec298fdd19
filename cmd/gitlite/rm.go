package main

import (
	git "github.com/gitlite/gitlite"
	"github.com/spf13/cobra"
)

func newRmCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm PATH...",
		Short: "Remove files from the working tree and the index",
		Args:  cobra.MinimumNArgs(1),
	}

	cached := cmd.Flags().Bool("cached", false, "Only remove the files from the index, keeping them on disk.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cfg)
		if err != nil {
			return err
		}
		return r.Remove(args, &git.RemoveOptions{KeepFiles: *cached})
	}

	return cmd
}
