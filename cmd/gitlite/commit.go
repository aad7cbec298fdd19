package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record changes to the repository",
		Args:  cobra.NoArgs,
	}

	message := cmd.Flags().StringP("message", "m", "", "Message to associate with this commit.")
	_ = cmd.MarkFlagRequired("message")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitCmd(cmd.OutOrStdout(), cfg, *message)
	}

	return cmd
}

func commitCmd(out io.Writer, cfg *globalFlags, message string) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	ci, err := r.Commit(message)
	if err != nil {
		return err
	}

	logrus.Debugf("created commit %s on tree %s", ci.ID().String(), ci.TreeID().String())
	fmt.Fprintf(out, "[%s] %s", ci.ID().String(), ci.Message())
	return nil
}
