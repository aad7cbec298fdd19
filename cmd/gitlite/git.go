package main

import (
	"os"

	"github.com/gitlite/gitlite/internal/pathutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// globalFlags represents the flags shared by every subcommand
type globalFlags struct {
	// C is a simpler version of git's -C
	// https://git-scm.com/docs/git#Documentation/git.txt--Cltpathgt
	C       *pathutil.DirPathValue
	verbose bool
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gitlite",
		Short:         "the stupid content tracker, in pure Go",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cwd, _ := os.Getwd()
	cfg := &globalFlags{
		C: pathutil.NewDirPathFlagWithDefault(cwd),
	}
	cmd.PersistentFlags().VarP(cfg.C, "C", "C", "Run as if gitlite was started in the provided path instead of the current working directory.")
	cmd.PersistentFlags().BoolVar(&cfg.verbose, "verbose", false, "Enable debug logging.")

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if cfg.verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	// porcelain
	cmd.AddCommand(newInitCmd(cfg))
	cmd.AddCommand(newAddCmd(cfg))
	cmd.AddCommand(newRmCmd(cfg))
	cmd.AddCommand(newStatusCmd(cfg))
	cmd.AddCommand(newCommitCmd(cfg))
	cmd.AddCommand(newLogCmd(cfg))
	cmd.AddCommand(newTagCmd(cfg))
	cmd.AddCommand(newCheckoutCmd(cfg))

	// plumbing
	cmd.AddCommand(newCatFileCmd(cfg))
	cmd.AddCommand(newHashObjectCmd(cfg))
	cmd.AddCommand(newLsTreeCmd(cfg))
	cmd.AddCommand(newLsFilesCmd(cfg))
	cmd.AddCommand(newShowRefCmd(cfg))
	cmd.AddCommand(newRevParseCmd(cfg))
	cmd.AddCommand(newCheckIgnoreCmd(cfg))

	return cmd
}
