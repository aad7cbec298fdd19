package main

import (
	"fmt"
	"io"
	"strings"

	git "github.com/gitlite/gitlite"
	"github.com/gitlite/gitlite/gitcore"
	"github.com/spf13/cobra"
)

func newTagCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag [NAME [OBJECT]]",
		Short: "List or create tags",
		Args:  cobra.MaximumNArgs(2),
	}

	annotated := cmd.Flags().BoolP("annotate", "a", false, "Create an annotated tag object instead of a lightweight ref.")
	message := cmd.Flags().StringP("message", "m", "", "Message of the annotated tag.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := loadRepository(cfg)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return listTagsCmd(cmd.OutOrStdout(), r)
		}

		target := gitcore.Head
		if len(args) == 2 {
			target = args[1]
		}
		oid, err := r.ResolveName(target, 0, true)
		if err != nil {
			return err
		}
		return r.CreateTag(args[0], oid, &git.TagOptions{
			Annotated: *annotated,
			Message:   *message,
		})
	}

	return cmd
}

func listTagsCmd(out io.Writer, r *git.Repository) error {
	refs, err := r.References()
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if strings.HasPrefix(ref.Name(), gitcore.RefsTagsPath+"/") {
			fmt.Fprintln(out, gitcore.LocalTagShortName(ref.Name()))
		}
	}
	return nil
}
