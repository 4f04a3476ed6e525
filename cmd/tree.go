package cmd

import (
	"fmt"
	"strings"

	"github.com/byxorna/shelf/pkg/db"
	"github.com/byxorna/shelf/pkg/text"
	"github.com/byxorna/shelf/pkg/ui"
	"github.com/spf13/cobra"
)

const treeWidth = 80

// treeMarkdown lays out every theme and its documents as markdown.
func treeMarkdown(backend db.Backend) (string, error) {
	themes, err := backend.Themes()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", backend.StoragePath())
	if len(themes) == 0 {
		b.WriteString("*no themes yet*\n")
	}
	for _, t := range themes {
		docs, err := backend.Documents(t)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "## %s %s (%d)\n\n", text.EmojiTheme, t.Name, len(docs))
		for _, d := range docs {
			fmt.Fprintf(&b, "- %s `%s` %s\n", text.DocumentIcon(d.Filename), d.Filename, text.Bytes(d.Size))
		}
		if len(docs) > 0 {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func newTreeCmd(opts *options) *cobra.Command {
	var raw bool
	tree := &cobra.Command{
		Use:   "tree",
		Short: "Show every theme and its documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.Close()

			md, err := treeMarkdown(e.store)
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			out, err := ui.RenderMarkdown(md, treeWidth)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	tree.Flags().BoolVar(&raw, "raw", false, "print the markdown instead of rendering it")
	return tree
}
