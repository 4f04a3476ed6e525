package cmd

import (
	"fmt"

	"github.com/byxorna/shelf/pkg/db"
	"github.com/byxorna/shelf/pkg/text"
	"github.com/spf13/cobra"
)

func newThemeCmd(opts *options) *cobra.Command {
	theme := &cobra.Command{
		Use:   "theme",
		Short: "List, create, rename and delete themes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.Close()

			themes, err := e.store.Themes()
			if err != nil {
				return err
			}
			width := 0
			for _, t := range themes {
				if len(t.Name) > width {
					width = len(t.Name)
				}
			}
			out := cmd.OutOrStdout()
			for _, t := range themes {
				docs, err := e.store.Documents(t)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %d\n", text.PadRight(t.Name, width), len(docs))
			}
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a theme; the name is normalized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.Close()

			_, t, err := e.newSession().CreateTheme(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created theme %s\n", t.Name)
			return nil
		},
	}

	rename := &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a theme; the new name is normalized",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.Close()

			s, err := e.newSession().Select(args[0])
			if err != nil {
				return err
			}
			before, _ := s.Selected()
			s, err = s.RenameSelected(args[1])
			if err != nil {
				return err
			}
			after, _ := s.Selected()
			fmt.Fprintf(cmd.OutOrStdout(), "renamed theme %s to %s\n", before.Theme.Name, after.Theme.Name)
			return nil
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a theme and every document in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.Close()

			s, err := e.newSession().Select(args[0])
			if err != nil {
				return notice(cmd, err, db.ErrThemeNotFound)
			}
			sel, _ := s.Selected()

			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Delete theme %s and its %d document(s)?", sel.Theme.Name, len(sel.Documents)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}

			if _, err := s.DeleteSelected(); err != nil {
				return notice(cmd, err, db.ErrThemeNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted theme %s\n", sel.Theme.Name)
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	theme.AddCommand(list, create, rename, del)
	return theme
}
