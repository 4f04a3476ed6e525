package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/byxorna/shelf/pkg/db"
	"github.com/byxorna/shelf/pkg/db/filter"
	"github.com/byxorna/shelf/pkg/picker"
	"github.com/byxorna/shelf/pkg/session"
	"github.com/byxorna/shelf/pkg/text"
	"github.com/byxorna/shelf/pkg/types/v1"
	"github.com/byxorna/shelf/pkg/ui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// selected opens a session with theme selected.
func (o *options) selected(theme string) (*env, session.Session, error) {
	e, err := o.setup()
	if err != nil {
		return nil, session.Session{}, err
	}
	s, err := e.newSession().Select(theme)
	if err != nil {
		e.Close()
		return nil, session.Session{}, err
	}
	return e, s, nil
}

func printDocuments(out io.Writer, docs []v1.Document, highlight string) {
	styled := highlight != "" && termenv.ColorProfile() != termenv.Ascii
	for _, d := range docs {
		name := d.Filename
		if styled {
			name = text.StyleFilteredText(d.Filename, highlight, ui.Match)
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", name, text.Bytes(d.Size), text.RelativeTime(d.ModTime))
	}
}

func newDocCmd(opts *options) *cobra.Command {
	doc := &cobra.Command{
		Use:   "doc",
		Short: "Add, list, open and delete the documents of a theme",
	}

	var filterText string
	list := &cobra.Command{
		Use:   "list THEME",
		Short: "List the documents of a theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, err := opts.selected(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			fb, err := filter.New(func() string { return filterText }, s.Documents)
			if err != nil {
				return err
			}
			printDocuments(cmd.OutOrStdout(), fb.List(), filterText)
			return nil
		},
	}
	list.Flags().StringVarP(&filterText, "filter", "f", "", "only documents whose name fuzzy matches")

	find := &cobra.Command{
		Use:   "find THEME TEXT",
		Short: "Fuzzy search document names within a theme",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, err := opts.selected(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			needle := args[1]
			fb, err := filter.New(func() string { return needle }, s.Documents)
			if err != nil {
				return err
			}
			if fb.Count() == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "nothing in %s matches %q\n", args[0], needle)
				return nil
			}
			printDocuments(cmd.OutOrStdout(), fb.List(), needle)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add THEME FILE...",
		Short: "Copy PDF or DOCX files into a theme",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, err := opts.selected(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			var firstErr error
			failed := 0
			for _, src := range args[1:] {
				var d v1.Document
				s, d, err = s.AddDocument(src)
				if err != nil {
					failed++
					if firstErr == nil {
						firstErr = err
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", text.EmojiWarning, src, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", d.Filename)
			}
			if firstErr != nil {
				return fmt.Errorf("%d of %d document(s) not added: %w", failed, len(args)-1, firstErr)
			}
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import THEME DIR",
		Short: "Add every PDF and DOCX found below a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, err := opts.selected(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			found, err := picker.Scan(args[1])
			if err != nil {
				return err
			}

			imported, skipped := 0, 0
			for _, src := range found {
				s, _, err = s.AddDocument(src)
				switch {
				case errors.Is(err, db.ErrDocumentExists):
					skipped++
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", src, err)
				case err != nil:
					return fmt.Errorf("import stopped after %d document(s): %w", imported, err)
				default:
					imported++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d document(s), skipped %d\n", imported, skipped)
			return nil
		},
	}

	open := &cobra.Command{
		Use:   "open THEME FILE",
		Short: "Open a document with the default application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, err := opts.selected(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			_, err = s.OpenDocument(args[1], opts.launcher)
			return notice(cmd, err, db.ErrDocumentNotFound)
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete THEME FILE",
		Short: "Delete a document from a theme",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, s, err := opts.selected(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			sel, _ := s.Selected()
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Delete %s from %s?", args[1], sel.Theme.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}

			if _, err := s.DeleteDocument(args[1]); err != nil {
				return notice(cmd, err, db.ErrDocumentNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[1])
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	doc.AddCommand(list, find, add, importCmd, open, del)
	return doc
}
