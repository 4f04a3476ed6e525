package cmd

import (
	"fmt"
	"strings"

	"github.com/byxorna/shelf/pkg/db"
	"github.com/byxorna/shelf/pkg/text"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize TEXT...",
		Short: "Print the theme identifier a name would be stored under",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			name := text.NormalizeName(raw)
			if name == "" {
				if strings.TrimSpace(raw) == "" {
					return db.ErrEmptyName
				}
				return fmt.Errorf("%q: %w", raw, db.ErrInvalidName)
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
