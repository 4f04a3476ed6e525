package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/byxorna/shelf/pkg/text"
	"github.com/spf13/cobra"
)

// confirm asks a y/N question on out and reads the answer from in. Anything
// but y or yes is a no, end of input included.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// notice reports err on stderr and swallows it when it is gone, the target
// the command was about to remove or open having vanished already. Anything
// else is returned for a non-zero exit.
func notice(cmd *cobra.Command, err error, gone error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gone) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", text.EmojiWarning, err)
		return nil
	}
	return err
}
