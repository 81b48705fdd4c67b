package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	inputSrc io.Reader
	inputBuf *bufio.Reader
)

// input returns one buffered reader per input stream so that the shell loop
// and confirmation prompts consume the same buffer.
func input(cmd *cobra.Command) *bufio.Reader {
	in := cmd.InOrStdin()
	if inputBuf == nil || inputSrc != in {
		inputSrc, inputBuf = in, bufio.NewReader(in)
	}
	return inputBuf
}

func init() {
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r := input(cmd)
			inShell = true
			defer func() {
				inShell = false
				rootCmd.SetArgs(nil)
			}()
			for {
				fmt.Fprint(out, "inventory> ")
				line, readErr := r.ReadString('\n')
				if readErr != nil && (line == "" || !errors.Is(readErr, io.EOF)) {
					fmt.Fprintln(out)
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}

				words, perr := splitArgs(line)
				if perr != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", perr)
					continue
				}
				if words[0] == "shell" {
					fmt.Fprintln(cmd.ErrOrStderr(), "error: already in the shell")
					continue
				}
				resetFlags(rootCmd)
				rootCmd.SetArgs(words)
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
				}
				if readErr != nil {
					// last line had no trailing newline
					return nil
				}
			}
		},
	}
	rootCmd.AddCommand(shellCmd)
}

// resetFlags restores every flag to its default so values do not leak from
// one shell line into the next.
func resetFlags(root *cobra.Command) {
	resetFlagSet(root.PersistentFlags())
	for _, c := range root.Commands() {
		resetFlagSet(c.Flags())
		resetFlags(c)
	}
}

func resetFlagSet(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// splitArgs splits a shell line into words. Single or double quotes group
// words containing spaces.
func splitArgs(line string) ([]string, error) {
	var (
		words  []string
		cur    strings.Builder
		quote  rune
		inWord bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote, inWord = r, true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
