package cmd

import (
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// promptYN asks a yes/no question on the command's input and output. Any prompt error,
// such as an input without a terminal, counts as the answer no.
func promptYN(cmd *cobra.Command, prefix string, def bool) bool {
	choose := promptui.Select{
		Label:     prefix,
		Items:     []string{"Yes", "No"},
		Size:      2,
		CursorPos: 0,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}
	if !def {
		choose.CursorPos = 1
	}
	run, _, err := choose.Run()
	if err != nil {
		return false
	}
	return run == 0
}
