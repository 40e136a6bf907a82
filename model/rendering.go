package model

import (
	"bytes"
	"io"
	"os/exec"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	gridPosEmpty = "  "

	clearCmd = "clear"
)

// gridPosBlock is drawn for living cells
var gridPosBlock = aurora.Green("██").String()

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	out io.Writer
}

// NewTerminalRenderer creates a renderer writing to out
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

// Display renders the cells to the terminal
func (r *TerminalRenderer) Display(c Cells) error {
	var b bytes.Buffer
	for row := uint(0); row < c.Height(); row++ {
		for col := uint(0); col < c.Width(); col++ {
			if c.Alive(row, col) {
				b.WriteString(gridPosBlock)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		b.WriteByte('\n')
	}
	if _, err := r.out.Write(b.Bytes()); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}

// Clear clears the terminal screen by running clear with its output sent to the renderer
func (r *TerminalRenderer) Clear() error {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
