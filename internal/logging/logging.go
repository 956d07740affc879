// Package logging configures the process-wide logger used by every Ember
// package.
package logging

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// NewHandler returns a handler that writes records at lvl or above to w in
// terminal format.
func NewHandler(w io.Writer, lvl log.Lvl, useColor bool) log.Handler {
	return log.LvlFilterHandler(lvl, log.StreamHandler(w, log.TerminalFormat(useColor)))
}

// Setup points the root logger at stderr, filtered at the named level.
// Colour is used only when allowed and stderr is a real terminal.
func Setup(level string, allowColor bool) error {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	fd := os.Stderr.Fd()
	useColor := allowColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"

	output := io.Writer(os.Stderr)
	if useColor {
		output = colorable.NewColorableStderr()
	}
	log.Root().SetHandler(NewHandler(output, lvl, useColor))
	return nil
}
