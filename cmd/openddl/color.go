package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

type palette struct {
	keyword func(a ...any) string
	name    func(a ...any) string
	typ     func(a ...any) string
	value   func(a ...any) string
	ok      func(a ...any) string
	fail    func(a ...any) string
}

func newPalette(w io.Writer) (*palette, error) {
	enabled, err := colorEnabled(w)
	if err != nil {
		return nil, err
	}
	sprint := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &palette{
		keyword: sprint(color.FgCyan, color.Bold),
		name:    sprint(color.FgYellow),
		typ:     sprint(color.FgMagenta),
		value:   sprint(color.FgWhite),
		ok:      sprint(color.FgGreen, color.Bold),
		fail:    sprint(color.FgRed, color.Bold),
	}, nil
}

// colorEnabled resolves the color setting. In auto mode only terminals get
// colors.
func colorEnabled(w io.Writer) (bool, error) {
	switch mode := viper.GetString("color"); mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
}
