package frame

import (
	"errors"
	"fmt"
)

// Window and asset defaults.
const (
	DefaultWidth       = 720
	DefaultHeight      = 450
	DefaultTexturePath = "../textures"
)

// ErrMissingValue is returned by ParseOptions when -texturepath has no argument.
var ErrMissingValue = errors.New("missing option value")

// Options configures a run loop.
type Options struct {
	Width       int
	Height      int
	TexturePath string
	NoTextures  bool
	NoShadows   bool
	// Pause starts the loop paused.
	Pause bool
}

// DefaultOptions returns a 720x450 window with textures and shadows on.
func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		TexturePath: DefaultTexturePath,
	}
}

// ParseOptions applies the run-loop switches found in args to opts:
// -notex, -noshadow, -noshadows, -pause and -texturepath <dir>. Other
// arguments are returned in order, untouched.
func ParseOptions(opts Options, args []string) (Options, []string, error) {
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-notex":
			opts.NoTextures = true
		case "-noshadow", "-noshadows":
			opts.NoShadows = true
		case "-pause":
			opts.Pause = true
		case "-texturepath":
			if i+1 >= len(args) {
				return opts, rest, fmt.Errorf("%w: -texturepath", ErrMissingValue)
			}
			i++
			opts.TexturePath = args[i]
		default:
			rest = append(rest, args[i])
		}
	}
	return opts, rest, nil
}
