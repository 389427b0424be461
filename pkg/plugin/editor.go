package plugin

import (
	"errors"

	"github.com/deathdisco/ddconrod/pkg/framework/param"
)

// Editor is the on-screen control surface supplied by a GUI toolkit.
// It reads labels from the bank and writes user edits through Bank.Set,
// so edits obey the same clamping as host writes.
type Editor interface {
	// Size returns the editor window size in pixels
	Size() (width, height int)
	// Open attaches the editor to the host-provided parent window
	Open(parent uintptr) error
	// Close detaches the editor
	Close()
	// Idle gives the editor a chance to poll events and redraw
	Idle()
}

// EditorFactory builds the editor for a plugin instance.
// A failing factory aborts plugin construction.
type EditorFactory func(params *param.Bank) (Editor, error)

// Editor construction failures reported by GUI collaborators
var (
	ErrWindowUnavailable   = errors.New("editor: window unavailable")
	ErrSizeUnavailable     = errors.New("editor: window size unavailable")
	ErrRendererUnavailable = errors.New("editor: renderer unavailable")
)
