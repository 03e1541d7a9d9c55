//go:build !android

package native

import (
	"gioui.org/app"
	"gioui.org/io/event"
)

// PlatformWindow needs no decor changes outside Android: desktop windows
// never overlap system bars.
type PlatformWindow struct {
	window *app.Window
}

func (r *PlatformWindow) ListenEvents(evt event.Event) {
}

func (r *PlatformWindow) SetDecorFitsSystemWindows(fits bool) error {
	return nil
}
