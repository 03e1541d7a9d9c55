package ui

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"

	"molkky/ui/native"
)

// Engine is the embedded application the shell hands every frame to.
type Engine interface {
	Layout(gtx layout.Context) layout.Dimensions
}

// Background fills the whole window, under the system bars too.
var Background = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}

func Run(window *app.Window, engine Engine) error {
	var ops op.Ops
	for {
		e := window.Event()
		native.Window.ListenEvents(e)
		switch e := e.(type) {
		// this is sent when the application is closed
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			// NewContext offsets and shrinks the constraints by the system insets.
			gtx := app.NewContext(&ops, e)
			paint.Fill(gtx.Ops, Background)
			engine.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
