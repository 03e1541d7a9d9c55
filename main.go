package main

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"molkky/assets"
	"molkky/ui"
	"molkky/ui/native"
)

func main() {
	go func() {
		window := new(app.Window)
		window.Option(
			app.Title(assets.AppName),
			app.Size(unit.Dp(400), unit.Dp(720)),
		)
		native.Window = native.NewPlatformWindow(window)
		if err := ui.Run(window, ui.NewHome(material.NewTheme())); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
