package ui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"golang.org/x/exp/shiny/materialdesign/colornames"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"molkky/assets"
)

// Home is shown until the scoring engine takes over the window.
type Home struct {
	Theme *material.Theme
	icon  *widget.Icon
}

func NewHome(theme *material.Theme) *Home {
	icon, _ := widget.NewIcon(icons.ActionGrade)
	return &Home{Theme: theme, icon: icon}
}

func (h *Home) Layout(gtx layout.Context) layout.Dimensions {
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if h.icon == nil {
					return layout.Dimensions{}
				}
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(64))
				return h.icon.Layout(gtx, color.NRGBA(colornames.Amber700))
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				title := material.H5(h.Theme, assets.AppName)
				title.Alignment = text.Middle
				return title.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return component.Rect{
					Color: color.NRGBA(colornames.Grey300),
					Size:  image.Point{X: gtx.Dp(unit.Dp(120)), Y: gtx.Dp(unit.Dp(1))},
				}.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Caption(h.Theme, "v"+assets.Version).Layout(gtx)
			}),
		)
	})
}
