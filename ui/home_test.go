package ui

import (
	"image"
	"testing"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

func TestHomeLayout(t *testing.T) {
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(400, 720)),
	}
	dims := NewHome(material.NewTheme()).Layout(gtx)
	if dims.Size != image.Pt(400, 720) {
		t.Fatalf("home should fill the window, got %v", dims.Size)
	}
}
