package native

// WindowDecor controls how the platform window places system bars.
type WindowDecor interface {
	SetDecorFitsSystemWindows(fits bool) error
}

// Activity is the bootstrap hook for one platform window. Everything after
// OnReady belongs to the engine.
type Activity struct {
	decor   WindowDecor
	created bool
}

func NewActivity(decor WindowDecor) *Activity {
	return &Activity{decor: decor}
}

// OnReady requests edge-to-edge rendering: status and navigation bars are
// drawn over the content, which handles its own insets. Only the first call
// reaches the decor.
func (a *Activity) OnReady() error {
	if a.created {
		return nil
	}
	a.created = true
	return a.decor.SetDecorFitsSystemWindows(false)
}

func (a *Activity) Created() bool {
	return a.created
}
