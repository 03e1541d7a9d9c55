package native

import (
	"gioui.org/app"
)

// Kept out of window_android.go: go generate skips files excluded by GOOS.
//go:generate javac --release 11 -classpath $ANDROID_HOME/platforms/android-35/android.jar -d /tmp/window_android/classes window_android.java
//go:generate jar cf window_android.jar -C /tmp/window_android/classes .

var Window *PlatformWindow

func NewPlatformWindow(w *app.Window) (r *PlatformWindow) {
	r = &PlatformWindow{
		window: w,
	}
	return r
}
