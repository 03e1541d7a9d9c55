// SPDX-License-Identifier: Unlicense OR MIT

package native

/*
#cgo LDFLAGS: -landroid

#include <jni.h>
#include <stdlib.h>
*/
import "C"
import (
	"log"

	"gioui.org/app"
	"gioui.org/io/event"
	"git.wow.st/gmp/jni"
)

type PlatformWindow struct {
	window          *app.Window
	view            uintptr
	activity        *Activity
	libClass        jni.Class
	setDecorFitsWin jni.MethodID
}

func (r *PlatformWindow) init(env jni.Env) error {
	if r.libClass != 0 {
		return nil // Already initialized
	}

	class, err := jni.LoadClass(env, jni.ClassLoaderFor(env, jni.Object(app.AppContext())), "jp/ikegam1/simple_molkky_score/window/window_android")
	if err != nil {
		return err
	}

	r.libClass = jni.Class(jni.NewGlobalRef(env, jni.Object(class)))
	r.setDecorFitsWin = jni.GetStaticMethodID(env, r.libClass, "setDecorFitsSystemWindows", "(Landroid/view/View;Z)V")

	return nil
}

// ListenEvents bootstraps every activity the platform creates for the
// window. A new view means the activity was recreated.
func (r *PlatformWindow) ListenEvents(evt event.Event) {
	e, ok := evt.(app.AndroidViewEvent)
	if !ok {
		return
	}
	if e.View == 0 || e.View == r.view {
		r.view = e.View
		return
	}
	r.view = e.View
	r.activity = NewActivity(r)
	r.window.Run(func() {
		if err := r.activity.OnReady(); err != nil {
			log.Println(err)
		}
	})
}

// SetDecorFitsSystemWindows must run on the UI thread.
func (r *PlatformWindow) SetDecorFitsSystemWindows(fits bool) error {
	var arg jni.Value
	if fits {
		arg = 1
	}
	return jni.Do(jni.JVMFor(app.JavaVM()), func(env jni.Env) error {
		if err := r.init(env); err != nil {
			return err
		}
		return jni.CallStaticVoidMethod(env, r.libClass, r.setDecorFitsWin, jni.Value(r.view), arg)
	})
}
