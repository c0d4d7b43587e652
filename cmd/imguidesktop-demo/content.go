package main

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"

	imguidesktop "github.com/PazerOP/imgui-desktop"
	"github.com/PazerOP/imgui-desktop/logsink"
)

// mainContent is the primary window: GL information, the cube controls and
// a menu to open the about window or quit.
type mainContent struct {
	app   *imguidesktop.Application
	cube  *cube
	about *imguidesktop.Window

	spin      bool
	speed     float32
	showDebug bool
}

func (m *mainContent) OnOpenGLInit(w *imguidesktop.Window) {
	m.spin = true
	m.speed = 50
	if !w.GLVersion().AtLeast(3, 2) {
		logsink.Logger().Info("OpenGL too old for the cube", "version", w.GLVersion())
		return
	}
	c, err := newCube()
	if err != nil {
		logsink.Logger().Error("failed to set up cube", "err", err)
		return
	}
	m.cube = c
}

func (m *mainContent) OnUpdate(w *imguidesktop.Window) {
	if m.cube != nil && m.spin {
		m.cube.advance(m.speed, w.FPS())
	}
}

func (m *mainContent) OnPreDraw(w *imguidesktop.Window) {
	if m.cube != nil {
		width, height := w.Native().DrawableSize()
		m.cube.draw(width, height)
	}
}

// IsSleepingEnabled keeps frames coming while the cube spins.
func (m *mainContent) IsSleepingEnabled() bool {
	return m.cube == nil || !m.spin
}

func (m *mainContent) HasMenuBar() bool { return true }

func (m *mainContent) OnDrawMenuBar(w *imguidesktop.Window) {
	if imgui.BeginMenu("File") {
		if imgui.MenuItem("Quit") {
			w.SetShouldClose(true)
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("Help") {
		if imgui.MenuItem("About") {
			m.openAbout()
		}
		imgui.EndMenu()
	}
}

func (m *mainContent) OnDraw(w *imguidesktop.Window) {
	ctx := m.app.GLContext()
	imgui.Text(fmt.Sprintf("OpenGL %s (%s)", ctx.Version(), ctx.Attempt()))
	imgui.Text(fmt.Sprintf("%.1f FPS", w.FPS()))
	imgui.Text(fmt.Sprintf("%d windows", len(m.app.Windows())))
	imgui.Separator()

	if m.cube == nil {
		imgui.Text("The cube needs OpenGL 3.2 or newer.")
	} else {
		imgui.Checkbox("Spin", &m.spin)
		imgui.SliderFloat("Degrees per second", &m.speed, 0, 360)
	}
	imgui.Checkbox("Show GUI metrics", &m.showDebug)
	if m.showDebug {
		imgui.ShowMetricsWindow(&m.showDebug)
	}
}

func (m *mainContent) openAbout() {
	if m.about != nil && !m.about.ShouldClose() {
		m.about.Raise()
		return
	}
	w, err := imguidesktop.NewWindow(m.app, 360, 160, "About", &aboutContent{})
	if err != nil {
		logsink.Logger().Error("failed to open about window", "err", err)
		return
	}
	w.SetPrimary(false)
	m.app.AddManagedWindow(w)
	w.Show()
	m.about = w
}

// aboutContent is a secondary window that closes itself.
type aboutContent struct{}

func (aboutContent) OnDraw(w *imguidesktop.Window) {
	imgui.Text("imgui-desktop demo")
	imgui.Text("Every window shares one OpenGL context.")
	if imgui.Button("Close") {
		w.SetShouldClose(true)
	}
}
