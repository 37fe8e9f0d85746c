package cursorfx

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState exposes the overlay surface dimensions to the simulation;
// effects use them for spawn placement and off-screen culling. Headless
// tests construct one directly with just the dimensions set.
type WindowState struct {
	windowGlfw *glfw.Window

	Width  int
	Height int
	Title  string
}

type WindowModule struct {
	Width  int
	Height int
	Title  string

	// Overlay mode removes decorations, keeps the window on top and makes
	// the framebuffer transparent so only the effects are visible.
	Overlay bool
}

func (mod WindowModule) Install(app *App, cmd *Commands) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // wgpu owns the surface, not OpenGL
	if mod.Overlay {
		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Floating, glfw.True)
		glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
		glfw.WindowHint(glfw.Resizable, glfw.False)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	}

	win, err := glfw.CreateWindow(mod.Width, mod.Height, mod.Title, nil, nil)
	if err != nil {
		panic(err)
	}

	cmd.AddResources(&WindowState{
		windowGlfw: win,
		Width:      mod.Width,
		Height:     mod.Height,
		Title:      mod.Title,
	})
	app.UseSystem(
		System(windowEventsSystem).InStage(Prelude),
	)
}

func windowEventsSystem(ws *WindowState, cmd *Commands) {
	glfw.PollEvents()
	ws.Width, ws.Height = ws.windowGlfw.GetSize()
	if ws.windowGlfw.ShouldClose() {
		cmd.Quit()
	}
}
