package cursorfx

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	PointerButtonLeft = iota
	PointerButtonRight
	PointerButtonMiddle
	pointerButtonCount
)

// Pointer is the per-frame input surface the effects consume: cursor
// position, travel since last frame, and button edges. JustPressed fires
// exactly once per physical press, not per frame held.
type Pointer struct {
	Pos   mgl32.Vec2
	Delta mgl32.Vec2

	Pressed      [pointerButtonCount]bool
	JustPressed  [pointerButtonCount]bool
	JustReleased [pointerButtonCount]bool

	seen bool
}

// Travel is the distance the cursor moved during the last frame.
func (p *Pointer) Travel() float32 {
	return p.Delta.Len()
}

type PointerModule struct{}

func (mod PointerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Pointer{})
	app.UseSystem(
		System(pointerSystem).InStage(PreUpdate),
	)
}

var pointerButtonToGlfw = [pointerButtonCount]glfw.MouseButton{
	PointerButtonLeft:   glfw.MouseButtonLeft,
	PointerButtonRight:  glfw.MouseButtonRight,
	PointerButtonMiddle: glfw.MouseButtonMiddle,
}

func pointerSystem(ws *WindowState, ptr *Pointer) {
	mx, my := ws.windowGlfw.GetCursorPos()
	pos := mgl32.Vec2{float32(mx), float32(my)}

	if ptr.seen {
		ptr.Delta = pos.Sub(ptr.Pos)
	} else {
		// First frame has no previous sample; a zero delta avoids a
		// spawn burst from the pointer's initial placement.
		ptr.Delta = mgl32.Vec2{}
		ptr.seen = true
	}
	ptr.Pos = pos

	for btn, glfwBtn := range pointerButtonToGlfw {
		action := ws.windowGlfw.GetMouseButton(glfwBtn)

		ptr.JustPressed[btn] = false
		ptr.JustReleased[btn] = false

		if glfw.Press == action {
			if !ptr.Pressed[btn] {
				ptr.JustPressed[btn] = true
			}
			ptr.Pressed[btn] = true
		} else if glfw.Release == action {
			if ptr.Pressed[btn] {
				ptr.JustReleased[btn] = true
			}
			ptr.Pressed[btn] = false
		}
	}
}
