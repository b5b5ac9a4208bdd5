package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gldemos/internal/engine/camera"
	"github.com/Faultbox/gldemos/internal/engine/input"
)

var movementKeys = [...]struct {
	key       sdl.Scancode
	direction camera.Movement
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
}

// heldMovements returns the directions whose WASD key is down.
func heldMovements(in *input.State) []camera.Movement {
	var out []camera.Movement
	for _, m := range movementKeys {
		if in.Held(m.key) {
			out = append(out, m.direction)
		}
	}
	return out
}
