package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"swarmfield/internal/config"
	"swarmfield/scene"
)

// ScrollInput turns the wheel and keyboard into a scroll delta in pixels
type ScrollInput struct {
	// WheelStep is the distance of one wheel notch
	WheelStep float64

	// KeySpeed is the arrow key scroll speed in pixels per second
	KeySpeed float64
}

// NewScrollInput creates an input provider from the configuration
func NewScrollInput(cfg config.Config) *ScrollInput {
	return &ScrollInput{
		WheelStep: cfg.WheelStep,
		KeySpeed:  cfg.KeyScrollSpeed,
	}
}

// Delta returns how far to scroll this frame. page is the distance of a
// PageUp/PageDown press, end the distance to the bottom of the page.
func (in *ScrollInput) Delta(deltaTime, page, pos, end float64) float64 {
	var d float64

	_, wheelY := ebiten.Wheel()
	d -= wheelY * in.WheelStep

	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		d += in.KeySpeed * deltaTime
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		d -= in.KeySpeed * deltaTime
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d += page
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		d -= page
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		d = -pos
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		d = end - pos
	}
	return d
}

// swarmBatch is how many ants one swarm key press sends in
const swarmBatch = 10

// CueKeys maps debug keys to one-off page cues
var CueKeys = map[ebiten.Key]scene.Cue{
	ebiten.KeyG: scene.CueSettle,
	ebiten.KeyX: scene.CueExit,
	ebiten.KeyR: scene.CueReturn,
	ebiten.KeyN: scene.CueSwarm,
}

// JustPressedCues returns the cues whose keys went down this frame
func JustPressedCues() []scene.Cue {
	var cues []scene.Cue
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if c, ok := CueKeys[k]; ok {
			cues = append(cues, c)
		}
	}
	return cues
}
