package game

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"swarmfield/scene"
)

// DebugState holds the overlay toggles
type DebugState struct {
	ShowOverlay bool // frame rate, scroll offset and per-layer state
}

// DebugLines describes the stage for the overlay
func DebugLines(stage *scene.Stage, fps float64) []string {
	host := stage.Host()
	lines := []string{
		fmt.Sprintf("FPS %.0f  frames %d", fps, stage.Frames()),
		fmt.Sprintf("scroll %.0f / %.0f", host.Position(), stage.Page().MaxScroll()),
		fmt.Sprintf("anchors %d", host.Anchors()),
	}
	for _, s := range stage.Scenes() {
		y, visible := stage.Offset(s)
		line := fmt.Sprintf("%-10s y=%-6.0f", s.Name(), y)
		if !visible {
			line += " hidden"
		}
		switch v := s.(type) {
		case *scene.Hero:
			line += fmt.Sprintf(" mode=%s shapes=%d", v.Mode(), v.Store().Len())
		case *scene.Ants:
			line += fmt.Sprintf(" ants=%d stacked=%d", v.Count(), v.Store().Stacked)
		case *scene.Bars:
			line += fmt.Sprintf(" progress=%.2f", v.Progress())
		case *scene.Highlights:
			line += fmt.Sprintf(" cycles=%d", v.Cycles())
		case *scene.Pills:
			line += fmt.Sprintf(" revealed=%t", v.Revealed())
		}
		lines = append(lines, line)
	}
	return lines
}

func drawDebug(screen *ebiten.Image, stage *scene.Stage, fps float64) {
	ebitenutil.DebugPrintAt(screen, strings.Join(DebugLines(stage, fps), "\n"), 10, 10)
}
