package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"swarmfield/scene"
)

var (
	pageColor     = color.RGBA{250, 250, 252, 255}
	headlineColor = color.RGBA{24, 24, 32, 255}
)

const headlineScale = 4

// layer is one scene painted offscreen at viewport size
type layer struct {
	scene   scene.Scene
	img     *ebiten.Image
	surface *Surface
}

// Renderer paints every scene into its own layer and stacks the layers at
// their section offsets
type Renderer struct {
	layers  []*layer
	sprites map[string]*ebiten.Image
	face    *text.GoXFace

	width, height int
}

// NewRenderer creates a renderer for the stage's scenes
func NewRenderer(stage *scene.Stage, sprites map[string]*ebiten.Image) *Renderer {
	r := &Renderer{
		sprites: sprites,
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
	for _, s := range stage.Scenes() {
		r.layers = append(r.layers, &layer{scene: s})
	}
	return r
}

// Resize recreates the layer images for a new window size
func (r *Renderer) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	for _, l := range r.layers {
		if l.img != nil {
			l.img.Deallocate()
			l.img, l.surface = nil, nil
		}
		if width > 0 && height > 0 {
			l.img = ebiten.NewImage(width, height)
			l.surface = NewSurface(l.img, r.sprites)
		}
	}
}

// Render draws the visible layers and the headline
func (r *Renderer) Render(screen *ebiten.Image, stage *scene.Stage) {
	screen.Fill(pageColor)

	for _, l := range r.layers {
		if l.surface == nil {
			continue
		}
		y, visible := stage.Offset(l.scene)
		if !visible {
			continue
		}
		if !l.scene.Draw(l.surface) {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, y)
		screen.DrawImage(l.img, op)
	}

	if hero := stage.Hero(); hero != nil {
		r.drawHeadline(screen, stage, hero)
	}
}

// drawHeadline centres the hero label in the hero section
func (r *Renderer) drawHeadline(screen *ebiten.Image, stage *scene.Stage, hero *scene.Hero) {
	label, alpha := hero.Headline()
	if label == "" || alpha <= 0 {
		return
	}
	top, height, err := stage.Page().Section(scene.HeroSection)
	if err != nil {
		return
	}
	y := top + height*0.35 - stage.Host().Position()

	op := &text.DrawOptions{}
	op.LineSpacing = r.face.Metrics().HAscent + r.face.Metrics().HDescent
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Scale(headlineScale, headlineScale)
	op.GeoM.Translate(float64(r.width)/2, y)
	op.ColorScale.ScaleWithColor(headlineColor)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, label, r.face, op)
}
