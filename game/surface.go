package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"swarmfield/engine"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws scene layers onto an offscreen ebiten image
type Surface struct {
	img     *ebiten.Image
	sprites map[string]*ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSurface wraps an image; sprites is shared with the game and may gain
// entries while the surface lives
func NewSurface(img *ebiten.Image, sprites map[string]*ebiten.Image) *Surface {
	return &Surface{img: img, sprites: sprites}
}

// Image returns the backing image
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

func (s *Surface) Size() engine.Bounds {
	if s.img == nil {
		return engine.Bounds{}
	}
	b := s.img.Bounds()
	return engine.Bounds{W: float64(b.Dx()), H: float64(b.Dy())}
}

func (s *Surface) Clear() {
	s.img.Clear()
}

func (s *Surface) Fill(c color.Color) {
	s.img.Fill(c)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, true)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

func (s *Surface) FillTriangle(a, b, c engine.Vec2, clr color.Color) {
	var path vector.Path
	path.MoveTo(float32(a.X), float32(a.Y))
	path.LineTo(float32(b.X), float32(b.Y))
	path.LineTo(float32(c.X), float32(c.Y))
	path.Close()
	s.fillPath(&path, clr)
}

func (s *Surface) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	r := float32(math.Min(radius, math.Min(w, h)/2))
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)

	var path vector.Path
	path.MoveTo(x0+r, y0)
	path.LineTo(x1-r, y0)
	path.ArcTo(x1, y0, x1, y0+r, r)
	path.LineTo(x1, y1-r)
	path.ArcTo(x1, y1, x1-r, y1, r)
	path.LineTo(x0+r, y1)
	path.ArcTo(x0, y1, x0, y1-r, r)
	path.LineTo(x0, y0+r)
	path.ArcTo(x0, y0, x0+r, y0, r)
	path.Close()
	s.fillPath(&path, c)
}

func (s *Surface) StrokeLine(a, b engine.Vec2, width float64, c color.Color) {
	vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
}

// fillPath triangulates a path and draws it in a single colour
func (s *Surface) fillPath(path *vector.Path, c color.Color) {
	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	r, g, b, a := float32(n.R)/255, float32(n.G)/255, float32(n.B)/255, float32(n.A)/255
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

func (s *Surface) DrawSprite(name string, pos engine.Vec2, size, rotation, alpha float64) bool {
	sprite, ok := s.sprites[name]
	if !ok || sprite == nil {
		return false
	}
	b := sprite.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(size/w, size/h)
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(sprite, op)
	return true
}
