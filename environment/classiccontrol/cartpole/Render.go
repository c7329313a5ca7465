package cartpole

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	ViewportW float64 = 600
	ViewportH float64 = 400
	Scale     float64 = ViewportW / (2 * PositionBounds) // pixels per meter

	cartWidth  float64 = 50
	cartHeight float64 = 30
	poleWidth  float64 = 10
	trackY     float64 = 300
)

var (
	skyColour   = color.RGBA{255, 255, 255, 255}
	trackColour = color.RGBA{0, 0, 0, 255}
	cartColour  = color.RGBA{40, 40, 40, 255}
	poleColour  = color.RGBA{204, 153, 102, 255}
	axleColour  = color.RGBA{128, 128, 204, 255}
)

// Render draws the current state of the environment and saves it as a
// PNG image at filename
func (c *Cartpole) Render(filename string) error {
	dc := gg.NewContext(int(ViewportW), int(ViewportH))
	dc.SetColor(skyColour)
	dc.Clear()

	state := c.lastStep.Observation
	cartX := state.AtVec(Position)*Scale + ViewportW/2
	angle := state.AtVec(Angle)

	// Track
	dc.SetColor(trackColour)
	dc.SetLineWidth(1.0)
	dc.DrawLine(0, trackY, ViewportW, trackY)
	dc.Stroke()

	// Cart
	dc.SetColor(cartColour)
	dc.DrawRectangle(cartX-cartWidth/2, trackY-cartHeight/2, cartWidth,
		cartHeight)
	dc.Fill()

	// Pole, drawn upwards from the axle and rotated clockwise by the
	// pole angle
	poleLength := 2 * c.halfPoleLength * Scale
	axleY := trackY - cartHeight/4

	dc.Push()
	dc.RotateAbout(angle, cartX, axleY)
	dc.SetColor(poleColour)
	dc.DrawRectangle(cartX-poleWidth/2, axleY-poleLength, poleWidth,
		poleLength)
	dc.Fill()
	dc.Pop()

	// Axle
	dc.SetColor(axleColour)
	dc.DrawCircle(cartX, axleY, poleWidth/2)
	dc.Fill()

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("render: could not save frame: %w", err)
	}
	return nil
}
