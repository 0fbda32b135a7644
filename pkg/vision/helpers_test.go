package vision

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

var (
	//BGR (200,20,20): H 120, S 230, V 200
	friendlyBlue = color.RGBA{R: 20, G: 20, B: 200}
	//BGR (100,20,200): H 167, S 230, V 200
	opponentRed = color.RGBA{R: 200, G: 20, B: 100}
	//BGR (0,128,255): H 15, S 255, V 255
	noteOrange = color.RGBA{R: 255, G: 128, B: 0}
	boxCyan    = color.RGBA{R: 0, G: 255, B: 255}
)

func testClasses() []ClassParams {
	return []ClassParams{
		{
			Name: "friendly", Label: "Friendly!", Key: "friendly coordinates:", MinArea: 1000, BoxColor: boxCyan,
			Ranges: []HSVRange{
				{Lower: [3]float64{80, 100, 0}, Upper: [3]float64{90, 245, 245}},
				{Lower: [3]float64{90, 100, 0}, Upper: [3]float64{130, 245, 245}},
			},
		},
		{
			Name: "opponent", Label: "Enemy!", Key: "opponent coordinates:", MinArea: 700, BoxColor: boxCyan,
			Ranges: []HSVRange{
				{Lower: [3]float64{1, 5, 5}, Upper: [3]float64{5, 150, 150}},
				{Lower: [3]float64{160, 5, 5}, Upper: [3]float64{255, 245, 245}},
			},
		},
		{
			Name: "note", Label: "Note!", Key: "note coordinates:", MinArea: 500, BoxColor: boxCyan,
			Ranges: []HSVRange{
				{Lower: [3]float64{4.5, 50, 50}, Upper: [3]float64{25, 255, 255}},
			},
		},
	}
}

type filledRect struct {
	rect  image.Rectangle
	color color.RGBA
}

//syntheticFrame returns a black 640x480 BGR frame with given filled rectangles
func syntheticFrame(t *testing.T, rects ...filledRect) gocv.Mat {
	t.Helper()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
	for _, r := range rects {
		gocv.Rectangle(&frame, r.rect, r.color, -1)
	}

	return frame
}

func newTestDetector(t *testing.T) *Detector {
	t.Helper()

	d, err := NewDetector(DefaultMorphology, testClasses())
	if err != nil {
		t.Fatalf("NewDetector failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	return d
}
