package vision

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

const (
	boxThickness = 2
	labelScale   = 1.0
)

//plotBox plots given bounding box with its label written at the box origin
func plotBox(frame *gocv.Mat, box BoundingBox, label string, plotColor color.RGBA) {
	gocv.Rectangle(frame, box.Rect(), plotColor, boxThickness)

	if label != "" {
		gocv.PutText(frame, label, image.Pt(box.X, box.Y), gocv.FontHersheySimplex, labelScale, plotColor, 1)
	}
}

//Annotate plots the boxes of every class result on frame using the class color and label.
//Results of classes this detector does not know are skipped.
func (d *Detector) Annotate(frame *gocv.Mat, results []ClassResult) {
	for _, result := range results {
		params, ok := d.class(result.Class)
		if !ok {
			continue
		}

		for _, box := range result.Boxes {
			plotBox(frame, box, params.Label, params.BoxColor)
		}
	}
}

func (d *Detector) class(name string) (ClassParams, bool) {
	for _, c := range d.classes {
		if c.Name == name {
			return c, true
		}
	}

	return ClassParams{}, false
}
