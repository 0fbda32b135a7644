package vision

import (
	"image"
	"image/color"
	"time"
)

//HSVRange is an inclusive OpenCV HSV range (H 0-180, S and V 0-255)
type HSVRange struct {
	Lower [3]float64 `json:"lower"`
	Upper [3]float64 `json:"upper"`
}

//ClassParams are the thresholds and plotting settings of one detection class
type ClassParams struct {
	Name     string
	Label    string //text plotted above each box
	Key      string //table key coordinates are published under
	MinArea  float64
	BoxColor color.RGBA
	Ranges   []HSVRange
}

//BoundingBox is the axis-aligned box of a contour that passed the area filter
type BoundingBox struct {
	X    int     `json:"x"`
	Y    int     `json:"y"`
	W    int     `json:"w"`
	H    int     `json:"h"`
	Area float64 `json:"area"` //contour area, not W*H
}

//Rect returns the box as an image.Rectangle
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

//ClassResult holds the boxes found for one class in one frame, in contour order
type ClassResult struct {
	Class string        `json:"class"`
	Key   string        `json:"key"`
	Boxes []BoundingBox `json:"boxes"`
}

//FrameResult is everything detected in a single frame
type FrameResult struct {
	Frame   int           `json:"frame"`
	Time    time.Time     `json:"time"`
	Classes []ClassResult `json:"classes"`
}

//Class returns the result of given class name
func (r FrameResult) Class(name string) (ClassResult, bool) {
	for _, c := range r.Classes {
		if c.Class == name {
			return c, true
		}
	}

	return ClassResult{}, false
}

//Total returns the number of boxes over all classes
func (r FrameResult) Total() int {
	total := 0
	for _, c := range r.Classes {
		total += len(c.Boxes)
	}

	return total
}
