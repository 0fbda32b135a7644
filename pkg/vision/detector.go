package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

//Morphology configures the cleanup applied to every class mask
type Morphology struct {
	KernelSize       int //side of the square all-ones structuring element
	ErodeIterations  int
	DilateIterations int
}

//DefaultMorphology erodes twice and dilates once with a 7x7 kernel
var DefaultMorphology = Morphology{KernelSize: 7, ErodeIterations: 2, DilateIterations: 1}

//Detector runs the HSV threshold pipeline for a fixed list of classes.
//It is not safe for concurrent use, the frame loop owns it.
type Detector struct {
	morph   Morphology
	classes []ClassParams
	kernel  gocv.Mat
}

//NewDetector validates given settings and allocates the structuring element. Call Close when done.
func NewDetector(morph Morphology, classes []ClassParams) (*Detector, error) {
	if morph.KernelSize <= 0 {
		return nil, fmt.Errorf("NewDetector: invalid kernel size %d", morph.KernelSize)
	}

	if morph.ErodeIterations < 0 || morph.DilateIterations < 0 {
		return nil, errors.New("NewDetector: negative morphology iterations")
	}

	if len(classes) == 0 {
		return nil, errors.New("NewDetector: no classes to detect")
	}

	for _, c := range classes {
		if len(c.Ranges) == 0 {
			return nil, fmt.Errorf("NewDetector: class '%s' has no HSV ranges", c.Name)
		}
	}

	return &Detector{
		morph:   morph,
		classes: classes,
		kernel:  gocv.GetStructuringElement(gocv.MorphRect, image.Pt(morph.KernelSize, morph.KernelSize)),
	}, nil
}

//Close releases the structuring element
func (d *Detector) Close() error {
	return d.kernel.Close()
}

//Classes returns the classes in detection order
func (d *Detector) Classes() []ClassParams {
	return d.classes
}

//Mask thresholds an HSV image with every given range and adds the results together.
//Addition saturates at 255 so overlapping ranges behave like a union.
func (d *Detector) Mask(hsv gocv.Mat, ranges []HSVRange) (gocv.Mat, error) {
	if len(ranges) == 0 {
		return gocv.NewMat(), errors.New("Mask: no HSV ranges")
	}

	mask := gocv.NewMat()
	rangeMask := gocv.NewMat()
	defer rangeMask.Close()

	for i, r := range ranges {
		lower := gocv.NewScalar(r.Lower[0], r.Lower[1], r.Lower[2], 0)
		upper := gocv.NewScalar(r.Upper[0], r.Upper[1], r.Upper[2], 0)

		if i == 0 {
			gocv.InRangeWithScalar(hsv, lower, upper, &mask)
			continue
		}

		gocv.InRangeWithScalar(hsv, lower, upper, &rangeMask)
		gocv.Add(mask, rangeMask, &mask)
	}

	return mask, nil
}

//Clean erodes then dilates given mask in place
func (d *Detector) Clean(mask *gocv.Mat) {
	for i := 0; i < d.morph.ErodeIterations; i++ {
		gocv.Erode(*mask, mask, d.kernel)
	}

	for i := 0; i < d.morph.DilateIterations; i++ {
		gocv.Dilate(*mask, mask, d.kernel)
	}
}

//FindBoxes returns the bounding boxes of mask contours whose area is strictly greater than minArea
func FindBoxes(mask gocv.Mat, minArea float64) []BoundingBox {
	boxes := make([]BoundingBox, 0)

	contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		area := gocv.ContourArea(contour)
		if area <= minArea {
			continue
		}

		rect := gocv.BoundingRect(contour)
		boxes = append(boxes, BoundingBox{
			X:    rect.Min.X,
			Y:    rect.Min.Y,
			W:    rect.Dx(),
			H:    rect.Dy(),
			Area: area,
		})
	}

	return boxes
}

//Detect converts a BGR frame to HSV once and runs the mask/clean/contour steps for every class.
//When union is not nil it receives the OR of all cleaned class masks, useful to tune thresholds.
func (d *Detector) Detect(frame gocv.Mat, union *gocv.Mat) ([]ClassResult, error) {
	if frame.Empty() {
		return nil, errors.New("Detect: empty frame")
	}

	hsv := gocv.NewMat()
	defer hsv.Close()

	if err := gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV); err != nil {
		return nil, fmt.Errorf("Detect: could not convert frame to HSV, got '%v'", err)
	}

	results := make([]ClassResult, 0, len(d.classes))
	for i, class := range d.classes {
		mask, err := d.Mask(hsv, class.Ranges)
		if err != nil {
			mask.Close()
			return nil, fmt.Errorf("Detect: class '%s': %w", class.Name, err)
		}

		d.Clean(&mask)

		results = append(results, ClassResult{
			Class: class.Name,
			Key:   class.Key,
			Boxes: FindBoxes(mask, class.MinArea),
		})

		if union != nil {
			if i == 0 {
				mask.CopyTo(union)
			} else {
				gocv.BitwiseOr(*union, mask, union)
			}
		}

		mask.Close()
	}

	return results, nil
}
