package vision

//Coordinates are the per-detection values published for one class.
//All four slices always have the same length.
type Coordinates struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	H []float64 `json:"h"`
	W []float64 `json:"w"`
}

//CoordinatesOf builds the coordinate lists of given boxes, keeping their order
func CoordinatesOf(boxes []BoundingBox) Coordinates {
	c := Coordinates{
		X: make([]float64, 0, len(boxes)),
		Y: make([]float64, 0, len(boxes)),
		H: make([]float64, 0, len(boxes)),
		W: make([]float64, 0, len(boxes)),
	}

	for _, b := range boxes {
		c.X = append(c.X, float64(b.X))
		c.Y = append(c.Y, float64(b.Y))
		c.H = append(c.H, float64(b.H))
		c.W = append(c.W, float64(b.W))
	}

	return c
}

//Len returns the number of detections
func (c Coordinates) Len() int {
	return len(c.X)
}

//Flatten returns X, Y, H and W concatenated in that order. A consumer splits the
//array in four equal parts to get back the lists.
func (c Coordinates) Flatten() []float64 {
	flat := make([]float64, 0, 4*c.Len())
	flat = append(flat, c.X...)
	flat = append(flat, c.Y...)
	flat = append(flat, c.H...)
	flat = append(flat, c.W...)
	return flat
}

//Unflatten is the inverse of Flatten. ok is false when the length is not a multiple of four.
func Unflatten(flat []float64) (c Coordinates, ok bool) {
	if len(flat)%4 != 0 {
		return Coordinates{}, false
	}

	n := len(flat) / 4
	c.X = append([]float64{}, flat[:n]...)
	c.Y = append([]float64{}, flat[n:2*n]...)
	c.H = append([]float64{}, flat[2*n:3*n]...)
	c.W = append([]float64{}, flat[3*n:]...)
	return c, true
}
