package vision

import "gocv.io/x/gocv"

const (
	RawWindow         = "raw"
	MaskWindow        = "mask"
	HighlightedWindow = "Highlighted"
)

//Display shows frames to an operator and reports pressed keys
type Display interface {
	Show(name string, img gocv.Mat)
	WaitKey(delay int) int //-1 when no key was pressed
	Close() error
}

//WindowDisplay opens one gocv window per name, lazily
type WindowDisplay struct {
	windows map[string]*gocv.Window
	order   []string
}

func NewWindowDisplay() *WindowDisplay {
	return &WindowDisplay{windows: make(map[string]*gocv.Window)}
}

func (d *WindowDisplay) Show(name string, img gocv.Mat) {
	if img.Empty() {
		return
	}

	w, ok := d.windows[name]
	if !ok {
		w = gocv.NewWindow(name)
		d.windows[name] = w
		d.order = append(d.order, name)
	}

	w.IMShow(img)
}

func (d *WindowDisplay) WaitKey(delay int) int {
	if len(d.order) == 0 {
		return -1
	}

	return d.windows[d.order[0]].WaitKey(delay)
}

func (d *WindowDisplay) Close() error {
	var firstErr error
	for _, name := range d.order {
		if err := d.windows[name].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	d.windows = make(map[string]*gocv.Window)
	d.order = nil
	return firstErr
}

//NoDisplay is used on headless robots
type NoDisplay struct{}

func (NoDisplay) Show(string, gocv.Mat) {}

func (NoDisplay) WaitKey(int) int { return -1 }

func (NoDisplay) Close() error { return nil }
