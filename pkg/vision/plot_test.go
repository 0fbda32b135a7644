package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

//nonBlack counts the pixels of a BGR frame that are not pure black
func nonBlack(t *testing.T, frame gocv.Mat) int {
	t.Helper()

	gray := gocv.NewMat()
	defer gray.Close()
	require.NoError(t, gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray))

	return gocv.CountNonZero(gray)
}

func TestAnnotateDrawsClassColor(t *testing.T) {
	d := newTestDetector(t)

	frame := syntheticFrame(t)
	defer frame.Close()

	box := BoundingBox{X: 100, Y: 200, W: 80, H: 60}
	d.Annotate(&frame, []ClassResult{{Class: "friendly", Boxes: []BoundingBox{box}}})

	r := box.Rect()
	cyan := gocv.Vecb{255, 255, 0} //#00FFFF in BGR order
	assert.Equal(t, cyan, frame.GetVecbAt(r.Min.Y+r.Dy()/2, r.Min.X), "left edge")
	assert.Equal(t, cyan, frame.GetVecbAt(r.Max.Y, r.Min.X+r.Dx()/2), "bottom edge")
	assert.Equal(t, cyan, frame.GetVecbAt(r.Min.Y+r.Dy()/2, r.Max.X), "right edge")

	//inside of the box is left alone
	assert.Equal(t, gocv.Vecb{0, 0, 0}, frame.GetVecbAt(r.Min.Y+r.Dy()/2, r.Min.X+r.Dx()/2))
}

func TestAnnotateSkipsUnknownClass(t *testing.T) {
	d := newTestDetector(t)

	frame := syntheticFrame(t)
	defer frame.Close()

	d.Annotate(&frame, []ClassResult{{Class: "ball", Boxes: []BoundingBox{{X: 100, Y: 200, W: 80, H: 60}}}})
	assert.Equal(t, 0, nonBlack(t, frame))

	d.Annotate(&frame, []ClassResult{{Class: "note"}})
	assert.Equal(t, 0, nonBlack(t, frame))
}

func TestProcessFrameAnnotates(t *testing.T) {
	d := newTestDetector(t)
	p := &Pipeline{Detector: d}

	frame := pipelineFrames(t, 1)[0]
	annotated := gocv.NewMat()
	defer annotated.Close()

	result, err := p.ProcessFrame(frame, &annotated, nil)
	require.NoError(t, err)

	friendly, ok := result.Class("friendly")
	require.True(t, ok)
	require.Len(t, friendly.Boxes, 1)

	r := friendly.Boxes[0].Rect()
	assert.Equal(t, gocv.Vecb{255, 255, 0}, annotated.GetVecbAt(r.Min.Y+r.Dy()/2, r.Min.X))
	//the source frame is not drawn on
	assert.NotEqual(t, gocv.Vecb{255, 255, 0}, frame.GetVecbAt(r.Min.Y+r.Dy()/2, r.Min.X))
}
