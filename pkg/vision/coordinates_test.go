package vision

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCoordinatesOf(t *testing.T) {
	boxes := []BoundingBox{
		{X: 10, Y: 20, W: 30, H: 40},
		{X: 1, Y: 2, W: 3, H: 4},
	}

	got := CoordinatesOf(boxes)
	want := Coordinates{
		X: []float64{10, 1},
		Y: []float64{20, 2},
		H: []float64{40, 4},
		W: []float64{30, 3},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CoordinatesOf mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, got.Len())
}

func TestCoordinatesEmpty(t *testing.T) {
	c := CoordinatesOf(nil)

	assert.Equal(t, 0, c.Len())
	assert.Len(t, c.Y, 0)
	assert.Len(t, c.H, 0)
	assert.Len(t, c.W, 0)
	assert.Equal(t, []float64{}, c.Flatten())
}

func TestFlattenOrder(t *testing.T) {
	c := CoordinatesOf([]BoundingBox{
		{X: 10, Y: 20, W: 30, H: 40},
		{X: 1, Y: 2, W: 3, H: 4},
	})

	assert.Equal(t, []float64{10, 1, 20, 2, 40, 4, 30, 3}, c.Flatten())
}

func TestUnflatten(t *testing.T) {
	c := CoordinatesOf([]BoundingBox{{X: 5, Y: 6, W: 7, H: 8}})

	back, ok := Unflatten(c.Flatten())
	assert.True(t, ok)
	if diff := cmp.Diff(c, back); diff != "" {
		t.Errorf("Unflatten mismatch (-want +got):\n%s", diff)
	}

	_, ok = Unflatten([]float64{1, 2, 3})
	assert.False(t, ok)
}

func TestBoundingBoxRect(t *testing.T) {
	b := BoundingBox{X: 10, Y: 20, W: 30, H: 40}
	r := b.Rect()

	assert.Equal(t, 10, r.Min.X)
	assert.Equal(t, 20, r.Min.Y)
	assert.Equal(t, 30, r.Dx())
	assert.Equal(t, 40, r.Dy())
}

func TestFrameResultLookup(t *testing.T) {
	r := FrameResult{Classes: []ClassResult{
		{Class: "friendly", Boxes: []BoundingBox{{}, {}}},
		{Class: "note", Boxes: []BoundingBox{{}}},
	}}

	note, ok := r.Class("note")
	assert.True(t, ok)
	assert.Len(t, note.Boxes, 1)

	_, ok = r.Class("opponent")
	assert.False(t, ok)
	assert.Equal(t, 3, r.Total())
}
