package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInSlice(t *testing.T) {
	classes := []string{FriendlyClass, OpponentClass}

	assert.True(t, InSlice(FriendlyClass, classes))
	assert.True(t, InSlice(OpponentClass, classes))
	assert.False(t, InSlice(NoteClass, classes))
	assert.False(t, InSlice("", nil))
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	names, err := ListDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.png", "notes.txt"}, names)

	_, err = ListDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestIsImageFile(t *testing.T) {
	var tests = []struct {
		path string
		want bool
	}{
		{"frame.jpg", true},
		{"frame.JPEG", true},
		{"dir/field.png", true},
		{"frame.bmp", true},
		{"match.mp4", false},
		{"README", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsImageFile(tt.path))
		})
	}
}
