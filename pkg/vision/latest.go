package vision

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

//Latest keeps the last frame result and its annotated JPEG for readers outside the frame loop
type Latest struct {
	mu     sync.RWMutex
	result *FrameResult
	jpeg   []byte
}

//Update encodes the annotated frame and stores it along with result
func (l *Latest) Update(result FrameResult, annotated gocv.Mat) error {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, annotated)
	if err != nil {
		return fmt.Errorf("Latest.Update: could not encode frame %d, got '%v'", result.Frame, err)
	}
	defer buf.Close()

	//buffer memory is owned by OpenCV, copy before closing it
	jpeg := append([]byte(nil), buf.GetBytes()...)
	l.Set(result, jpeg)
	return nil
}

//Set stores result and an already encoded snapshot
func (l *Latest) Set(result FrameResult, jpeg []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.result = &result
	l.jpeg = jpeg
}

//Result returns the last frame result, ok is false before the first frame
func (l *Latest) Result() (FrameResult, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.result == nil {
		return FrameResult{}, false
	}

	return *l.result, true
}

//Snapshot returns the last annotated frame as JPEG, ok is false before the first frame
func (l *Latest) Snapshot() ([]byte, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.jpeg, len(l.jpeg) > 0
}
