package vision

import (
	"fmt"
	"strconv"

	"gocv.io/x/gocv"
)

//FrameSource is where the frame loop reads frames from
type FrameSource interface {
	Read(frame *gocv.Mat) bool
	Name() string
	Live() bool //false for finite sources, a failed read on them means end of stream
	Close() error
}

//CaptureSource is a FrameSource backed by an OpenCV capture device or video file
type CaptureSource struct {
	capture *gocv.VideoCapture
	name    string
	live    bool
}

//OpenSource opens a webcam when device is an integer index, a video file or stream URL otherwise
func OpenSource(device string) (*CaptureSource, error) {
	var capture *gocv.VideoCapture
	var err error

	live := false
	if index, convErr := strconv.Atoi(device); convErr == nil {
		capture, err = gocv.OpenVideoCapture(index)
		live = true
	} else {
		capture, err = gocv.VideoCaptureFile(device)
	}

	if err != nil {
		return nil, fmt.Errorf("OpenSource: could not open '%s', got '%v'", device, err)
	}

	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("OpenSource: '%s' is not opened", device)
	}

	return &CaptureSource{capture: capture, name: device, live: live}, nil
}

func (s *CaptureSource) Read(frame *gocv.Mat) bool {
	return s.capture.Read(frame)
}

func (s *CaptureSource) Name() string {
	return s.name
}

func (s *CaptureSource) Live() bool {
	return s.live
}

func (s *CaptureSource) Close() error {
	return s.capture.Close()
}

//Props returns the capture frame rate and frame size, used to create a matching video writer
func (s *CaptureSource) Props() (fps float64, width, height int) {
	fps = s.capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 30
	}

	return fps, int(s.capture.Get(gocv.VideoCaptureFrameWidth)), int(s.capture.Get(gocv.VideoCaptureFrameHeight))
}
