package vision

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Team2502/colordetect/pkg/utils"
	"gocv.io/x/gocv"
)

//CoordinatePublisher publishes a numeric array under a table key
type CoordinatePublisher interface {
	PutNumberArray(key string, values []float64) error
}

//Pipeline is the blocking frame loop: read, detect, annotate, publish, display
type Pipeline struct {
	Source    FrameSource
	Detector  *Detector
	Publisher CoordinatePublisher
	Display   Display //NoDisplay when nil

	Latest  *Latest            //optional
	Results chan<- FrameResult //optional, Run never closes it
	Writer  *gocv.VideoWriter  //optional, receives annotated frames

	MaxReadFailures int //consecutive failed reads tolerated on live sources, 0 means unlimited
	WaitMs          int //delay given to Display.WaitKey
}

//Run reads frames until the source ends, the quit key is pressed or ctx is cancelled.
//It returns the number of processed frames.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	if p.Display == nil {
		p.Display = NoDisplay{}
	}

	frame := gocv.NewMat()
	defer frame.Close()

	annotated := gocv.NewMat()
	defer annotated.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	processed := 0
	failures := 0

	for {
		select {
		case <-ctx.Done():
			log.Printf("Pipeline.Run: Stopping after %d frames", processed)
			return processed, nil
		default:
		}

		if ok := p.Source.Read(&frame); !ok || frame.Empty() {
			if !p.Source.Live() {
				log.Printf("Pipeline.Run: Device closed: %v", p.Source.Name())
				return processed, nil
			}

			failures++
			log.Printf("Pipeline.Run: Could not read frame from '%s', skipping", p.Source.Name())
			if p.MaxReadFailures > 0 && failures >= p.MaxReadFailures {
				return processed, fmt.Errorf("Pipeline.Run: %d consecutive read failures on '%s'", failures, p.Source.Name())
			}

			if p.waitForQuit(ctx) {
				log.Println("Pipeline.Run: Quit key pressed, stopping...")
				return processed, nil
			}

			continue
		}
		failures = 0

		result, err := p.ProcessFrame(frame, &annotated, &mask)
		if err != nil {
			log.Printf("Pipeline.Run: Error, got '%v'", err)
			continue
		}
		processed++
		result.Frame = processed

		if p.Latest != nil {
			if err := p.Latest.Update(result, annotated); err != nil {
				log.Printf("Pipeline.Run: Error, got '%v'", err)
			}
		}

		if p.Writer != nil {
			if err := p.Writer.Write(annotated); err != nil {
				log.Printf("Pipeline.Run: Error, got '%v'", err)
			}
		}

		if p.Results != nil {
			select {
			case p.Results <- result:
			case <-ctx.Done():
				return processed, nil
			}
		}

		p.Display.Show(RawWindow, frame)
		p.Display.Show(MaskWindow, mask)
		p.Display.Show(HighlightedWindow, annotated)
		if p.Display.WaitKey(p.WaitMs)&0xFF == utils.QuitKey {
			log.Println("Pipeline.Run: Quit key pressed, stopping...")
			return processed, nil
		}
	}
}

//waitForQuit paces the loop after a failed read and reports whether the quit key was pressed.
//Without windows there is no key to wait on, it sleeps WaitMs instead.
func (p *Pipeline) waitForQuit(ctx context.Context) bool {
	if _, headless := p.Display.(NoDisplay); headless {
		select {
		case <-ctx.Done():
		case <-time.After(time.Duration(p.WaitMs) * time.Millisecond):
		}
		return false
	}

	return p.Display.WaitKey(p.WaitMs)&0xFF == utils.QuitKey
}

//ProcessFrame detects every class in frame, writes the annotated copy and the union mask,
//and publishes each class coordinates. A publish failure is logged and does not fail the frame.
func (p *Pipeline) ProcessFrame(frame gocv.Mat, annotated, mask *gocv.Mat) (FrameResult, error) {
	classes, err := p.Detector.Detect(frame, mask)
	if err != nil {
		return FrameResult{}, err
	}

	frame.CopyTo(annotated)
	p.Detector.Annotate(annotated, classes)

	if p.Publisher != nil {
		for _, c := range classes {
			if err := p.Publisher.PutNumberArray(c.Key, CoordinatesOf(c.Boxes).Flatten()); err != nil {
				log.Printf("Pipeline.ProcessFrame: Could not publish '%s', got '%v'", c.Key, err)
			}
		}
	}

	return FrameResult{Time: time.Now(), Classes: classes}, nil
}
