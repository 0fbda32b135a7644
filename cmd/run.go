package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Team2502/colordetect/pkg/api"
	"github.com/Team2502/colordetect/pkg/config"
	"github.com/Team2502/colordetect/pkg/record"
	"github.com/Team2502/colordetect/pkg/table"
	"github.com/Team2502/colordetect/pkg/vision"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the detection loop on a camera or video file",
	RunE:  runDetection,
}

func runDetection(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := vision.OpenSource(cfg.Camera.Device)
	if err != nil {
		return err
	}
	defer src.Close()

	detector, err := vision.NewDetector(cfg.Morphology, cfg.Classes)
	if err != nil {
		return err
	}
	defer detector.Close()

	latest := &vision.Latest{}
	publisher, shutdown, err := startTable(ctx, cfg, latest)
	if err != nil {
		return err
	}
	defer shutdown()

	pipeline := &vision.Pipeline{
		Source:          src,
		Detector:        detector,
		Publisher:       publisher,
		Latest:          latest,
		MaxReadFailures: cfg.Camera.MaxReadFailures,
		WaitMs:          cfg.Display.WaitMs,
	}

	if cfg.Display.Enabled {
		display := vision.NewWindowDisplay()
		defer display.Close()
		pipeline.Display = display
	}

	if cfg.Record.Video != "" {
		fps, width, height := src.Props()
		writer, err := gocv.VideoWriterFile(cfg.Record.Video, "MJPG", fps, width, height, true)
		if err != nil {
			return err
		}
		defer writer.Close()
		pipeline.Writer = writer
	}

	var recorderDone chan struct{}
	if cfg.Record.Enabled {
		recorder, err := record.Open(cfg.Record.Path, src.Name())
		if err != nil {
			return err
		}
		defer recorder.Close()
		log.Printf("run: Recording session %s to '%s'", recorder.Session(), cfg.Record.Path)

		results := make(chan vision.FrameResult, 16)
		pipeline.Results = results
		recorderDone = make(chan struct{})
		go func() {
			recorder.Run(results)
			close(recorderDone)
		}()

		//this function is the only sender, close once the loop is over
		defer func() {
			close(results)
			<-recorderDone

			for _, name := range cfg.ClassNames() {
				s, err := recorder.Stats(name)
				if err != nil {
					log.Printf("run: Error, got '%v'", err)
					continue
				}
				log.Printf("run: %s: %d boxes, area mean %.0f std %.0f min %.0f max %.0f", s.Class, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
			}
		}()
	}

	log.Printf("run: Detecting %v on '%s'", cfg.ClassNames(), src.Name())
	processed, err := pipeline.Run(ctx)
	log.Printf("run: Processed %d frames", processed)
	return err
}

//startTable returns the publisher matching table.mode. In serve mode it also starts the
//websocket hub and the HTTP server; the returned function stops them.
func startTable(ctx context.Context, cfg *config.Config, latest *vision.Latest) (vision.CoordinatePublisher, func(), error) {
	switch cfg.Table.Mode {
	case config.TableRemote:
		client, err := table.NewClient(cfg.Table.Server, cfg.Table.Timeout)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("startTable: Publishing to %s", cfg.Table.Server)
		return client, func() {}, nil

	case config.TableNone:
		return table.Discard{}, func() {}, nil
	}

	serveCtx, cancel := context.WithCancel(ctx)

	store := table.NewStore()
	hub := table.NewHub()
	go hub.Run(serveCtx)

	updates, unsubscribe := store.Subscribe(64)
	go hub.Forward(serveCtx, updates)

	server := &http.Server{
		Addr: cfg.Table.Listen,
		Handler: api.SetRouter(&api.Server{
			Store:   store,
			Hub:     hub,
			Latest:  latest,
			Classes: cfg.ClassNames(),
		}),
	}

	go func() {
		log.Printf("startTable: Serving table on %s", cfg.Table.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("startTable: Error, got '%v'", err)
		}
	}()

	return store, func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("startTable: Error shutting down, got '%v'", err)
		}
		unsubscribe()
		cancel()
	}, nil
}
