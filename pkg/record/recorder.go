package record

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Team2502/colordetect/pkg/vision"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//Recorder logs every detected box to a SQLite database, one session per run
type Recorder struct {
	db      *sql.DB
	session string
}

//Open migrates the schema if needed and starts a new session for source
func Open(path, source string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("record.Open: '%s', got '%v'", path, err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("record.Open: could not create schema, got '%v'", err)
	}

	session := uuid.New().String()
	if _, err := db.Exec("INSERT INTO sessions (session_id, source) VALUES (?, ?)", session, source); err != nil {
		db.Close()
		return nil, fmt.Errorf("record.Open: could not start session, got '%v'", err)
	}

	return &Recorder{db: db, session: session}, nil
}

//Session returns the id of the current run
func (r *Recorder) Session() string {
	return r.session
}

//Record inserts every box of result in a single transaction
func (r *Recorder) Record(result vision.FrameResult) error {
	if result.Total() == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO detections (session_id, frame, class, x, y, w, h, area, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	capturedAt := result.Time.UTC().Format(time.RFC3339Nano)
	for _, c := range result.Classes {
		for _, b := range c.Boxes {
			if _, err := stmt.Exec(r.session, result.Frame, c.Class, b.X, b.Y, b.W, b.H, b.Area, capturedAt); err != nil {
				tx.Rollback()
				return fmt.Errorf("Record: frame %d, got '%v'", result.Frame, err)
			}
		}
	}

	return tx.Commit()
}

//Run records results until the channel is closed by its sender, buffered results included
func (r *Recorder) Run(results <-chan vision.FrameResult) {
	for result := range results {
		if err := r.Record(result); err != nil {
			log.Printf("Recorder.Run: Error, got '%v'", err)
		}
	}
}

//Count returns how many boxes of class were recorded in the current session
func (r *Recorder) Count(class string) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM detections WHERE session_id = ? AND class = ?", r.session, class).Scan(&n)
	return n, err
}

//Frames returns how many distinct frames had at least one detection in the current session
func (r *Recorder) Frames() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(DISTINCT frame) FROM detections WHERE session_id = ?", r.session).Scan(&n)
	return n, err
}

func (r *Recorder) Close() error {
	return r.db.Close()
}
