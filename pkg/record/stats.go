package record

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

//AreaStats summarizes the contour areas recorded for a class
type AreaStats struct {
	Class  string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

//Stats returns the area summary of class for the current session. Count is 0 when nothing was recorded.
func (r *Recorder) Stats(class string) (AreaStats, error) {
	s := AreaStats{Class: class}

	rows, err := r.db.Query("SELECT area FROM detections WHERE session_id = ? AND class = ?", r.session, class)
	if err != nil {
		return s, fmt.Errorf("Stats: got '%v'", err)
	}
	defer rows.Close()

	areas := make([]float64, 0)
	for rows.Next() {
		var area float64
		if err := rows.Scan(&area); err != nil {
			return s, fmt.Errorf("Stats: got '%v'", err)
		}
		areas = append(areas, area)
	}

	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("Stats: got '%v'", err)
	}

	s.Count = len(areas)
	if s.Count == 0 {
		return s, nil
	}

	s.Min, s.Max = areas[0], areas[0]
	for _, a := range areas[1:] {
		if a < s.Min {
			s.Min = a
		}
		if a > s.Max {
			s.Max = a
		}
	}

	if s.Count == 1 {
		s.Mean = areas[0]
		return s, nil
	}

	s.Mean, s.StdDev = stat.MeanStdDev(areas, nil)
	return s, nil
}
