package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteXData writes the grading table: one "time, position" row per
// sample, comma-space delimited, no header.
func WriteXData(w io.Writer, times, positions []float64) error {
	if len(times) != len(positions) {
		return fmt.Errorf("mismatched lengths: %d times, %d positions", len(times), len(positions))
	}

	bw := bufio.NewWriter(w)
	for i := range times {
		if _, err := fmt.Fprintf(bw, "%.6f, %.6f\n", times[i], positions[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// XDataTable re-pairs a stored trajectory (leading pre-step snapshot
// plus one entry per step) into grading rows: row i holds sample time
// i*dt and the position reached by the end of step i. The pre-step
// snapshot is dropped, so a run of N steps yields N rows.
func XDataTable(times, positions []float64) ([]float64, []float64, error) {
	if len(times) != len(positions) {
		return nil, nil, fmt.Errorf("mismatched lengths: %d times, %d positions", len(times), len(positions))
	}
	if len(times) < 2 {
		return nil, nil, fmt.Errorf("not enough samples: %d", len(times))
	}

	n := len(times) - 1
	ts := make([]float64, n)
	xs := make([]float64, n)
	for i := 0; i < n; i++ {
		ts[i] = times[i]
		xs[i] = positions[i+1]
	}
	return ts, xs, nil
}

func SaveXData(path string, times, positions []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteXData(file, times, positions)
}

type ExportData struct {
	ID       string             `json:"id"`
	Driver   string             `json:"driver"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Columns  []string           `json:"columns"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, times []float64, states [][]float64) error {
	data := ExportData{
		ID:       meta.ID,
		Driver:   meta.Driver,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    len(times),
		Columns:  StateColumns,
		Times:    times,
		States:   states,
		Metrics:  meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
