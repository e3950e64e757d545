package interior

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

// CandidateSink receives every valid candidate of a scan in canonical order
type CandidateSink interface {
	OnStart(gridPoints int) error
	OnCandidate(c Candidate) error
	OnEnd(best BestFit) error
}

// JSONLCandidateWriter streams candidates as one JSON object per line
type JSONLCandidateWriter struct {
	f  *os.File
	bw *bufio.Writer
}

// NewJSONLCandidateWriter writes to w. Close only flushes.
func NewJSONLCandidateWriter(w io.Writer) *JSONLCandidateWriter {
	return &JSONLCandidateWriter{bw: bufio.NewWriter(w)}
}

// CreateJSONLCandidateFile creates path and writes candidates to it
func CreateJSONLCandidateFile(path string) (*JSONLCandidateWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONLCandidateWriter{f: f, bw: bufio.NewWriter(f)}, nil
}

// OnStart is a no-op; the dump has no header line
func (w *JSONLCandidateWriter) OnStart(gridPoints int) error { return nil }

// OnCandidate writes c as one JSON line
func (w *JSONLCandidateWriter) OnCandidate(c Candidate) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if _, err := w.bw.Write(b); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

// OnEnd flushes buffered lines
func (w *JSONLCandidateWriter) OnEnd(best BestFit) error { return w.bw.Flush() }

// Close flushes buffered lines and closes the file, if any
func (w *JSONLCandidateWriter) Close() error {
	if w.bw != nil {
		if err := w.bw.Flush(); err != nil {
			return err
		}
	}
	if w.f != nil {
		return w.f.Close()
	}
	return nil
}

// CandidateCollector keeps every candidate in memory
type CandidateCollector struct {
	gridPoints int
	candidates []Candidate
}

// OnStart resets the collector and sizes it for the grid
func (c *CandidateCollector) OnStart(gridPoints int) error {
	c.gridPoints = gridPoints
	c.candidates = make([]Candidate, 0, gridPoints)
	return nil
}

// OnCandidate appends cand
func (c *CandidateCollector) OnCandidate(cand Candidate) error {
	c.candidates = append(c.candidates, cand)
	return nil
}

// OnEnd is a no-op
func (c *CandidateCollector) OnEnd(best BestFit) error { return nil }

// Candidates returns the collected candidates in canonical order
func (c *CandidateCollector) Candidates() []Candidate {
	return c.candidates
}

// GridPoints returns the grid size reported at the start of the scan
func (c *CandidateCollector) GridPoints() int {
	return c.gridPoints
}

type multiSink []CandidateSink

// MultiSink fans every callback out to all sinks, stopping at the first error
func MultiSink(sinks ...CandidateSink) CandidateSink {
	return multiSink(sinks)
}

// OnStart forwards to every sink
func (m multiSink) OnStart(gridPoints int) error {
	for _, s := range m {
		if err := s.OnStart(gridPoints); err != nil {
			return err
		}
	}
	return nil
}

// OnCandidate forwards to every sink
func (m multiSink) OnCandidate(c Candidate) error {
	for _, s := range m {
		if err := s.OnCandidate(c); err != nil {
			return err
		}
	}
	return nil
}

// OnEnd forwards to every sink
func (m multiSink) OnEnd(best BestFit) error {
	for _, s := range m {
		if err := s.OnEnd(best); err != nil {
			return err
		}
	}
	return nil
}
