package sample

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const maxLineBytes = 4 << 20

// Source yields samples in stream order. Next returns io.EOF once exhausted.
type Source interface {
	Next() (Sample, error)
}

// Decoder reads newline-delimited JSON samples.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Decoder{scanner: scanner}
}

// Next decodes the next non-blank line.
func (d *Decoder) Next() (Sample, error) {
	for d.scanner.Scan() {
		d.line++
		raw := bytes.TrimSpace(d.scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var s Sample
		if err := json.Unmarshal(raw, &s); err != nil {
			return Sample{}, fmt.Errorf("decode sample at line %d: %w", d.line, err)
		}
		return s, nil
	}
	if err := d.scanner.Err(); err != nil {
		return Sample{}, fmt.Errorf("read samples: %w", err)
	}
	return Sample{}, io.EOF
}

// ReadAll drains src into a slice.
func ReadAll(src Source) ([]Sample, error) {
	var out []Sample
	for {
		s, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}

// SliceSource replays an in-memory sample slice.
type SliceSource struct {
	samples []Sample
	pos     int
}

// NewSliceSource returns a Source over samples.
func NewSliceSource(samples []Sample) *SliceSource {
	return &SliceSource{samples: samples}
}

func (s *SliceSource) Next() (Sample, error) {
	if s.pos >= len(s.samples) {
		return Sample{}, io.EOF
	}
	out := s.samples[s.pos]
	s.pos++
	return out, nil
}

// MultiSource reads sources back to back.
type MultiSource struct {
	sources []Source
}

// NewMultiSource concatenates sources in order.
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

func (m *MultiSource) Next() (Sample, error) {
	for len(m.sources) > 0 {
		s, err := m.sources[0].Next()
		if errors.Is(err, io.EOF) {
			m.sources = m.sources[1:]
			continue
		}
		return s, err
	}
	return Sample{}, io.EOF
}
