package csz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrMalformedRecord = errors.New("malformed record")

// Reader reads records from text with one "city,state,zip" entry per line.
// Anything after the zip digits is ignored and blank lines are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// maxLineSize bounds a single record line.
const maxLineSize = 64 << 20

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: scanner}
}

// Read returns the next record, or io.EOF once the input is exhausted.
func (r *Reader) Read() (Record, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return rec, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("error reading line %d: %w", r.line+1, err)
	}
	return Record{}, io.EOF
}

func parseLine(line string) (Record, error) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) < 3 {
		return Record{}, fmt.Errorf("%w: expected city,state,zip; got %q", ErrMalformedRecord, line)
	}
	zipField := strings.TrimLeft(fields[2], " \t")
	end := 0
	for end < len(zipField) && zipField[end] >= '0' && zipField[end] <= '9' {
		end++
	}
	if end == 0 {
		return Record{}, fmt.Errorf("%w: zip %q is not a number", ErrMalformedRecord, fields[2])
	}
	zip, err := strconv.ParseUint(zipField[:end], 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("%w: zip %q: %v", ErrMalformedRecord, zipField[:end], err)
	}
	return New(fields[0], fields[1], uint32(zip)), nil
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader) ([]Record, error) {
	var recs []Record
	reader := NewReader(r)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}

// Write writes rec in the format Reader understands. Fields holding a separator cannot
// be represented and are rejected with ErrMalformedRecord.
func Write(w io.Writer, rec Record) error {
	for _, field := range []string{rec.City, rec.State} {
		if strings.ContainsAny(field, ",\r\n") {
			return fmt.Errorf("%w: field %q holds a separator", ErrMalformedRecord, field)
		}
	}
	_, err := fmt.Fprintf(w, "%s,%s,%d\n", rec.City, rec.State, rec.Zip)
	return err
}
