package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column names of a record table
const (
	ColumnUsername = "Username"
	ColumnPassword = "Password"
)

var (
	ErrMalformed      = errors.New("malformed record data")
	ErrCarriageReturn = errors.New("record contains a carriage return")
)

// Record is one stored credential
type Record struct {
	Username string
	Password string
}

// Set is an ordered record table with the columns Username and Password
type Set struct {
	records []Record
}

// NewSet returns a set holding records in order
func NewSet(records ...Record) *Set {
	return &Set{records: append([]Record(nil), records...)}
}

// Columns returns the table's column names
func (s *Set) Columns() []string {
	return []string{ColumnUsername, ColumnPassword}
}

// Len returns the number of records
func (s *Set) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in order
func (s *Set) Records() []Record {
	return append([]Record(nil), s.records...)
}

// ParseCSV decodes the stored form. Data with no rows yields an empty set.
func ParseCSV(data []byte) (*Set, error) {
	s := &Set{}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 2
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		s.records = append(s.records, Record{Username: row[0], Password: row[1]})
	}
	return s, nil
}

// MarshalCSV encodes the set in its stored form. The CSV reader turns a
// quoted \r\n into \n, so fields holding \r are refused rather than
// changed.
func (s *Set) MarshalCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, rec := range s.records {
		if strings.ContainsRune(rec.Username, '\r') || strings.ContainsRune(rec.Password, '\r') {
			return nil, fmt.Errorf("%w: username %q", ErrCarriageReturn, rec.Username)
		}
		if err := w.Write([]string{rec.Username, rec.Password}); err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return buf.Bytes(), nil
}
