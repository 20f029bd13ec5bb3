package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, {}, []byte("\n\n")} {
		s, err := ParseCSV(data)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, []string{"Username", "Password"}, s.Columns())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	s := NewSet(
		Record{"alice", "p1"},
		Record{"bob", `with,comma "and quotes"`},
		Record{"carol", "multi\nline"},
		Record{"", ""},
	)

	data, err := s.MarshalCSV()
	require.NoError(t, err)

	parsed, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, s.Records(), parsed.Records())
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ParseCSV([]byte("alice,p1,extra\n"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseCSV([]byte("alice\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRecordsReturnsCopy(t *testing.T) {
	s := NewSet(Record{"alice", "p1"})
	recs := s.Records()
	recs[0].Password = "changed"

	assert.Equal(t, "p1", s.Records()[0].Password)
}

func TestMarshalCSVRefusesCarriageReturn(t *testing.T) {
	for _, rec := range []Record{
		{"alice", "line1\r\nline2"},
		{"alice", "trailing\r"},
		{"bob\r", "p1"},
	} {
		_, err := NewSet(Record{"carol", "ok"}, rec).MarshalCSV()
		assert.ErrorIs(t, err, ErrCarriageReturn)
	}
}
