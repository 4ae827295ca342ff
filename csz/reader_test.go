package csz

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	input := "Boston,MA,2108\n" +
		"\n" +
		"Austin,TX, 73301 trailing junk\r\n" +
		"Fond du Lac,WI,54935"
	r := NewReader(strings.NewReader(input))

	rec, err := r.Read()
	require.NoError(t, err)
	require.Equal(t, New("Boston", "MA", 2108), rec)

	rec, err = r.Read()
	require.NoError(t, err)
	require.Equal(t, New("Austin", "TX", 73301), rec)

	rec, err = r.Read()
	require.NoError(t, err)
	require.Equal(t, New("Fond du Lac", "WI", 54935), rec)

	_, err = r.Read()
	require.Equal(t, io.EOF, err)
}

func TestReaderMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing zip", "Boston,MA\n"},
		{"missing state", "Boston\n"},
		{"zip not numeric", "Boston,MA,abc\n"},
		{"zip overflows", "Boston,MA,99999999999\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadAll(strings.NewReader("Austin,TX,73301\n" + tc.input))
			require.ErrorIs(t, err, ErrMalformedRecord)
			require.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestWriteReadAll(t *testing.T) {
	recs := []Record{
		New("Boston", "MA", 2108),
		New("Austin", "TX", 73301),
		New("Chicago", "IL", 60601),
	}
	var buf bytes.Buffer
	for _, rec := range recs {
		require.NoError(t, Write(&buf, rec))
	}
	require.Equal(t, "Boston,MA,2108\nAustin,TX,73301\nChicago,IL,60601\n", buf.String())

	got, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Equal(t, recs, got)

	for _, rec := range []Record{
		New("A,B", "12", 5),
		New("Boston", "M,A", 2108),
		New("Bos\nton", "MA", 2108),
		New("Boston", "MA\r", 2108),
	} {
		buf.Reset()
		require.ErrorIs(t, Write(&buf, rec), ErrMalformedRecord)
		require.Zero(t, buf.Len())
	}
}

func TestReaderLongLine(t *testing.T) {
	city := strings.Repeat("x", 70_000)
	got, err := ReadAll(strings.NewReader(city + ",MA,2108\nAustin,TX,73301\n"))
	require.NoError(t, err)
	require.Equal(t, []Record{New(city, "MA", 2108), New("Austin", "TX", 73301)}, got)
}

func TestReadAllEmpty(t *testing.T) {
	got, err := ReadAll(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, got)
}
