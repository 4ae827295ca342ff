package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/csz-bench/csz"
)

func TestDemo(t *testing.T) {
	recs, err := csz.ReadAll(strings.NewReader("Boston,MA,2108\nAustin,TX,73301\nChicago,IL,60601\nBoston,MA,2109\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, demo(&out, strings.NewReader("\n"), recs))

	sorted := "Austin, TX 73301\nBoston, MA 02108\nBoston, MA 02109\nChicago, IL 60601\n"
	expected := "test nodes:\n" +
		"Boston, MA 02108\n" +
		"Austin, TX 73301\n" +
		"\n" +
		"Press <enter> to continue...\n" +
		"built iteratively, written iteratively:\n" + sorted + "\n" +
		"built iteratively, written recursively:\n" + sorted + "\n" +
		"built recursively, written iteratively:\n" + sorted + "\n" +
		"built recursively, written recursively:\n" + sorted + "\n"
	require.Equal(t, expected, out.String())
}

func TestDemoEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, demo(&out, nil, nil))
	require.True(t, strings.HasPrefix(out.String(), "test nodes:\n\nbuilt iteratively"))
	require.Equal(t, 4, strings.Count(out.String(), "built "))
}
