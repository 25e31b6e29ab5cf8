package bencode

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeBlockError(t *testing.T, text string) *InvalidBlockError {
	t.Helper()
	_, err := Decode([]byte(text))
	require.NotNil(t, err)
	var blockErr *InvalidBlockError
	require.True(t, errors.As(err, &blockErr))
	return blockErr
}

func TestReportUnderlinesWholeBlock(t *testing.T) {
	require := require.New(t)

	blockErr := decodeBlockError(t, "d5:helloe")
	lines := strings.Split(blockErr.Report(), "\n")
	require.Equal("Invalid dict block in buffer of length 9 (utf-8) at bytes 0..8:", lines[0])
	require.Equal("dict has an odd number of elements", lines[1])
	require.Equal("d5:helloe", lines[2])
	require.Equal("^^^^^^^^^", lines[3])
}

func TestReportUnderlinesInnerSpan(t *testing.T) {
	require := require.New(t)

	blockErr := decodeBlockError(t, "l4:spamiabce")
	lines := strings.Split(blockErr.Report(), "\n")
	require.Equal("Invalid integer block in buffer of length 12 (utf-8) at bytes 7..11:", lines[0])
	require.Equal("Integer block contains a non-decimal character", lines[1])
	require.Equal("l4:spamiabce", lines[2])
	require.Equal("       ^^^^^", lines[3])
}

func TestReportClampsRangePastBufferEnd(t *testing.T) {
	require := require.New(t)

	// trailing-bytes errors report To one past the last index
	blockErr := decodeBlockError(t, "5:helloXY")
	require.Equal(9, blockErr.To)
	lines := strings.Split(blockErr.Report(), "\n")
	require.Equal("5:helloXY", lines[2])
	require.Equal("       ^^", lines[3])
}

func TestReportWrapsLongBuffers(t *testing.T) {
	require := require.New(t)

	text := "l" + strings.Repeat("4:aaaa", 20)
	blockErr := decodeBlockError(t, text)
	require.Equal("list does not end", blockErr.Reason)
	lines := strings.Split(blockErr.Report(), "\n")
	require.Equal(text[:80], lines[2])
	require.Equal(strings.Repeat("^", 80), lines[3])
	require.Equal(text[80:], lines[4])
	require.Equal(strings.Repeat("^", 41), lines[5])
}

func TestReportSkipsLinesOutsideSpan(t *testing.T) {
	require := require.New(t)

	// valid 100-byte block followed by trailing garbage, so only the second
	// wrapped line carries a marker
	text := "97:" + strings.Repeat("a", 97) + "XY"
	blockErr := decodeBlockError(t, text)
	require.Equal("Invalid straw characters.", blockErr.Reason)
	lines := strings.Split(blockErr.Report(), "\n")
	require.Equal(text[:80], lines[2])
	require.Equal(text[80:], lines[3])
	require.Equal(strings.Repeat(" ", 20)+"^^", lines[4])
}

func TestErrorStringIsSingleLine(t *testing.T) {
	require := require.New(t)

	blockErr := decodeBlockError(t, "i314")
	require.Equal("invalid integer block at bytes 0..4: Integer block does not end", blockErr.Error())
	require.NotContains(blockErr.Error(), "\n")
}
