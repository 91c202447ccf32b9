package stream

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "hello", StripANSI("\x1b[31mhello\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
	assert.Equal(t, "", StripANSI("\x1b[2K\x1b[1G"))
}

func TestCleanSegments_CarriageReturnSplitsFrames(t *testing.T) {
	got := CleanSegments("Downloading 10%\rDownloading 50%\rDownloading 100%")

	assert.Equal(t, []string{
		"Downloading 10%",
		"Downloading 50%",
		"Downloading 100%",
	}, got)
}

func TestCleanSegments_StripsANSISequences(t *testing.T) {
	got := CleanSegments("\x1b[32mINFO\x1b[0m started")

	assert.Equal(t, []string{"INFO started"}, got)
}

func TestCleanSegments_ExpandsTabsToColumns(t *testing.T) {
	got := CleanSegments("a\tb")

	assert.Equal(t, []string{"a   b"}, got)

	got = CleanSegments("\tindented")

	assert.Equal(t, []string{"    indented"}, got)
}

func TestCleanSegments_KeepsDeliberateBlankLine(t *testing.T) {
	got := CleanSegments("")

	assert.Equal(t, []string{""}, got)
}

func TestCleanSegments_DropsANSIOnlySegments(t *testing.T) {
	// A segment that is non-empty but reduces to nothing after stripping is
	// terminal control noise, not content.
	got := CleanSegments("\x1b[2K\rreal output")

	assert.Equal(t, []string{"real output"}, got)
}

func TestCleanSegments_ReplacesInvalidUTF8(t *testing.T) {
	got := CleanSegments("bad \xff byte")

	assert.Equal(t, []string{"bad � byte"}, got)
}

func TestScanLinesKeepCR_PreservesCarriageReturns(t *testing.T) {
	r := strings.NewReader("one\rtwo\nthree\n")

	scanner := bufio.NewScanner(r)
	scanner.Split(ScanLinesKeepCR)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	assert.NoError(t, scanner.Err())
	assert.Equal(t, []string{"one\rtwo", "three"}, lines)
}

func TestScanLinesKeepCR_FinalLineWithoutNewline(t *testing.T) {
	r := strings.NewReader("partial")

	scanner := bufio.NewScanner(r)
	scanner.Split(ScanLinesKeepCR)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	assert.NoError(t, scanner.Err())
	assert.Equal(t, []string{"partial"}, lines)
}
