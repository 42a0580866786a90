// Package format pretty-prints Tarragon source code.
// All layout thresholds derive from the line width.
package format

// DefaultLineWidth is the target maximum line length
const DefaultLineWidth = 92

// Threshold percentages of the line width.
// Lower values switch to multiline layout sooner.
const (
	ThresholdSmallPercent  = 50 // arrays and call arguments
	ThresholdIfElsePercent = 40 // single-line if/else
)

// Indentation follows gofmt: one tab per level
const (
	TabWidth     = 4
	IndentString = "\t"
)

// BlankLinesAroundFunctions separates top-level function definitions
const BlankLinesAroundFunctions = 1

func smallThreshold(width int) int {
	return width * ThresholdSmallPercent / 100
}

func ifElseThreshold(width int) int {
	return width * ThresholdIfElsePercent / 100
}
