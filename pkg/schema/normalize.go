package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// IndentUnitPx is the width of one indent level in pixels (roughly 1em).
const IndentUnitPx = 20

// MaxIndentLevel is the largest text indent level. Its pixel width still
// fits in an int32.
const MaxIndentLevel = math.MaxInt32 / IndentUnitPx

// Align is a paragraph alignment. The zero value means "not set".
type Align string

const (
	AlignNone    Align = ""
	AlignLeft    Align = "left"
	AlignRight   Align = "right"
	AlignCenter  Align = "center"
	AlignJustify Align = "justify"
)

// NormalizeAlign maps raw alignment markup to an Align. Keywords are matched
// exactly after trimming and lower-casing; anything else is AlignNone.
func NormalizeAlign(raw string) Align {
	switch a := Align(strings.ToLower(strings.TrimSpace(raw))); a {
	case AlignLeft, AlignRight, AlignCenter, AlignJustify:
		return a
	}
	return AlignNone
}

var lengthPattern = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+))([a-z%]*)$`)

// TextIndentLevel converts a CSS text-indent value to indent levels.
// em values are taken as levels directly; px values are divided by
// IndentUnitPx, rounding down, except that a positive width never becomes 0.
// Other units, bad input and negative widths give 0. Levels are capped at
// MaxIndentLevel.
func TextIndentLevel(css string) int {
	m := lengthPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(css)))
	if m == nil {
		return 0
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil || num <= 0 {
		return 0
	}

	switch m[2] {
	case "em":
		return clampLevel(num)
	case "px":
		level := clampLevel(math.Floor(num / IndentUnitPx))
		if level == 0 {
			level = 1
		}
		return level
	}
	return 0
}

// clampLevel truncates a non-negative level to an int no larger than
// MaxIndentLevel.
func clampLevel(level float64) int {
	if level >= MaxIndentLevel {
		return MaxIndentLevel
	}
	return int(level)
}

// ParseIndent reads a data-indent value. Non-numeric input is 0, fractions
// are truncated and negatives clamp to 0.
func ParseIndent(raw string) int {
	n, ok := parseNumber(raw)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// ParseOrder reads an ordered list start value. Missing, empty or invalid
// input, and anything below 1, is 1.
func ParseOrder(raw string) int {
	n, ok := parseNumber(raw)
	if !ok || n < 1 {
		return 1
	}
	return n
}

// NormalizeListStyleType trims a CSS list-style-type value.
func NormalizeListStyleType(raw string) string {
	return strings.TrimSpace(raw)
}

func parseNumber(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// indentLevel bounds a stored text indent level to [0, MaxIndentLevel].
func indentLevel(n int) int {
	if n > MaxIndentLevel {
		return MaxIndentLevel
	}
	return nonNegative(n)
}
