// Package tui provides the Bubble Tea game interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes renders the target sentence with per-rune styling: typed
// runes are marked correct or incorrect against the target, the rune under
// the cursor is underlined, and the word containing the cursor is
// highlighted. A space typed wrong is shown as a dot so the miss stays
// visible.
func buildStyledRunes(target, input []rune, cursorIndex int) []styledRune {
	current := currentWordRange(target, cursorIndex)

	out := make([]styledRune, 0, len(target))
	for i, want := range target {
		displayed := want
		var style = pendingStyle
		switch {
		case i < len(input) && input[i] == want:
			style = correctStyle
		case i < len(input) && want == ' ':
			displayed = '•'
			style = incorrectStyle
		case i < len(input):
			style = incorrectStyle
		case want != ' ' && current.contains(i):
			style = currentWordStyle
		}
		if i == cursorIndex && i >= len(input) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: want == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func (w wordRange) contains(i int) bool {
	return i >= w.start && i < w.end
}

// currentWordRange finds the word under the cursor, or the next word when
// the cursor sits on a space.
func currentWordRange(target []rune, cursorIndex int) wordRange {
	if cursorIndex < 0 || cursorIndex >= len(target) {
		return wordRange{start: -1, end: -1}
	}
	start := cursorIndex
	for start < len(target) && target[start] == ' ' {
		start++
	}
	if start == len(target) {
		return wordRange{start: -1, end: -1}
	}
	for start > 0 && target[start-1] != ' ' {
		start--
	}
	end := start
	for end < len(target) && target[end] != ' ' {
		end++
	}
	return wordRange{start: start, end: end}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes soft-wraps at the last space that fits; a word wider than
// the line is hard-broken.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpace]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpace+1:]...)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
			}
			lineWidth = 0
			lastSpace = -1
			for j, rest := range line {
				lineWidth += rest.width
				if rest.isSpace {
					lastSpace = j
				}
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}
