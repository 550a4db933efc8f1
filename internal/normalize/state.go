package normalize

import (
	"strings"
)

const (
	fenceDelimiter       = "```"
	frontmatterDelimiter = "---"
)

// lineState carries the per-pass scanning state every transformation shares:
// whether the cursor sits inside a verbatim code fence, whether a frontmatter
// block is open, and the most recent literal heading level. Each pass starts
// from a zero state and re-derives everything from the text it currently sees.
type lineState struct {
	inFence       bool
	inFrontmatter bool
	headingLevel  int
}

func newLineState() *lineState {
	return &lineState{headingLevel: 1}
}

// observe updates the state for a line without consuming it. Frontmatter
// delimiters take precedence over fence toggles while a frontmatter block is
// open, so a fence marker inside frontmatter cannot close the block early.
func (s *lineState) observe(line string) {
	if s.inFrontmatter {
		if isFrontmatterDelimiter(line) {
			s.inFrontmatter = false
		}
		return
	}
	if isFenceDelimiter(line) {
		s.inFence = !s.inFence
		return
	}
	if s.inFence {
		return
	}
	if isFrontmatterDelimiter(line) {
		s.inFrontmatter = true
		return
	}
	if rank := headingRank(line); rank > 0 {
		s.headingLevel = rank
	}
}

// fenceOnly is the reduced toggle used by passes that run after frontmatter
// stripping and only need fence protection.
func (s *lineState) fenceOnly(line string) {
	if isFenceDelimiter(line) {
		s.inFence = !s.inFence
	}
}

func isFenceDelimiter(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), fenceDelimiter)
}

func isFrontmatterDelimiter(line string) bool {
	return strings.TrimSpace(line) == frontmatterDelimiter
}

// headingRank returns the level of a literal Markdown heading, or 0 when the
// line is not one. Indentation is ignored because headings frequently sit
// inside not-yet-unwrapped containers.
func headingRank(line string) int {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return 0
	}
	rank := 0
	for rank < len(trimmed) && trimmed[rank] == '#' {
		rank++
	}
	if rank > 6 {
		return 0
	}
	if rank == len(trimmed) {
		return 0
	}
	if trimmed[rank] != ' ' && trimmed[rank] != '\t' {
		return 0
	}
	return rank
}

// headingText extracts the title of a literal heading line.
func headingText(line string) string {
	trimmed := strings.TrimSpace(line)
	return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
}

// nextHeadingLevel returns the level a newly produced heading should use under
// the given context level, capped at Markdown's maximum depth.
func nextHeadingLevel(current int) int {
	if current < 1 {
		current = 1
	}
	level := current + 1
	if level > 6 {
		level = 6
	}
	return level
}

// headingMarker renders the leading hash run for a heading of the given level.
func headingMarker(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level)
}

// dedent removes up to amount leading spaces from the line, clamped so an
// under-indented line is trimmed as far as possible without touching
// non-space content.
func dedent(line string, amount int) string {
	if amount <= 0 || line == "" {
		return line
	}
	leading := 0
	for leading < len(line) && line[leading] == ' ' {
		leading++
	}
	if leading < amount {
		amount = leading
	}
	return line[amount:]
}

// splitLines breaks text into lines, normalising Windows line endings first so
// every pass can reason about bare newlines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// joinLines is the inverse of splitLines.
func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
