package normalize

import "strings"

// NormalizeWhitespace applies the final blank-line conventions: one blank
// line before every fence block and literal heading, one after every fence
// block and heading, runs of blank lines collapsed to a single one, and
// trailing whitespace trimmed on every line. Fenced content is otherwise
// exact, and frontmatter still present at this point passes through
// byte-for-byte apart from the trailing-space trim.
func NormalizeWhitespace(lines []string) []string {
	out := make([]string, 0, len(lines))
	state := newLineState()
	wantBlank := false

	appendBlank := func() {
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
	}

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t")

		if state.inFrontmatter {
			state.observe(line)
			out = append(out, line)
			continue
		}
		if state.inFence {
			state.observe(line)
			out = append(out, line)
			if !state.inFence {
				wantBlank = true
			}
			continue
		}
		if isFrontmatterDelimiter(line) {
			state.observe(line)
			out = append(out, line)
			continue
		}
		if line == "" {
			wantBlank = false
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		if isFenceDelimiter(line) {
			state.observe(line)
			appendBlank()
			out = append(out, line)
			wantBlank = false
			continue
		}
		if headingRank(line) > 0 {
			appendBlank()
			out = append(out, line)
			wantBlank = true
			continue
		}
		if wantBlank {
			appendBlank()
			wantBlank = false
		}
		out = append(out, line)
	}

	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
