package normalize

import "strings"

// ConvertHeadings turns <Heading> wrappers into literal Markdown headings one
// level below the current context, capped at level 6. The emitted level
// becomes the new context, so a sibling heading tag immediately after the
// first nests one level deeper. This cascade is intentional and matches the
// way the surrounding document is re-derived between passes.
func ConvertHeadings(lines []string) []string {
	out := make([]string, 0, len(lines))
	state := newLineState()

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isFenceDelimiter(line) {
			state.fenceOnly(line)
			out = append(out, line)
			continue
		}
		if state.inFence {
			out = append(out, line)
			continue
		}
		if rank := headingRank(line); rank > 0 {
			state.headingLevel = rank
			out = append(out, line)
			continue
		}
		if tag, ok := matchInlineTag(line); ok && tag.name == tagHeading {
			level := nextHeadingLevel(state.headingLevel)
			out = append(out, headingMarker(level)+" "+strings.TrimSpace(tag.inner))
			state.headingLevel = level
			continue
		}
		if tag, ok := matchOpenTag(line); ok && tag.name == tagHeading {
			parts, consumed, closed := collectTagTitle(lines, i+1, tagHeading)
			if !closed {
				out = append(out, line)
				continue
			}
			level := nextHeadingLevel(state.headingLevel)
			out = append(out, headingMarker(level)+" "+joinTitle(parts))
			state.headingLevel = level
			i += consumed
			continue
		}
		out = append(out, line)
	}
	return out
}
