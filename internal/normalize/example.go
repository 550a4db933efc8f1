package normalize

const exampleDedent = 2

// ConvertExamples replaces <Example> blocks with a fixed "Example" heading one
// level below the current context and dedents the block body by two spaces.
// The whitespace pass later guarantees a blank line after the heading.
func ConvertExamples(lines []string) []string {
	out := make([]string, 0, len(lines))
	state := newLineState()
	inExample := false

	emit := func(line string) {
		if inExample {
			line = dedent(line, exampleDedent)
		}
		out = append(out, line)
	}

	for _, line := range lines {
		if isFenceDelimiter(line) {
			state.fenceOnly(line)
			emit(line)
			continue
		}
		if state.inFence {
			emit(line)
			continue
		}
		if inExample {
			if name, ok := matchCloseTag(line); ok && name == tagExample {
				inExample = false
				continue
			}
		} else if tag, ok := matchOpenTag(line); ok && tag.name == tagExample {
			level := nextHeadingLevel(state.headingLevel)
			out = append(out, headingMarker(level)+" Example")
			state.headingLevel = level
			inExample = true
			continue
		}
		if rank := headingRank(line); rank > 0 {
			state.headingLevel = rank
		}
		emit(line)
	}
	return out
}
