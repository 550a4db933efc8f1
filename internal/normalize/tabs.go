package normalize

const tabDedent = 4

// ConvertTabs drops the <Tabs> wrapper and turns every labeled <Tab> child
// into a heading one level below the current context, with its title derived
// from the machine-readable id. Tab bodies are dedented by four spaces, two
// for each of the removed wrappers.
func ConvertTabs(lines []string) []string {
	out := make([]string, 0, len(lines))
	state := newLineState()
	inTab := false

	emit := func(line string) {
		if inTab {
			line = dedent(line, tabDedent)
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
		if tag, ok := matchOpenTag(line); ok {
			switch tag.name {
			case tagTabs:
				continue
			case tagTab:
				title := titleFromID(tag.attrs["id"])
				if title == "" {
					title = tagTab
				}
				level := nextHeadingLevel(state.headingLevel)
				out = append(out, headingMarker(level)+" "+title)
				state.headingLevel = level
				inTab = true
				continue
			}
		}
		if name, ok := matchCloseTag(line); ok {
			switch name {
			case tagTab:
				inTab = false
				continue
			case tagTabs:
				inTab = false
				continue
			}
		}
		if rank := headingRank(line); rank > 0 {
			state.headingLevel = rank
		}
		emit(line)
	}
	return out
}
