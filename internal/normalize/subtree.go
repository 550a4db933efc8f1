package normalize

// RemoveSubtrees drops irrelevant tags together with their entire subtree:
// navigation, facet metadata, and similar markup that carries no semantic
// content. Nothing between the opening and closing tag survives, with no
// dedenting. Self-closing and one-line forms are removed without entering
// suppression. Tags inside fences are opaque and never affect suppression
// state.
func RemoveSubtrees(lines []string) []string {
	out := make([]string, 0, len(lines))
	inFence := false
	suppressing := ""

	for _, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			if suppressing == "" {
				out = append(out, line)
			}
			continue
		}
		if inFence {
			if suppressing == "" {
				out = append(out, line)
			}
			continue
		}

		if suppressing != "" {
			if name, ok := matchCloseTag(line); ok && name == suppressing {
				suppressing = ""
			}
			continue
		}

		if tag, ok := matchSelfCloseTag(line); ok && isIrrelevantTag(tag.name) {
			continue
		}
		if tag, ok := matchInlineTag(line); ok && isIrrelevantTag(tag.name) {
			continue
		}
		if tag, ok := matchOpenTag(line); ok && isIrrelevantTag(tag.name) {
			suppressing = tag.name
			continue
		}

		out = append(out, line)
	}
	return out
}
