package normalize

const exchangeDedent = 4

// ConvertExchanges drops the <Exchange> wrapper and replaces its labeled
// children with bold markers: <Input> becomes "**Input:**" and <Output>
// becomes a blank line followed by "**Output:**". Everything the children
// enclose, nested fences included, is dedented by four spaces.
func ConvertExchanges(lines []string) []string {
	out := make([]string, 0, len(lines))
	inFence := false
	inLabeled := false

	emit := func(line string) {
		if inLabeled {
			line = dedent(line, exchangeDedent)
		}
		out = append(out, line)
	}

	for _, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			emit(line)
			continue
		}
		if inFence {
			emit(line)
			continue
		}
		if tag, ok := matchOpenTag(line); ok {
			switch tag.name {
			case tagExchange:
				continue
			case tagInput:
				out = append(out, "**Input:**")
				inLabeled = true
				continue
			case tagOutput:
				out = append(out, "", "**Output:**")
				inLabeled = true
				continue
			}
		}
		if name, ok := matchCloseTag(line); ok {
			switch name {
			case tagInput, tagOutput:
				inLabeled = false
				continue
			case tagExchange:
				inLabeled = false
				continue
			}
		}
		emit(line)
	}
	return out
}
