package normalize

import "strings"

const containerDedent = 2

// DedentContainers unwraps the remaining simple containers: the opening and
// closing tags are dropped and the enclosed content is outdented. The stack
// holds cumulative dedent amounts, so each nesting level adds two spaces and
// doubly nested content loses four. A container that never closes keeps its
// dedent active to end of document; that is accepted best-effort behavior,
// not an error. Fences are opaque: tags inside them stay literal, while the
// ambient dedent still applies because fences are often indented wrapper
// content.
func DedentContainers(lines []string) []string {
	out := make([]string, 0, len(lines))
	inFence := false
	stack := []int{}

	top := func() int {
		if len(stack) == 0 {
			return 0
		}
		return stack[len(stack)-1]
	}

	for _, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			out = append(out, dedent(line, top()))
			continue
		}
		if inFence {
			out = append(out, dedent(line, top()))
			continue
		}
		if tag, ok := matchSelfCloseTag(line); ok && isSimpleContainer(tag.name) {
			continue
		}
		if tag, ok := matchInlineTag(line); ok && isSimpleContainer(tag.name) {
			inner := strings.TrimSpace(tag.inner)
			if inner != "" {
				leading := line[:len(line)-len(strings.TrimLeft(line, " "))]
				out = append(out, dedent(leading+inner, top()))
			}
			continue
		}
		if tag, ok := matchOpenTag(line); ok && isSimpleContainer(tag.name) {
			stack = append(stack, top()+containerDedent)
			continue
		}
		if name, ok := matchCloseTag(line); ok && isSimpleContainer(name) {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}
		out = append(out, dedent(line, top()))
	}
	return out
}
