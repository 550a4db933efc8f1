package normalize

import (
	"strconv"
	"strings"
)

const stepDedent = 2

// ConvertSteps rewrites <Steps> procedures into numbered step markers. The
// wrapper resets the counter on entry so two adjacent procedures each restart
// at one. A step's title is collected from every non-blank line between its
// opening tag and either the first nested simple-container tag, which marks
// where the body begins, or the step's own closing tag. The title is emitted
// as a bold "Step N:" marker followed by a blank line; an immediately
// following literal or wrapped heading that restates the title is dropped as
// redundant. Body content loses two spaces of indentation here and two more
// when the inner container is unwrapped later.
func ConvertSteps(lines []string) []string {
	out := make([]string, 0, len(lines))
	inFence := false
	inSteps := false
	inBody := false
	counter := 0

	emit := func(line string) {
		if inBody {
			line = dedent(line, stepDedent)
		}
		out = append(out, line)
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
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
			if tag.name == tagSteps {
				inSteps = true
				inBody = false
				counter = 0
				continue
			}
			if tag.name == tagStep && inSteps {
				counter++
				inBody = false

				titleParts := []string{}
				terminator := -1
				termContainer := false
				for j := i + 1; j < len(lines); j++ {
					next := lines[j]
					if name, closed := matchCloseTag(next); closed && name == tagStep {
						terminator = j
						break
					}
					if t, open := matchOpenTag(next); open && isSimpleContainer(t.name) {
						terminator = j
						termContainer = true
						break
					}
					if trimmed := strings.TrimSpace(next); trimmed != "" {
						titleParts = append(titleParts, trimmed)
					}
				}

				title := joinTitle(titleParts)
				marker := "**Step " + strconv.Itoa(counter) + ":**"
				if title != "" {
					marker += " " + title
				}
				out = append(out, marker, "")

				if terminator == -1 {
					// Never terminated: the rest of the document was the title.
					i = len(lines) - 1
					continue
				}
				if termContainer {
					inBody = true
					out = append(out, dedent(lines[terminator], stepDedent))
				}
				i = terminator
				i += skipDuplicateTitle(lines, i+1, title)
				continue
			}
		}

		if name, ok := matchCloseTag(line); ok && inSteps {
			if name == tagStep {
				inBody = false
				continue
			}
			if name == tagSteps {
				inSteps = false
				inBody = false
				counter = 0
				continue
			}
		}

		emit(line)
	}
	return out
}

// skipDuplicateTitle returns how many lines to drop starting at idx when they
// restate the step title as a literal heading or a <Heading> wrapper. The
// upstream generator sometimes emits the title twice; the duplicate adds
// nothing once the step marker is in place. Comparison collapses whitespace
// and trailing punctuation but keeps case significant.
func skipDuplicateTitle(lines []string, idx int, title string) int {
	want := normalizeTitle(title)
	if want == "" {
		return 0
	}
	j := idx
	for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
		j++
	}
	if j >= len(lines) {
		return 0
	}
	line := lines[j]
	if rank := headingRank(line); rank > 0 {
		if normalizeTitle(headingText(line)) == want {
			return j - idx + 1
		}
		return 0
	}
	if tag, ok := matchInlineTag(line); ok && tag.name == tagHeading {
		if normalizeTitle(strings.TrimSpace(tag.inner)) == want {
			return j - idx + 1
		}
		return 0
	}
	if tag, ok := matchOpenTag(line); ok && tag.name == tagHeading {
		parts, consumed, closed := collectTagTitle(lines, j+1, tagHeading)
		if closed && normalizeTitle(joinTitle(parts)) == want {
			return j - idx + 1 + consumed
		}
	}
	return 0
}
