package normalize

import "strings"

// ExcludeSections removes every section whose heading exactly matches one of
// the given titles. Matching is case-sensitive and whole-string; prose that
// merely contains an excluded phrase survives.
//
// A literal heading starts a skip that runs until the next heading of equal
// or higher rank. A <Heading> wrapper whose joined title matches is assumed
// to sit inside a simple container: the pass walks already-emitted output
// backward to the nearest container opener, truncates from there, and skips
// forward through the input until the matching closer is consumed. When the
// backward walk meets a stray closer first, or runs out of output, the
// heading is treated as unwrapped and only the heading construct is dropped.
func ExcludeSections(lines []string, titles []string) []string {
	if len(titles) == 0 {
		return lines
	}
	excluded := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		excluded[title] = struct{}{}
	}

	out := make([]string, 0, len(lines))
	inFence := false
	skipRank := 0

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isFenceDelimiter(line) {
			inFence = !inFence
			if skipRank == 0 {
				out = append(out, line)
			}
			continue
		}
		if inFence {
			if skipRank == 0 {
				out = append(out, line)
			}
			continue
		}
		if skipRank > 0 {
			rank := headingRank(line)
			if rank == 0 || rank > skipRank {
				continue
			}
			skipRank = 0
		}
		if rank := headingRank(line); rank > 0 {
			if _, drop := excluded[headingText(line)]; drop {
				skipRank = rank
				continue
			}
			out = append(out, line)
			continue
		}
		if tag, ok := matchInlineTag(line); ok && tag.name == tagHeading {
			title := strings.Join(strings.Fields(tag.inner), " ")
			if _, drop := excluded[title]; drop {
				out, i = excludeWrapped(lines, out, i)
				continue
			}
			out = append(out, line)
			continue
		}
		if tag, ok := matchOpenTag(line); ok && tag.name == tagHeading {
			parts, consumed, closed := collectTagTitle(lines, i+1, tagHeading)
			if closed {
				if _, drop := excluded[joinTitle(parts)]; drop {
					out, i = excludeWrapped(lines, out, i+consumed)
					continue
				}
				out = append(out, lines[i:i+consumed+1]...)
				i += consumed
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

// excludeWrapped handles a matched <Heading> construct ending at headEnd. It
// returns the possibly truncated output and the index of the last input line
// consumed by the exclusion.
func excludeWrapped(lines, out []string, headEnd int) ([]string, int) {
	for j := len(out) - 1; j >= 0; j-- {
		if name, ok := matchCloseTag(out[j]); ok && isSimpleContainer(name) {
			break
		}
		if tag, ok := matchOpenTag(out[j]); ok && isSimpleContainer(tag.name) {
			return out[:j], skipContainer(lines, headEnd+1)
		}
	}
	return out, headEnd
}

// skipContainer advances past the body of an already-open simple container,
// counting nested containers, and returns the index of the closing line. An
// unterminated container consumes the remainder of the document.
func skipContainer(lines []string, start int) int {
	depth := 1
	inFence := false
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if isFenceDelimiter(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if tag, ok := matchOpenTag(line); ok && isSimpleContainer(tag.name) {
			depth++
			continue
		}
		if name, ok := matchCloseTag(line); ok && isSimpleContainer(name) {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(lines) - 1
}
