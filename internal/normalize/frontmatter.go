package normalize

// StripFrontmatter removes every delimiter-bounded metadata block in the
// document, not just a single leading one, because upstream generation may
// interleave several. A delimiter line seen outside a fence opens a block;
// the next delimiter closes it; both delimiters and everything between are
// dropped. While a block is open the frontmatter delimiter takes precedence,
// so fence markers inside frontmatter are treated as metadata content.
func StripFrontmatter(lines []string) []string {
	out := make([]string, 0, len(lines))
	inFence := false
	inFrontmatter := false
	for _, line := range lines {
		if inFrontmatter {
			if isFrontmatterDelimiter(line) {
				inFrontmatter = false
			}
			continue
		}
		if isFenceDelimiter(line) {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if !inFence && isFrontmatterDelimiter(line) {
			inFrontmatter = true
			continue
		}
		out = append(out, line)
	}
	return out
}
