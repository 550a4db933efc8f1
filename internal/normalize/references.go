package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

var refTagPattern = regexp.MustCompile(`<Ref\s+([^<>]*?)/>`)

// ResolveReferences replaces symbolic <Ref .../> tags with literal text from
// the supplied lookup tables. A key plus type="substitution" resolves through
// the substitution table; a name-only form resolves to the referenced entry's
// title. Every occurrence on a line is resolved independently. Unresolved
// tags are left exactly in place and reported through a diagnostic, so
// callers must tolerate partially resolved output.
func ResolveReferences(lines []string, tables interfaces.ReferenceTables, source string) ([]string, []interfaces.Diagnostic) {
	out := make([]string, len(lines))
	var diags []interfaces.Diagnostic
	inFence := false

	for i, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			out[i] = line
			continue
		}
		if inFence || !strings.Contains(line, "<Ref") {
			out[i] = line
			continue
		}
		lineNo := i + 1
		out[i] = refTagPattern.ReplaceAllStringFunc(line, func(match string) string {
			sub := refTagPattern.FindStringSubmatch(match)
			attrs := parseAttrs(sub[1])
			if key, ok := attrs["key"]; ok && attrs["type"] == "substitution" {
				if text, found := tables.Substitutions[key]; found {
					return text
				}
				diags = append(diags, interfaces.Diagnostic{
					Source:  source,
					Line:    lineNo,
					Message: fmt.Sprintf("unresolved substitution key %q", key),
				})
				return match
			}
			if name, ok := attrs["name"]; ok {
				if ref, found := tables.References[name]; found {
					return ref.Title
				}
				diags = append(diags, interfaces.Diagnostic{
					Source:  source,
					Line:    lineNo,
					Message: fmt.Sprintf("unresolved reference name %q", name),
				})
				return match
			}
			return match
		})
	}
	return out, diags
}
