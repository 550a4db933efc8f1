package refdata

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

var (
	substitutionsOpen = regexp.MustCompile(`^export\s+const\s+substitutions\s*=\s*\{`)
	referencesOpen    = regexp.MustCompile(`^export\s+const\s+references\s*=\s*\{`)
	blockClose        = regexp.MustCompile(`^\};?$`)
	substitutionEntry = regexp.MustCompile(`^\s*"?([A-Za-z][\w-]*)"?\s*:\s*"([^"]*)"\s*,?\s*$`)
	referenceEntry    = regexp.MustCompile(`^\s*"?([A-Za-z][\w-]*)"?\s*:\s*\{\s*title\s*:\s*"([^"]*)"\s*,\s*url\s*:\s*"([^"]*)"\s*,?\s*\}\s*,?\s*$`)
)

type scanState int

const (
	scanOutside scanState = iota
	scanSubstitutions
	scanReferences
)

// Parse scans a companion snippets module line by line. The file looks like
// an MDX module but is never evaluated: only the two exported table
// declarations are recognised, one entry per line. Unknown lines inside a
// block are skipped, so commented-out or multi-line entries simply do not
// resolve.
func Parse(text string) interfaces.ReferenceTables {
	tables := interfaces.ReferenceTables{
		Substitutions: map[string]string{},
		References:    map[string]interfaces.Reference{},
	}

	state := scanOutside
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		switch state {
		case scanOutside:
			if substitutionsOpen.MatchString(trimmed) {
				state = scanSubstitutions
			} else if referencesOpen.MatchString(trimmed) {
				state = scanReferences
			}
		case scanSubstitutions:
			if blockClose.MatchString(trimmed) {
				state = scanOutside
				continue
			}
			if m := substitutionEntry.FindStringSubmatch(line); m != nil {
				tables.Substitutions[m[1]] = m[2]
			}
		case scanReferences:
			if blockClose.MatchString(trimmed) {
				state = scanOutside
				continue
			}
			if m := referenceEntry.FindStringSubmatch(line); m != nil {
				tables.References[m[1]] = interfaces.Reference{Title: m[2], URL: m[3]}
			}
		}
	}
	return tables
}
