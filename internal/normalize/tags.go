package normalize

import (
	"regexp"
	"strings"
)

// Tag families recognised by the engine. Simple containers are unwrapped and
// their content kept; irrelevant tags are removed together with everything
// they enclose.
const (
	tagHeading  = "Heading"
	tagExample  = "Example"
	tagTabs     = "Tabs"
	tagTab      = "Tab"
	tagSteps    = "Steps"
	tagStep     = "Step"
	tagExchange = "Exchange"
	tagInput    = "Input"
	tagOutput   = "Output"
)

var simpleContainerTags = map[string]bool{
	"Content": true,
	"Section": true,
	"Note":    true,
	"Tip":     true,
	"Warning": true,
	"Info":    true,
}

var irrelevantTags = map[string]bool{
	"Nav":    true,
	"Facets": true,
	"Badge":  true,
	"Meta":   true,
}

var (
	openTagPattern   = regexp.MustCompile(`^<([A-Z][A-Za-z0-9]*)((?:\s+[a-zA-Z][\w-]*="[^"]*")*)\s*>$`)
	closeTagPattern  = regexp.MustCompile(`^</([A-Z][A-Za-z0-9]*)\s*>$`)
	selfClosePattern = regexp.MustCompile(`^<([A-Z][A-Za-z0-9]*)((?:\s+[a-zA-Z][\w-]*="[^"]*")*)\s*/>$`)
	inlineTagPattern = regexp.MustCompile(`^<([A-Z][A-Za-z0-9]*)((?:\s+[a-zA-Z][\w-]*="[^"]*")*)\s*>(.*)</([A-Z][A-Za-z0-9]*)\s*>$`)
	attrPattern      = regexp.MustCompile(`([a-zA-Z][\w-]*)="([^"]*)"`)
)

// tagMatch captures one block tag occupying a whole line.
type tagMatch struct {
	name  string
	attrs map[string]string
	// inner carries the enclosed text for one-line open+content+close forms.
	inner string
}

// matchOpenTag reports a line that consists solely of an opening block tag.
// Leading and trailing whitespace is ignored; tags are never recognised
// mid-line.
func matchOpenTag(line string) (tagMatch, bool) {
	m := openTagPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return tagMatch{}, false
	}
	return tagMatch{name: m[1], attrs: parseAttrs(m[2])}, true
}

// matchCloseTag reports a line that consists solely of a closing tag.
func matchCloseTag(line string) (string, bool) {
	m := closeTagPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchSelfCloseTag reports a line that consists solely of a self-closing tag.
func matchSelfCloseTag(line string) (tagMatch, bool) {
	m := selfClosePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return tagMatch{}, false
	}
	return tagMatch{name: m[1], attrs: parseAttrs(m[2])}, true
}

// matchInlineTag reports a one-line open+content+close form such as
// <Note>remember this</Note>. The opening and closing names must agree.
func matchInlineTag(line string) (tagMatch, bool) {
	m := inlineTagPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil || m[1] != m[4] {
		return tagMatch{}, false
	}
	return tagMatch{name: m[1], attrs: parseAttrs(m[2]), inner: m[3]}, true
}

func parseAttrs(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	attrs := map[string]string{}
	for _, pair := range attrPattern.FindAllStringSubmatch(raw, -1) {
		attrs[pair[1]] = pair[2]
	}
	return attrs
}

func isSimpleContainer(name string) bool { return simpleContainerTags[name] }

func isIrrelevantTag(name string) bool { return irrelevantTags[name] }
