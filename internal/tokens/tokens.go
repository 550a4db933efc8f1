package tokens

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

// Encoding is the fixed tokenizer profile used for budget checks.
const Encoding = "cl100k_base"

// Counter measures text with a tiktoken encoder. When the encoder cannot be
// initialised (the BPE tables are fetched on first use and may be unavailable
// offline) it falls back to a four-characters-per-token estimate, which is
// close enough for an advisory budget.
type Counter struct {
	codec *tiktoken.Tiktoken
}

// NewCounter builds a counter for the fixed encoding profile.
func NewCounter() *Counter {
	codec, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return &Counter{}
	}
	return &Counter{codec: codec}
}

var _ interfaces.TokenCounter = (*Counter)(nil)

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	if c.codec == nil {
		return len(text) / 4
	}
	return len(c.codec.Encode(text, nil, nil))
}

// Gate performs the advisory budget check. It never blocks output; an
// overage produces a message for the caller to surface and nothing else.
type Gate struct {
	counter interfaces.TokenCounter
}

// NewGate builds a gate over the given counter, defaulting to NewCounter.
func NewGate(counter interfaces.TokenCounter) *Gate {
	if counter == nil {
		counter = NewCounter()
	}
	return &Gate{counter: counter}
}

// Check measures text against ceiling. The returned count is always valid;
// the message is empty unless a positive ceiling is exceeded, in which case
// it names the measured context, the actual count, and the ceiling.
func (g *Gate) Check(label, text string, ceiling int) (int, string) {
	count := g.counter.Count(text)
	if ceiling <= 0 || count <= ceiling {
		return count, ""
	}
	return count, fmt.Sprintf("%s is %d tokens, over the %d-token budget", label, count, ceiling)
}
