package links

import (
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LinkProbe records the outcome of one reachability check against a
// canonical documentation URL. Rows are keyed deterministically by URL so
// repeated runs update the same record.
type LinkProbe struct {
	bun.BaseModel `bun:"table:link_probes,alias:lp"`

	ID           uuid.UUID `bun:",pk,type:uuid"         json:"id"`
	CanonicalURL string    `bun:"canonical_url,notnull" json:"canonical_url"`
	Reachable    bool      `bun:"reachable,notnull"     json:"reachable"`
	StatusCode   int       `bun:"status_code"           json:"status_code,omitempty"`
	CheckedAt    time.Time `bun:"checked_at,nullzero,default:current_timestamp" json:"checked_at"`
}

func NewLinkProbeRepository(db *bun.DB) repository.Repository[*LinkProbe] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LinkProbe]{
		NewRecord: func() *LinkProbe { return &LinkProbe{} },
		GetID: func(p *LinkProbe) uuid.UUID {
			return p.ID
		},
		SetID: func(p *LinkProbe, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "canonical_url"
		},
		GetIdentifierValue: func(p *LinkProbe) string {
			return p.CanonicalURL
		},
	})
}
