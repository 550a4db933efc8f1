package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LinkProbeUUID identifies a probe record by its canonical URL, so repeated
// probes of the same link share one row.
func LinkProbeUUID(canonicalURL string) uuid.UUID {
	return UUID("go-skillmd:link_probe:" + strings.TrimSpace(canonicalURL))
}

// SkillUUID identifies a built skill document by its slug.
func SkillUUID(slug string) uuid.UUID {
	return UUID("go-skillmd:skill:" + strings.ToLower(strings.TrimSpace(slug)))
}
