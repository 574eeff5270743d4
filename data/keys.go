// Package data holds the cached Nexus entities and the read-through cache
// protocol that keeps them fresh. Each entity type pairs a struct with a
// Resource descriptor naming its storage bucket, its fetch, and its merge
// policy.
package data

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// CompoundKey identifies a mod within a game: "{domain}/{id}". Sorting keys
// lexically groups a game's mods together, which is what prefix scans rely
// on. Game domains containing a slash are not supported.
type CompoundKey struct {
	Domain string
	ModID  int64
}

func (k CompoundKey) String() string {
	return fmt.Sprintf("%s/%d", k.Domain, k.ModID)
}

// ParseCompoundKey splits a stored key back into its parts.
func ParseCompoundKey(s string) (CompoundKey, error) {
	domain, idstr, found := strings.Cut(s, "/")
	if !found || domain == "" {
		return CompoundKey{}, errors.Newf("malformed compound key %q", s)
	}
	id, err := strconv.ParseInt(idstr, 10, 64)
	if err != nil {
		return CompoundKey{}, errors.Wrapf(err, "malformed mod id in compound key %q", s)
	}
	return CompoundKey{Domain: domain, ModID: id}, nil
}

// GamePrefix is the key prefix matching every mod for a game. The trailing
// slash keeps "skyrim" from matching "skyrimspecialedition" keys.
func GamePrefix(domain string) string {
	return domain + "/"
}
