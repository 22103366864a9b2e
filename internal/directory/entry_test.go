package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patchwork-oss/ldapd/internal/schema"
)

func TestEntryMatchesIsTrueIfAnyRDNPairMatches(t *testing.T) {
	e := NewEntry[Int64ID](map[string]struct{}{}, map[string]map[string]struct{}{
		"cn-oid": vset("Alice"),
	}, RootID)

	// OR semantics: only one of the two pairs matches, but
	// that's enough.
	rdn := schema.RDN{
		{OID: "cn-oid", Value: "Alice"},
		{OID: "ou-oid", Value: "DoesNotMatch"},
	}
	assert.True(t, e.Matches(rdn))
}

func TestEntryMatchesIsFalseWhenNoPairMatches(t *testing.T) {
	e := NewEntry[Int64ID](map[string]struct{}{}, map[string]map[string]struct{}{
		"cn-oid": vset("Alice"),
	}, RootID)

	rdn := schema.RDN{{OID: "cn-oid", Value: "Bob"}}
	assert.False(t, e.Matches(rdn))
}

func TestEntryIdentifierRendersUnsavedBeforeFirstSave(t *testing.T) {
	e := NewEntry[Int64ID](map[string]struct{}{}, map[string]map[string]struct{}{}, RootID)
	assert.Equal(t, "(unsaved)", e.Identifier())
	e.SetID(Int64ID(7))
	assert.Equal(t, "7", e.Identifier())
}
