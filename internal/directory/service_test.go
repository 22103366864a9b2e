package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchwork-oss/ldapd/internal/schema"
)

func vset(values ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// buildTree constructs root (dc=com) -> parent (ou=parent) -> grandchild
// (cn=Grandchild), bypassing schema validation since these tests
// exercise DN resolution only.
func buildTree(t *testing.T) (*Repository[Int64ID], Int64ID, Int64ID) {
	t.Helper()
	repo := NewRepository(Int64Space)
	root := repo.Root()
	root.Attributes["dc-oid"] = vset("com")

	parent := NewEntry[Int64ID](map[string]struct{}{}, map[string]map[string]struct{}{
		"ou-oid": vset("parent"),
	}, RootID)
	savedParent := repo.SaveAndLinkToParent(parent, root)
	parentID, _ := savedParent.ID()

	grandchild := NewEntry[Int64ID](map[string]struct{}{}, map[string]map[string]struct{}{
		"cn-oid": vset("Grandchild"),
	}, parentID)
	savedGrandchild := repo.SaveAndLinkToParent(grandchild, savedParent)
	grandchildID, _ := savedGrandchild.ID()

	return repo, parentID, grandchildID
}

func TestFindByDNResolvesGrandchild(t *testing.T) {
	repo, _, grandchildID := buildTree(t)
	svc := NewService[Int64ID](repo, nil)

	dn := schema.DN{
		{{OID: "cn-oid", Value: "Grandchild"}},
		{{OID: "ou-oid", Value: "parent"}},
		{{OID: "dc-oid", Value: "com"}},
	}
	res, err := svc.FindByDN(dn)
	require.NoError(t, err)
	require.True(t, res.Found)
	id, _ := res.Entry.ID()
	assert.Equal(t, grandchildID, id)
}

func TestFindByDNReturnsNotFoundForUnknownLeaf(t *testing.T) {
	repo, _, _ := buildTree(t)
	svc := NewService[Int64ID](repo, nil)

	dn := schema.DN{
		{{OID: "cn-oid", Value: "Unknown"}},
		{{OID: "ou-oid", Value: "parent"}},
		{{OID: "dc-oid", Value: "com"}},
	}
	res, err := svc.FindByDN(dn)
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func personSchemaService() *schema.Service {
	attributes := []*schema.Attribute{
		{OID: "cn-oid", Names: []string{"cn"}},
		{OID: "sn-oid", Names: []string{"sn"}},
		{OID: "dc-oid", Names: []string{"dc"}, SingleValued: true},
	}
	classes := []*schema.ObjectClass{
		{OID: "person-oid", Names: []string{"person"}, Kind: schema.Structural, Must: []string{"cn-oid"}, May: []string{"sn-oid"}},
	}
	return schema.NewService(schema.NewRepository(attributes, classes))
}

func TestAddEntryToRootSucceedsWhenParentIsRootAndSchemaSatisfied(t *testing.T) {
	repo := NewRepository(Int64Space)
	root := repo.Root()
	root.Attributes["dc-oid"] = vset("dev")

	svc := NewService[Int64ID](repo, personSchemaService())

	attrs := schema.CommandAttributes{
		"objectClass": vset("person"),
		"cn": vset("My Name"),
	}
	entry, err := svc.AddEntry("cn=My Name,dc=dev", attrs)
	require.NoError(t, err)
	id, ok := entry.ID()
	require.True(t, ok)

	rootAfter, _ := repo.Get(RootID)
	_, linked := rootAfter.Children()[id]
	assert.True(t, linked)

	res, err := svc.FindByDN(schema.DN{
		{{OID: "cn-oid", Value: "My Name"}},
		{{OID: "dc-oid", Value: "dev"}},
	})
	require.NoError(t, err)
	require.True(t, res.Found)
	resID, _ := res.Entry.ID()
	assert.Equal(t, id, resID)
}

func TestAddEntryFailsWhenParentDoesNotExistAndDoesNotMutateTree(t *testing.T) {
	repo := NewRepository(Int64Space)
	root := repo.Root()
	root.Attributes["dc-oid"] = vset("dev")
	svc := NewService[Int64ID](repo, personSchemaService())

	attrs := schema.CommandAttributes{
		"objectClass": vset("person"),
		"cn": vset("Orphan"),
	}
	_, err := svc.AddEntry("cn=Orphan,dc=missing", attrs)
	require.Error(t, err)
	var notExists *EntryDoesNotExistsError
	require.ErrorAs(t, err, &notExists)

	rootAfter, _ := repo.Get(RootID)
	assert.Empty(t, rootAfter.Children())
}

func TestAddEntryFailsWhenEntryAlreadyExists(t *testing.T) {
	repo := NewRepository(Int64Space)
	root := repo.Root()
	root.Attributes["dc-oid"] = vset("dev")
	svc := NewService[Int64ID](repo, personSchemaService())

	attrs := schema.CommandAttributes{
		"objectClass": vset("person"),
		"cn": vset("Dup"),
	}
	_, err := svc.AddEntry("cn=Dup,dc=dev", attrs)
	require.NoError(t, err)

	_, err = svc.AddEntry("cn=Dup,dc=dev", attrs)
	require.Error(t, err)
	var alreadyExists *EntryAlreadyExistsError
	require.ErrorAs(t, err, &alreadyExists)
}
