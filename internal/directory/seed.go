package directory

import "github.com/patchwork-oss/ldapd/internal/schema"

// Seed populates repo with the bootstrap root (dc=dev) and its one child
// (dc=georgiboy), the only data this release starts with. It writes
// directly to the repository rather than going through Service.AddEntry,
// since the seed entries carry only a dc value and the bootstrap schema's
// one object class (person) requires cn.
func Seed[T ID](repo *Repository[T]) {
	root := repo.Root()
	root.Attributes[schema.OIDDC] = map[string]struct{}{"dev": {}}

	rootID, _ := root.ID()
	child := NewEntry[T](
		map[string]struct{}{},
		map[string]map[string]struct{}{schema.OIDDC: {"georgiboy": {}}},
		rootID,
	)
	repo.SaveAndLinkToParent(child, root)
}
