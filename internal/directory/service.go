package directory

import (
	"github.com/patchwork-oss/ldapd/internal/schema"
)

// FindResult is find_by_dn's outcome: either the resolved entry, or the
// most-specific partial RDN path that did resolve before matching
// failed, so the add-entry transaction can report exactly where DN
// resolution stopped.
type FindResult[T ID] struct {
	Entry   *Entry[T]
	Found   bool
	Partial schema.DN
}

// Service implements the entry service: DN resolution and the add-entry
// transaction, built on a Repository and a schema.Service.
type Service[T ID] struct {
	repo   *Repository[T]
	schema *schema.Service
}

// NewService wires an entry service to its repository and schema
// service collaborators.
func NewService[T ID](repo *Repository[T], schemaSvc *schema.Service) *Service[T] {
	return &Service[T]{repo: repo, schema: schemaSvc}
}

// FindByDN resolves a DN to an entry by walking the tree top-down from
// the root, matching RDNs least-specific first.
func (s *Service[T]) FindByDN(dn schema.DN) (FindResult[T], error) {
	if len(dn) == 0 {
		return FindResult[T]{Entry: s.repo.Root(), Found: true}, nil
	}
	return s.find(s.repo.Root(), dn)
}

func (s *Service[T]) find(curr *Entry[T], rdns schema.DN) (FindResult[T], error) {
	n := len(rdns)
	last := rdns[n-1]

	if n == 1 {
		if curr.Matches(last) {
			return FindResult[T]{Entry: curr, Found: true}, nil
		}
		return FindResult[T]{Found: false}, nil
	}

	if !curr.Matches(last) {
		return FindResult[T]{Found: false}, nil
	}

	partial := schema.DN{last}
	for childID := range curr.Children() {
		child, ok := s.repo.Get(childID)
		if !ok {
			return FindResult[T]{}, &schema.InvalidEntryError{
				ID:  childID.String(),
				Msg: "dangling child reference",
			}
		}
		res, err := s.find(child, rdns[:n-1])
		if err != nil {
			return FindResult[T]{}, err
		}
		if res.Found {
			return res, nil
		}
		if len(res.Partial)+1 > len(partial) {
			partial = append(append(schema.DN{}, res.Partial...), last)
		}
	}

	return FindResult[T]{Found: false, Partial: partial}, nil
}

// AddEntry runs the add-entry transaction: normalise the DN, check it
// doesn't already exist, resolve the parent, normalise object classes
// and attributes, build and validate the entry, then persist it and
// link it to its parent as a single atomic step.
func (s *Service[T]) AddEntry(dnText string, attrs schema.CommandAttributes) (*Entry[T], error) {
	dn, err := s.schema.NormaliseDN(dnText)
	if err != nil {
		return nil, err
	}

	existing, err := s.FindByDN(dn)
	if err != nil {
		return nil, err
	}
	if existing.Found {
		return nil, &EntryAlreadyExistsError{DN: dn.String()}
	}

	parentResult, err := s.FindByDN(dn.ParentDN())
	if err != nil {
		return nil, err
	}
	if !parentResult.Found {
		return nil, &EntryDoesNotExistsError{DN: parentResult.Partial.String()}
	}
	parent := parentResult.Entry

	objectClasses, err := s.schema.NormaliseObjectClasses(attrs)
	if err != nil {
		return nil, err
	}
	attributes, err := s.schema.NormaliseAttributes(attrs)
	if err != nil {
		return nil, err
	}

	// The RDN itself carries data that must be present on the entry.
	for _, pair := range dn.First() {
		values, ok := attributes[pair.OID]
		if !ok {
			values = make(map[string]struct{}, 1)
			attributes[pair.OID] = values
		}
		values[pair.Value] = struct{}{}
	}

	parentID, _ := parent.ID()
	entry := NewEntry[T](objectClasses, attributes, parentID)

	if err := s.schema.ValidateEntry(entry); err != nil {
		return nil, err
	}

	saved := s.repo.SaveAndLinkToParent(entry, parent)
	return saved, nil
}
