package schema

import "fmt"

// Validatable is the minimal view of an entry the schema service needs
// to validate it: its declared object class OIDs, its attribute OID to
// value-set map, and a renderable identifier for error messages. A
// directory.Entry satisfies this without schema importing directory,
// keeping collaborators injected through a small interface rather than a
// concrete dependency.
type Validatable interface {
	ObjectClassOIDs() map[string]struct{}
	AttributeOIDs() map[string]map[string]struct{}
	Identifier() string
}

// Service implements the schema operations over an immutable Repository:
// DN normalisation, object-class/attribute name resolution, and entry
// validation.
type Service struct {
	repo *Repository
}

// NewService wraps a schema Repository in a Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// NormaliseDN parses DN text into a normalised DN, replacing every
// user-facing attribute name with its canonical OID. An attribute already
// written as its canonical OID (as DN.String renders it) is accepted
// as-is. Any RDN segment missing "=" or any name or OID absent from the
// schema fails with InvalidDNError.
func (s *Service) NormaliseDN(text string) (DN, error) {
	raw, err := parseRawDN(text)
	if err != nil {
		return nil, err
	}
	dn := make(DN, 0, len(raw))
	for _, rawRDN := range raw {
		rdn := make(RDN, 0, len(rawRDN))
		for _, pair := range rawRDN {
			attr, ok := s.repo.FindAttributeByName(pair.name)
			if !ok {
				attr, ok = s.repo.Attribute(pair.name)
			}
			if !ok {
				return nil, &InvalidDNError{DN: text, Msg: "unknown attribute name: " + pair.name}
			}
			rdn = append(rdn, RDNPair{OID: attr.OID, Value: pair.value})
		}
		dn = append(dn, rdn)
	}
	return dn, nil
}

// CommandAttributes is the shape produced by Add-entry command
// construction: a user-facing attribute name mapped to its set of string
// values.
type CommandAttributes map[string]map[string]struct{}

// objectClassKey is the reserved attribute name carrying the entry's
// declared object classes.
const objectClassKey = "objectClass"

// NormaliseObjectClasses resolves the "objectClass" key's values to
// their canonical OIDs. A missing key or any unresolvable name fails
// with UnknownObjectClassError.
func (s *Service) NormaliseObjectClasses(attrs CommandAttributes) (map[string]struct{}, error) {
	values, ok := attrs[objectClassKey]
	if !ok || len(values) == 0 {
		return nil, &UnknownObjectClassError{Name: "(missing objectClass)"}
	}
	oids := make(map[string]struct{}, len(values))
	for name := range values {
		oc, ok := s.repo.FindObjectClassByName(name)
		if !ok {
			return nil, &UnknownObjectClassError{Name: name}
		}
		oids[oc.OID] = struct{}{}
	}
	return oids, nil
}

// NormaliseAttributes resolves every key other than "objectClass" to its
// canonical attribute OID, keeping each value set as-is. Any unresolvable
// name fails with UnknownAttributeError.
func (s *Service) NormaliseAttributes(attrs CommandAttributes) (map[string]map[string]struct{}, error) {
	result := make(map[string]map[string]struct{}, len(attrs))
	for name, values := range attrs {
		if name == objectClassKey {
			continue
		}
		attr, ok := s.repo.FindAttributeByName(name)
		if !ok {
			return nil, &UnknownAttributeError{Name: name}
		}
		result[attr.OID] = values
	}
	return result, nil
}

// ValidateEntry checks that an entry satisfies its declared object
// classes' MUST/MAY rules and cardinality constraints.
func (s *Service) ValidateEntry(e Validatable) error {
	classes, ok := s.repo.ObjectClassesOf(e.ObjectClassOIDs())
	if !ok {
		return &InvalidEntryError{ID: e.Identifier(), Msg: "could not resolve all object classes"}
	}

	structuralCount := 0
	must := map[string]struct{}{}
	may := map[string]struct{}{}
	for _, oc := range classes {
		if oc.Kind == Structural {
			structuralCount++
		}
		ocMust, ocMay, err := s.repo.MustAndMay(oc)
		if err != nil {
			return err
		}
		for _, a := range ocMust {
			must[a.OID] = struct{}{}
		}
		for _, a := range ocMay {
			may[a.OID] = struct{}{}
		}
	}
	if structuralCount != 1 {
		return &InvalidEntryError{ID: e.Identifier(), Msg: entryStructuralCountMsg(structuralCount)}
	}

	attributes := e.AttributeOIDs()
	remaining := make(map[string]map[string]struct{}, len(attributes))
	for oid, values := range attributes {
		remaining[oid] = values
	}

	for oid := range must {
		values, ok := remaining[oid]
		if !ok || len(values) == 0 {
			return &InvalidEntryError{ID: e.Identifier(), Msg: "missing must attribute " + oid}
		}
		if err := s.validateAttributeValues(e, oid, values); err != nil {
			return err
		}
		delete(remaining, oid)
	}

	for oid, values := range remaining {
		if _, ok := may[oid]; !ok {
			return &InvalidEntryError{ID: e.Identifier(), Msg: "attribute " + oid + " not permitted by schema"}
		}
		if err := s.validateAttributeValues(e, oid, values); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) validateAttributeValues(e Validatable, oid string, values map[string]struct{}) error {
	attr, ok := s.repo.Attribute(oid)
	if !ok {
		return &InvalidSchemaError{Msg: "validated attribute " + oid + " has no definition"}
	}
	if attr.SingleValued && len(values) > 1 {
		return &InvalidEntryError{ID: e.Identifier(), Msg: "too many values for single-valued attribute " + oid}
	}
	return nil
}

func entryStructuralCountMsg(n int) string {
	return fmt.Sprintf("expected 1 structural object class, got %d", n)
}
