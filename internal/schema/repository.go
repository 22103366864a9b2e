package schema

// InvalidSchemaError reports that the repository's own definitions
// reference an OID that does not exist — an internal consistency fault,
// not a client-triggerable error.
type InvalidSchemaError struct {
	Msg string
}

func (e *InvalidSchemaError) Error() string {
	return "invalid schema: " + e.Msg
}

// Repository is the read-only, post-construction-immutable set of
// attribute and object class definitions a server is configured with. It
// is safe for concurrent use by multiple connections without locking,
// since nothing mutates it after NewRepository returns.
type Repository struct {
	attributesByOID map[string]*Attribute
	classesByOID    map[string]*ObjectClass
}

// NewRepository builds a Repository from a fixed set of definitions,
// loaded once at startup.
func NewRepository(attributes []*Attribute, classes []*ObjectClass) *Repository {
	r := &Repository{
		attributesByOID: make(map[string]*Attribute, len(attributes)),
		classesByOID:    make(map[string]*ObjectClass, len(classes)),
	}
	for _, a := range attributes {
		r.attributesByOID[a.OID] = a
	}
	for _, c := range classes {
		r.classesByOID[c.OID] = c
	}
	return r
}

// Attribute looks up an attribute definition by its canonical OID.
func (r *Repository) Attribute(oid string) (*Attribute, bool) {
	a, ok := r.attributesByOID[oid]
	return a, ok
}

// ObjectClass looks up an object class definition by its canonical OID.
func (r *Repository) ObjectClass(oid string) (*ObjectClass, bool) {
	c, ok := r.classesByOID[oid]
	return c, ok
}

// FindAttributeByName does a linear scan of every attribute's name set,
// case-sensitive.
func (r *Repository) FindAttributeByName(name string) (*Attribute, bool) {
	for _, a := range r.attributesByOID {
		for _, n := range a.Names {
			if n == name {
				return a, true
			}
		}
	}
	return nil, false
}

// FindObjectClassByName does a linear scan of every object class's name
// set, case-sensitive.
func (r *Repository) FindObjectClassByName(name string) (*ObjectClass, bool) {
	for _, c := range r.classesByOID {
		for _, n := range c.Names {
			if n == name {
				return c, true
			}
		}
	}
	return nil, false
}

// MustAndMay resolves an object class's MUST and MAY attribute OID lists
// to their Attribute definitions. It returns InvalidSchemaError if the
// class references an OID this repository does not carry a definition
// for — that is a configuration fault, not a client error.
func (r *Repository) MustAndMay(oc *ObjectClass) (must []*Attribute, may []*Attribute, err error) {
	for _, oid := range oc.Must {
		a, ok := r.Attribute(oid)
		if !ok {
			return nil, nil, &InvalidSchemaError{Msg: "object class " + oc.OID + " MUST references unknown attribute " + oid}
		}
		must = append(must, a)
	}
	for _, oid := range oc.May {
		a, ok := r.Attribute(oid)
		if !ok {
			return nil, nil, &InvalidSchemaError{Msg: "object class " + oc.OID + " MAY references unknown attribute " + oid}
		}
		may = append(may, a)
	}
	return must, may, nil
}

// ObjectClassesOf resolves a set of object class OIDs to their
// definitions. ok is false if any OID does not resolve — the caller
// (Service.ValidateEntry) turns that into an InvalidEntryError, since an
// entry naming an unknown class is a client-triggerable validation
// failure, not a schema-repository fault.
func (r *Repository) ObjectClassesOf(oids map[string]struct{}) (classes []*ObjectClass, ok bool) {
	classes = make([]*ObjectClass, 0, len(oids))
	for oid := range oids {
		c, found := r.ObjectClass(oid)
		if !found {
			return nil, false
		}
		classes = append(classes, c)
	}
	return classes, true
}
