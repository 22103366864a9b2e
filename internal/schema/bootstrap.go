package schema

// Canonical OIDs for the bootstrap schema. A real deployment would load
// these from an LDIF schema file; this release populates them in-process
// at startup.
const (
	OIDPerson = "person-oid"
	OIDCN     = "cn-oid"
	OIDSN     = "sn-oid"
	OIDDC     = "dc-oid"
)

// Bootstrap builds the seed repository: one structural object class
// (person, MUST={cn}, MAY={sn}) and three attribute types (cn/commonName,
// sn, dc).
func Bootstrap() *Repository {
	attributes := []*Attribute{
		{OID: OIDCN, Names: []string{"cn", "commonName"}, SingleValued: false},
		{OID: OIDSN, Names: []string{"sn"}, SingleValued: false},
		{OID: OIDDC, Names: []string{"dc"}, SingleValued: true},
	}
	classes := []*ObjectClass{
		{
			OID:   OIDPerson,
			Names: []string{"person"},
			Kind:  Structural,
			Must:  []string{OIDCN},
			May:   []string{OIDSN},
		},
	}
	return NewRepository(attributes, classes)
}
