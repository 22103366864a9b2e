// Package ldapproto implements the LDAP protocol controller: dispatching
// a decoded request to the directory/schema services and building the
// correlated response PDU.
package ldapproto

import (
	"unicode/utf8"

	"github.com/lor00x/goldap/message"

	"github.com/patchwork-oss/ldapd/internal/schema"
)

// InvalidAddRequestError reports that an AddRequest's DN or an
// attribute's type/value bytes were not valid UTF-8. Maps to resultCode
// protocolError.
type InvalidAddRequestError struct {
	Name string
	Msg  string
}

func (e *InvalidAddRequestError) Error() string {
	return "invalid add request for " + e.Name + ": " + e.Msg
}

// AddEntryCommand is the decoded, UTF-8-validated form of an AddRequest:
// a DN string and a name-to-value-set attribute map (already unioned
// across repeated attribute names).
type AddEntryCommand struct {
	DN         string
	Attributes schema.CommandAttributes
}

// BuildAddEntryCommand decodes an AddRequest's DN and attribute bytes as
// UTF-8, unioning repeated attribute names' value sets.
func BuildAddEntryCommand(req message.AddRequest) (*AddEntryCommand, error) {
	dn := string(req.Entry())

	rawAttrs := make(map[string][][]byte, len(req.Attributes()))
	for _, attr := range req.Attributes() {
		name := string(attr.Type_())
		for _, v := range attr.Vals() {
			rawAttrs[name] = append(rawAttrs[name], []byte(v))
		}
	}

	return buildAddEntryCommand(dn, rawAttrs)
}

// buildAddEntryCommand does the actual UTF-8 validation and value-set
// unioning once the DN and attribute bytes have been pulled out of the
// decoded AddRequest, kept separate from BuildAddEntryCommand so it's
// testable without constructing a goldap request value.
func buildAddEntryCommand(dn string, rawAttrs map[string][][]byte) (*AddEntryCommand, error) {
	if !utf8.ValidString(dn) {
		return nil, &InvalidAddRequestError{Name: dn, Msg: "DN entry not UTF-8 encoded"}
	}

	attrs := make(schema.CommandAttributes, len(rawAttrs))
	for name, rawVals := range rawAttrs {
		if !utf8.ValidString(name) {
			return nil, &InvalidAddRequestError{Name: dn, Msg: "attribute type not UTF-8 encoded"}
		}

		values, ok := attrs[name]
		if !ok {
			values = make(map[string]struct{}, len(rawVals))
			attrs[name] = values
		}
		for _, raw := range rawVals {
			s := string(raw)
			if !utf8.ValidString(s) {
				return nil, &InvalidAddRequestError{Name: dn, Msg: "attribute value not UTF-8 encoded"}
			}
			values[s] = struct{}{}
		}
	}

	return &AddEntryCommand{DN: dn, Attributes: attrs}, nil
}
