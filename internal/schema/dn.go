package schema

import "strings"

// RDNPair is one (attribute OID, value) pair within an RDN. A plain RDN
// carries one pair; a multi-valued RDN ("+"-joined) carries several.
type RDNPair struct {
	OID   string
	Value string
}

// RDN is an ordered list of OID/value pairs, rendered joined by "+".
type RDN []RDNPair

// String renders the RDN as "oid=val[+oid=val]*".
func (r RDN) String() string {
	parts := make([]string, len(r))
	for i, p := range r {
		parts[i] = p.OID + "=" + p.Value
	}
	return strings.Join(parts, "+")
}

// Equal compares two RDNs pair-by-pair in order.
func (r RDN) Equal(other RDN) bool {
	if len(r) != len(other) {
		return false
	}
	for i, p := range r {
		if p != other[i] {
			return false
		}
	}
	return true
}

// DN is an ordered list of RDNs, most-specific first.
type DN []RDN

// String renders the DN as the ","-joined concatenation of its RDNs.
func (d DN) String() string {
	parts := make([]string, len(d))
	for i, r := range d {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// Equal compares two DNs RDN-by-RDN in order.
func (d DN) Equal(other DN) bool {
	if len(d) != len(other) {
		return false
	}
	for i, r := range d {
		if !r.Equal(other[i]) {
			return false
		}
	}
	return true
}

// First returns the DN's most-specific RDN.
func (d DN) First() RDN {
	if len(d) == 0 {
		return nil
	}
	return d[0]
}

// ParentDN drops the DN's most-specific RDN.
func (d DN) ParentDN() DN {
	if len(d) <= 1 {
		return DN{}
	}
	return d[1:]
}

// InvalidDNError reports that a DN string could not be parsed, or named
// an attribute not present in the schema. Maps to resultCode
// invalidDNSyntax.
type InvalidDNError struct {
	DN  string
	Msg string
}

func (e *InvalidDNError) Error() string {
	return "invalid DN " + e.DN + ": " + e.Msg
}

// parseRawDN splits DN text into raw (name, value) pairs per RDN, without
// resolving names to OIDs. Splitting happens on "," between RDNs and "+"
// within a multi-valued RDN, then on "=" within each pair.
func parseRawDN(text string) ([][]rdnRawPair, error) {
	var rdns [][]rdnRawPair
	for _, rdnText := range strings.Split(text, ",") {
		var pairs []rdnRawPair
		for _, attrText := range strings.Split(rdnText, "+") {
			name, value, ok := strings.Cut(attrText, "=")
			if !ok {
				return nil, &InvalidDNError{DN: text, Msg: "RDN segment missing '=': " + attrText}
			}
			pairs = append(pairs, rdnRawPair{name: name, value: value})
		}
		rdns = append(rdns, pairs)
	}
	return rdns, nil
}

type rdnRawPair struct {
	name  string
	value string
}
