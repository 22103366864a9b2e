package schema

// UnknownAttributeError reports a user-supplied attribute name with no
// match in the schema repository. Maps to resultCode
// undefinedAttributeType.
type UnknownAttributeError struct {
	Name string
}

func (e *UnknownAttributeError) Error() string {
	return "unknown attribute: " + e.Name
}

// UnknownObjectClassError reports a user-supplied object class name with
// no match in the schema repository. Maps to resultCode
// undefinedAttributeType.
type UnknownObjectClassError struct {
	Name string
}

func (e *UnknownObjectClassError) Error() string {
	return "unknown object class: " + e.Name
}

// InvalidEntryError reports that a constructed entry fails schema
// validation. It has no direct resultCode of its own and is mapped via
// UnwillingToPerform by the protocol controller.
type InvalidEntryError struct {
	ID  string
	Msg string
}

func (e *InvalidEntryError) Error() string {
	return "invalid entry " + e.ID + ": " + e.Msg
}
