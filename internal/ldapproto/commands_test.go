package ldapproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAddEntryCommandUnionsRepeatedAttributeValues(t *testing.T) {
	cmd, err := buildAddEntryCommand("cn=Alice,dc=dev", map[string][][]byte{
		"cn": {[]byte("Alice"), []byte("Ally")},
	})
	require.NoError(t, err)
	assert.Equal(t, "cn=Alice,dc=dev", cmd.DN)
	assert.Equal(t, map[string]struct{}{"Alice": {}, "Ally": {}}, cmd.Attributes["cn"])
}

func TestBuildAddEntryCommandRejectsNonUTF8DN(t *testing.T) {
	_, err := buildAddEntryCommand("cn=\xff\xfe", map[string][][]byte{})
	require.Error(t, err)
	var invalid *InvalidAddRequestError
	require.ErrorAs(t, err, &invalid)
}

func TestBuildAddEntryCommandRejectsNonUTF8AttributeType(t *testing.T) {
	_, err := buildAddEntryCommand("cn=Alice,dc=dev", map[string][][]byte{
		"\xff\xfe": {[]byte("Alice")},
	})
	require.Error(t, err)
	var invalid *InvalidAddRequestError
	require.ErrorAs(t, err, &invalid)
}

func TestBuildAddEntryCommandRejectsNonUTF8AttributeValue(t *testing.T) {
	_, err := buildAddEntryCommand("cn=Alice,dc=dev", map[string][][]byte{
		"cn": {[]byte("\xff\xfe")},
	})
	require.Error(t, err)
	var invalid *InvalidAddRequestError
	require.ErrorAs(t, err, &invalid)
}
