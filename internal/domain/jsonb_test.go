package domain

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDList_UnmarshalJSON_Array(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	raw, _ := json.Marshal([]string{a.String(), b.String()})

	var l UUIDList
	require.NoError(t, json.Unmarshal(raw, &l))
	assert.Equal(t, UUIDList{a, b}, l)
}

func TestUUIDList_UnmarshalJSON_CommaSeparatedString(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	raw, _ := json.Marshal(a.String() + ", " + b.String())

	var l UUIDList
	require.NoError(t, json.Unmarshal(raw, &l))
	assert.Equal(t, UUIDList{a, b}, l)
}

func TestUUIDList_UnmarshalJSON_EmbeddedJSONArrayString(t *testing.T) {
	a := uuid.New()
	raw, _ := json.Marshal(`["` + a.String() + `"]`)

	var l UUIDList
	require.NoError(t, json.Unmarshal(raw, &l))
	assert.Equal(t, UUIDList{a}, l)
}

func TestUUIDList_UnmarshalJSON_RejectsBadUUID(t *testing.T) {
	var l UUIDList
	err := json.Unmarshal([]byte(`["not-a-uuid"]`), &l)
	assert.Error(t, err)
}

func TestUUIDList_Contains(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	l := UUIDList{a}
	assert.True(t, l.Contains(a))
	assert.False(t, l.Contains(b))
}

func TestStringList_UnmarshalJSON_StringForm(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`"urgent, utilities , "`), &l))
	assert.Equal(t, StringList{"urgent", "utilities"}, l)
}

func TestStringList_UnmarshalJSON_EmptyString(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`""`), &l))
	assert.Empty(t, l)
}

func TestNewEntityID_Format(t *testing.T) {
	id := NewEntityID("report")
	assert.Regexp(t, regexp.MustCompile(`^report_\d{13}_[0-9a-z]{9}$`), id)
	assert.NotEqual(t, id, NewEntityID("report"))
}

func TestNewStoredFileName_StripsPathSeparators(t *testing.T) {
	name := NewStoredFileName(`..\..\evil/invoice.pdf`)
	assert.Regexp(t, regexp.MustCompile(`^\d+-\d+-invoice\.pdf$`), name)
}

func TestNormalizePage_Defaults(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestNormalizePage_CapsLimit(t *testing.T) {
	page, limit := NormalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)
}
