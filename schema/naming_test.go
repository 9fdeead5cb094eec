package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToColumnDefault(t *testing.T) {
	conv := NewConverter()

	tests := []struct {
		field string
		want  string
	}{
		{"ID", "id"},
		{"FirstName", "first_name"},
		{"serviceCode", "service_code"},
		{"UserID", "user_id"},
		{"HTTPStatus", "http_status"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, conv.ToColumn(tt.field))
		})
	}
}

func TestToColumnOverrides(t *testing.T) {
	conv := NewConverter(
		WithOverride("^serviceCode$", "service_cd"),
		WithOverride("^serviceCode$", "never_reached"),
		WithOverride("Legacy$", "_old"),
	)

	assert.Equal(t, "service_cd", conv.ToColumn("serviceCode"))
	// Partial-match substitution, applied to the field name.
	assert.Equal(t, "account_old", conv.ToColumn("accountLegacy"))
	// Unmatched names fall through to default conversion.
	assert.Equal(t, "first_name", conv.ToColumn("FirstName"))
}

func TestToColumnIdentity(t *testing.T) {
	conv := NewConverter(WithoutConversion())
	assert.Equal(t, "FirstName", conv.ToColumn("FirstName"))

	// Overrides still take precedence over identity.
	conv = NewConverter(WithoutConversion(), WithOverride("^Code$", "cd"))
	assert.Equal(t, "cd", conv.ToColumn("Code"))
	assert.Equal(t, "Other", conv.ToColumn("Other"))
}

func TestToField(t *testing.T) {
	conv := NewConverter()
	assert.Equal(t, "firstName", conv.ToField("first_name"))
	assert.Equal(t, "id", conv.ToField("id"))

	identity := NewConverter(WithoutConversion())
	assert.Equal(t, "first_name", identity.ToField("first_name"))
}

func TestDeriveTableName(t *testing.T) {
	assert.Equal(t, "users", DeriveTableName("User"))
	assert.Equal(t, "blog_posts", DeriveTableName("BlogPost"))
	assert.Equal(t, "categories", DeriveTableName("Category"))
}
