package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", Question{}.Placeholder(3))
	assert.Equal(t, "$3", Postgres{}.Placeholder(3))
	assert.Equal(t, "?", MySQL{}.Placeholder(3))
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"users"`, Question{}.QuoteIdentifier("users"))
	assert.Equal(t, `"we""ird"`, Postgres{}.QuoteIdentifier(`we"ird`))
	assert.Equal(t, "`order`", MySQL{}.QuoteIdentifier("order"))
	assert.Equal(t, "`a``b`", MySQL{}.QuoteIdentifier("a`b"))
}
