package sqlite3adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	q, err := quoteIdentifier("play tennis")
	require.NoError(t, err)
	assert.Equal(t, `"play tennis"`, q)

	_, err = quoteIdentifier(`a"b`)
	assert.Error(t, err)
	_, err = quoteIdentifier("")
	assert.Error(t, err)
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", (&adapter{}).Placeholder(3))
}
