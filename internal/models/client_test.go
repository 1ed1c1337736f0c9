package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	original := StringList{"casa", "apartamento"}

	value, err := original.Value()
	require.NoError(t, err)
	assert.Equal(t, `["casa","apartamento"]`, value)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestStringListNil(t *testing.T) {
	var l StringList

	value, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestStringListScanBytes(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["terreno"]`)))
	assert.Equal(t, StringList{"terreno"}, l)
}

func TestStringListScanNil(t *testing.T) {
	l := StringList{"casa"}
	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)
}
