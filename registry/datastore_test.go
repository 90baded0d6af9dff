package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinthlabs/tokenbook/fault"
)

func TestStoreData(t *testing.T) {
	reg := newTestRegistry(t)

	assert.Equal(t, fault.ErrUnauthorized, reg.StoreData("x", nobody))
	assert.Equal(t, fault.ErrEmptyValue, reg.StoreData("", admin))

	require.NoError(t, reg.StoreData("first", admin))
	require.NoError(t, reg.StoreData("second", admin))
	assert.Equal(t, []string{"first", "second"}, reg.ListData())
}

func TestDeleteDataRemovesOneInstance(t *testing.T) {
	reg := newTestRegistry(t)

	require.NoError(t, reg.StoreData("dup", admin))
	require.NoError(t, reg.StoreData("other", admin))
	require.NoError(t, reg.StoreData("dup", admin))

	require.NoError(t, reg.DeleteData("dup", admin))
	assert.ElementsMatch(t, []string{"other", "dup"}, reg.ListData())

	require.NoError(t, reg.DeleteData("dup", admin))
	assert.Equal(t, []string{"other"}, reg.ListData())

	assert.Equal(t, fault.ErrNotFound, reg.DeleteData("dup", admin))
	assert.Equal(t, fault.ErrUnauthorized, reg.DeleteData("other", nobody))
}
