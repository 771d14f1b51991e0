package models

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestAccountDisplayName(t *testing.T) {
	account := Account{Name: "Alice"}
	assert.Equal(t, "Alice", account.DisplayName())

	account.Username = lo.ToPtr("")
	assert.Equal(t, "Alice", account.DisplayName())

	account.Username = lo.ToPtr("alice")
	assert.Equal(t, "alice", account.DisplayName())
}

func TestAccountCacheEncodingOmitsPassword(t *testing.T) {
	account := Account{Name: "Alice", Email: "alice@example.com", Password: "$2a$10$hash"}
	account.ID = 3

	raw, err := msgpack.Marshal(account)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$10$hash")

	var decoded Account
	require.NoError(t, msgpack.Unmarshal(raw, &decoded))
	assert.Empty(t, decoded.Password)
	assert.Equal(t, "Alice", decoded.Name)
	assert.EqualValues(t, 3, decoded.ID)
}
