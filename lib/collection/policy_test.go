package collection

import (
	"testing"

	"github.com/ValentinKolb/dColl/lib/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		policy Policy
		key    store.Key
		valid  bool
	}{
		{PolicyArray, store.IntKey(-3), true},
		{PolicyArray, store.StrKey("name"), true},
		{PolicyArray, store.StrKey(""), false},
		{PolicyMap, store.StrKey("name"), true},
		{PolicyMap, store.IntKey(0), false},
		{PolicyMap, store.StrKey(""), false},
		{PolicyList, store.IntKey(0), true},
		{PolicyList, store.IntKey(-1), false},
		{PolicyList, store.StrKey("0"), false},
		{PolicySet, store.IntKey(4), true},
		{PolicySet, store.StrKey("a"), false},
	}

	for _, tt := range tests {
		err := tt.policy.Validate(tt.key)
		if tt.valid {
			assert.NoError(t, err, "%s %#v", tt.policy.Kind, tt.key)
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidKey, "%s %#v", tt.policy.Kind, tt.key)
	}
}

func TestPolicyValidateAllReportsFirstViolation(t *testing.T) {
	err := PolicyList.ValidateAll([]store.Key{store.IntKey(0), store.IntKey(-1), store.StrKey("x")})
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, store.IntKey(-1), *cerr.Key)
	assert.Equal(t, KindList, cerr.Kind)

	assert.NoError(t, PolicyArray.ValidateAll(nil))
}

func TestPolicyNormalize(t *testing.T) {
	assert.Equal(t, store.IntKey(2), PolicyList.Normalize(store.IntKey(9), 2))
	assert.Equal(t, store.IntKey(1), PolicyList.Normalize(store.IntKey(1), 2))
	assert.Equal(t, store.IntKey(2), PolicyList.Normalize(store.IntKey(2), 2))
	assert.Equal(t, store.IntKey(9), PolicyArray.Normalize(store.IntKey(9), 2))
}

func TestParseKind(t *testing.T) {
	for _, kind := range []Kind{KindArray, KindMap, KindList, KindSet} {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)

		policy, err := kind.Policy()
		require.NoError(t, err)
		assert.Equal(t, kind, policy.Kind)
	}

	k, err := ParseKind(" LIST ")
	require.NoError(t, err)
	assert.Equal(t, KindList, k)

	_, err = ParseKind("tree")
	assert.Error(t, err)

	_, err = KindUnknown.Policy()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConstructionIsAllOrNothing(t *testing.T) {
	c, err := New(PolicyList, store.Snapshot{
		{Key: store.IntKey(0), Value: "a"},
		{Key: store.IntKey(1), Value: "b"},
		{Key: store.IntKey(-2), Value: "c"},
	})
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.Nil(t, c)
}
