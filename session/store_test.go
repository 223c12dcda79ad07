package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/octabyte/becas-client/enums"
	"github.com/octabyte/becas-client/models"
	"github.com/octabyte/becas-client/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() models.User {
	return models.User{
		ID:       "u-1",
		Email:    "a@unimet.edu.ve",
		Nombre:   "Ana",
		Apellido: "Pérez",
		Role:     enums.RoleStudent,
		Activo:   true,
	}
}

func testTokens() models.TokenSet {
	return models.TokenSet{AccessToken: "T1", RefreshToken: "R1", ExpiresIn: "3600"}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	pairs := []struct {
		name   string
		user   models.User
		tokens models.TokenSet
	}{
		{"full", testUser(), testTokens()},
		{"no surname", models.User{ID: "u-2", Email: "b@unimet.edu.ve", Nombre: "Beto", Role: enums.RoleMentor}, models.TokenSet{AccessToken: "T2"}},
		{"unknown role", models.User{ID: "u-3", Email: "c@unimet.edu.ve", Role: "coordinador", Activo: true}, models.TokenSet{AccessToken: "T3", RefreshToken: "R3", ExpiresIn: "1h"}},
	}

	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(storage.NewMemory(), "")
			require.NoError(t, store.Save(ctx, tc.user, tc.tokens))

			sess, err := store.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, sess)
			assert.Equal(t, tc.user, *sess.User)
			assert.Equal(t, tc.tokens, *sess.Tokens)
		})
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	store := NewStore(backend, "")
	require.NoError(t, store.Save(ctx, testUser(), testTokens()))

	require.NoError(t, store.Clear(ctx))

	sess, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sess)
	_, err = backend.Get(ctx, "user")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = backend.Get(ctx, "tokens")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreLoadUnusableData(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name   string
		user   string
		tokens string
	}{
		{"only user", `{"id":"u-1"}`, ""},
		{"only tokens", "", `{"accessToken":"T1"}`},
		{"corrupted user", `{"id":`, `{"accessToken":"T1"}`},
		{"corrupted tokens", `{"id":"u-1"}`, `not json`},
		{"null user", `null`, `{"accessToken":"T1"}`},
		{"null tokens", `{"id":"u-1"}`, ` null `},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := storage.NewMemory()
			if tc.user != "" {
				require.NoError(t, backend.Set(ctx, "user", tc.user))
			}
			if tc.tokens != "" {
				require.NoError(t, backend.Set(ctx, "tokens", tc.tokens))
			}

			var sess *models.Session
			assert.NotPanics(t, func() {
				sess, _ = NewStore(backend, "").Load(ctx)
			})
			assert.Nil(t, sess)
		})
	}
}

// rejectingKey wraps a backend and fails every Set on one key.
type rejectingKey struct {
	storage.Storage
	key    string
	delErr error
}

var errRejected = errors.New("write rejected")

func (r *rejectingKey) Set(ctx context.Context, key, value string) error {
	if key == r.key {
		return errRejected
	}
	return r.Storage.Set(ctx, key, value)
}

func (r *rejectingKey) Del(ctx context.Context, keys ...string) error {
	if r.delErr != nil {
		return r.delErr
	}
	return r.Storage.Del(ctx, keys...)
}

func TestStoreSaveFailedUserWriteLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, NewStore(mem, "").Save(ctx, testUser(), testTokens()))

	backend := &rejectingKey{Storage: mem, key: "user"}
	store := NewStore(backend, "")
	bob := models.User{ID: "u-2", Email: "b@unimet.edu.ve", Nombre: "Beto", Role: enums.RoleMentor, Activo: true}
	err := store.Save(ctx, bob, models.TokenSet{AccessToken: "T2", RefreshToken: "R2"})
	require.ErrorIs(t, err, errRejected)

	sess, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sess, "old user must not pair with new tokens")

	_, err = mem.Get(ctx, "tokens")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = mem.Get(ctx, "user")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreSaveReportsCleanupFailure(t *testing.T) {
	ctx := context.Background()
	errDel := errors.New("delete rejected")
	store := NewStore(&rejectingKey{Storage: storage.NewMemory(), key: "user", delErr: errDel}, "")

	err := store.Save(ctx, testUser(), testTokens())
	assert.ErrorIs(t, err, errRejected)
	assert.ErrorIs(t, err, errDel)
}

func TestStorePrefix(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, NewStore(backend, "becas:").Save(ctx, testUser(), testTokens()))

	raw, err := backend.Get(ctx, "becas:tokens")
	require.NoError(t, err)
	assert.JSONEq(t, `{"accessToken":"T1","refreshToken":"R1","expiresIn":"3600"}`, raw)

	sess, err := NewStore(backend, "").Load(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sess, "unprefixed store must not see namespaced keys")
}

func TestStoreOverRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewStore(storage.NewRedis(client, 0), "becas:")
	require.NoError(t, store.Save(ctx, testUser(), testTokens()))
	assert.True(t, mr.Exists("becas:user"))
	assert.True(t, mr.Exists("becas:tokens"))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T1", sess.AccessToken())

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists("becas:user"))
	assert.False(t, mr.Exists("becas:tokens"))
}

func TestContextHelpers(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, TokenFromContext(context.Background()))

	user, tokens := testUser(), testTokens()
	ctx := NewContext(context.Background(), models.Session{User: &user, Tokens: &tokens})

	sess, ok := FromContext(ctx)
	require.True(t, ok)
	assert.True(t, sess.Active())
	assert.Equal(t, "T1", TokenFromContext(ctx))
}
