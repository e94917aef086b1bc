package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-mentor/internal/types"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSession_Authenticated(t *testing.T) {
	valid := &Session{Token: signedToken(t, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})}
	assert.True(t, valid.Authenticated())
}

func TestSession_ExpiredTokenNotAuthenticated(t *testing.T) {
	expired := &Session{Token: signedToken(t, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})}
	assert.False(t, expired.Authenticated())
}

func TestSession_MalformedTokenNotAuthenticated(t *testing.T) {
	assert.False(t, (&Session{Token: "not-a-jwt"}).Authenticated())
	assert.False(t, (&Session{}).Authenticated())

	var nilSession *Session
	assert.False(t, nilSession.Authenticated())
}

func TestSession_NoExpiryClaimTrusted(t *testing.T) {
	session := &Session{Token: signedToken(t, jwt.MapClaims{"sub": "user@example.com"})}
	assert.True(t, session.Authenticated())

	_, ok := session.ExpiresAt()
	assert.False(t, ok)
}

func TestSession_ExpiresAt(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	session := &Session{Token: signedToken(t, jwt.MapClaims{"exp": exp.Unix()})}

	got, ok := session.ExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewStore(path)

	saved := &Session{
		Token: "token-value",
		User:  types.User{ID: 7, Email: "ada@example.com", Fullname: "Ada Lovelace"},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, saved.User, loaded.User)
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	require.NoError(t, store.Save(&Session{Token: "x"}))

	require.NoError(t, store.Clear())
	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)

	// Clearing again is fine.
	require.NoError(t, store.Clear())
}

func TestStore_RequireRefusesMissingOrExpired(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	_, err := store.Require()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	expired := &Session{Token: signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})}
	require.NoError(t, store.Save(expired))
	_, err = store.Require()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	valid := &Session{Token: signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})}
	require.NoError(t, store.Save(valid))
	session, err := store.Require()
	require.NoError(t, err)
	assert.True(t, session.Authenticated())
}
