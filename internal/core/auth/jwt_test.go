package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-api/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("secret"), Issuer: "test", TTL: time.Hour}
	u := &domain.User{ID: 42, Name: "alice", Roles: []string{domain.RoleUser, domain.RoleAdmin}}

	tok, err := j.Issue(u)
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UID)

	p := claims.Principal()
	assert.Equal(t, "alice", p.Name)
	assert.True(t, p.IsAdmin())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("secret"), Issuer: "test", TTL: time.Hour}
	tok, err := j.Issue(&domain.User{ID: 1, Name: "a"})
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("secret"), Issuer: "someone-else", TTL: time.Hour}
	tok, err := j.Issue(&domain.User{ID: 1, Name: "a"})
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("secret"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}
