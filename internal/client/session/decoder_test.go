package session

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".signature"
}

func TestUnverifiedDecoder_Valid(t *testing.T) {
	d := NewUnverifiedDecoder()

	claims, ok := d.Decode(makeToken(`{"name":"Ava","email":"ava@x.com","iat":1700000000,"exp":1700003600,"role":"user"}`))
	require.True(t, ok)

	assert.Equal(t, "Ava", claims.Name)
	assert.Equal(t, "ava@x.com", claims.Email)
	assert.Equal(t, time.Unix(1700000000, 0).Unix(), claims.IssuedAt.Unix())
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, int64(1700003600), claims.ExpiresAt.Unix())
	assert.Equal(t, "user", claims.Raw["role"])
}

func TestUnverifiedDecoder_MinimalPayload(t *testing.T) {
	claims, ok := NewUnverifiedDecoder().Decode(makeToken(`{}`))
	require.True(t, ok)
	assert.Empty(t, claims.Name)
	assert.True(t, claims.IssuedAt.IsZero())
	assert.Nil(t, claims.ExpiresAt)
	assert.Equal(t, "User", claims.DisplayName("User"))
}

func TestUnverifiedDecoder_BadClaimTypesAreIgnored(t *testing.T) {
	claims, ok := NewUnverifiedDecoder().Decode(makeToken(`{"name":42,"exp":"tomorrow"}`))
	require.True(t, ok)
	assert.Empty(t, claims.Name)
	assert.Nil(t, claims.ExpiresAt)
}

func TestUnverifiedDecoder_AcceptsPaddingAndStdAlphabet(t *testing.T) {
	d := NewUnverifiedDecoder()

	payload := []byte(`{"name":"a~~~>>>???"}`)
	std := base64.StdEncoding.EncodeToString(payload)
	require.Contains(t, std, "+")
	require.Contains(t, std, "/")

	claims, ok := d.Decode("h." + std + ".s")
	require.True(t, ok, "standard alphabet")
	assert.Equal(t, "a~~~>>>???", claims.Name)

	padded := base64.URLEncoding.EncodeToString([]byte(`{"name":"Ava"}`))
	claims, ok = d.Decode("h." + padded + ".s")
	require.True(t, ok, "url alphabet with padding")
	assert.Equal(t, "Ava", claims.Name)
}

func TestUnverifiedDecoder_IsTotal(t *testing.T) {
	d := NewUnverifiedDecoder()

	inputs := []string{
		"",
		".",
		"..",
		"not-a-token",
		"only.two",
		"a.b.c.d",
		"h.!!!notbase64!!!.s",
		"h." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".s",
		"h." + base64.RawURLEncoding.EncodeToString([]byte("null")) + ".s",
		"h." + base64.RawURLEncoding.EncodeToString([]byte("123")) + ".s",
		"h." + base64.RawURLEncoding.EncodeToString([]byte(`["array"]`)) + ".s",
		"h." + base64.RawURLEncoding.EncodeToString([]byte(`{"name":`)) + ".s",
		"h.\x00\xff.s",
	}

	for _, in := range inputs {
		require.NotPanics(t, func() {
			_, ok := d.Decode(in)
			assert.False(t, ok, "input %q must be invalid", in)
		})
	}
}
