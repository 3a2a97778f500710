package fakeapi

import (
	"context"
	"net/http"
)

func withOwner(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ownerKey{}, email)
}

func owner(r *http.Request) string {
	email, _ := r.Context().Value(ownerKey{}).(string)
	return email
}
