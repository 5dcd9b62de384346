package httpapi

import (
	"context"

	"github.com/muhammadali233755/blogging-app/blog/application"
)

type ctxKey int

const identityKey ctxKey = iota

func withIdentity(ctx context.Context, id *application.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// identityFrom returns the authenticated caller, nil when the request is
// anonymous.
func identityFrom(ctx context.Context) *application.Identity {
	id, _ := ctx.Value(identityKey).(*application.Identity)
	return id
}
