// Package reqid carries a request id through the context so every log line
// of a request can be tied together.
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is read from incoming requests and echoed on responses.
const Header = "X-Request-Id"

type key struct{}

// NewContext returns ctx carrying id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// FromContext returns the request id, or "" when there is none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(key{}).(string)
	return id
}

// PopulateRequestContext is a go-kit ServerBefore hook. It keeps the id a
// caller sent and otherwise mints a new one.
func PopulateRequestContext(ctx context.Context, r *http.Request) context.Context {
	id := r.Header.Get(Header)
	if id == "" {
		id = uuid.NewString()
	}
	return NewContext(ctx, id)
}

// SetResponseHeader is a go-kit ServerAfter hook that echoes the id.
func SetResponseHeader(ctx context.Context, w http.ResponseWriter) context.Context {
	if id := FromContext(ctx); id != "" {
		w.Header().Set(Header, id)
	}
	return ctx
}
