// Package session implements the cookie based session identity.
// Possession of the session cookie value is the only authorization
// mechanism of the service, so the identifier is treated as an opaque
// bearer capability.
package session

import (
	"context"
	"net/http"

	uuid "github.com/satori/go.uuid"

	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/lib-core-golang/router"
)

var logger = diag.CreateLogger()

// CookieName is a name of the session cookie
const CookieName = "sessionId"

// CookieMaxAge is the session cookie lifetime, 7 days
const CookieMaxAge = 7 * 24 * 60 * 60

type contextKey string

const sessionIDKey contextKey = "sessionID"

// ContextWithSessionID - create context with session id
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDValue - returns session id value taken from context
func SessionIDValue(ctx context.Context) string {
	val := ctx.Value(sessionIDKey)
	if val == nil {
		return ""
	}
	return val.(string)
}

type resolverCfg struct {
	newUUID func() uuid.UUID
}

// ResolverOpt is an option of a session resolver
type ResolverOpt func(cfg *resolverCfg)

// WithNewUUID will set an explicit uuid factory, used for tests
func WithNewUUID(newUUID func() uuid.UUID) ResolverOpt {
	return func(cfg *resolverCfg) {
		cfg.newUUID = newUUID
	}
}

// Resolver provisions session identifiers for incoming requests
type Resolver struct {
	cfg resolverCfg
}

// NewResolver returns an instance of a session resolver
func NewResolver(opts ...ResolverOpt) *Resolver {
	cfg := resolverCfg{newUUID: uuid.NewV4}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Resolver{cfg: cfg}
}

// Resolve returns a session id of a given request.
// If the request carries no session cookie a new random id is minted.
func (r *Resolver) Resolve(req *http.Request) string {
	if cookie, err := req.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sessionID := r.cfg.newUUID().String()
	logger.Debug(req.Context(), "Minted new session id")
	return sessionID
}

// NewCookie builds a session cookie to provision given session id
func NewCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:   CookieName,
		Value:  sessionID,
		Path:   "/",
		MaxAge: CookieMaxAge,
	}
}

// RequireSession is a guard that rejects requests without a session cookie.
// The session id of passed requests is available via SessionIDValue
func RequireSession(next router.ToolkitHandlerFunc) router.ToolkitHandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
		cookie, err := req.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			logger.Info(req.Context(), "Rejecting request without session cookie")
			return router.UnauthorizedError("Unauthorized: session cookie is missing")
		}
		nextReq := req.WithContext(ContextWithSessionID(req.Context(), cookie.Value))
		return next(w, nextReq, h)
	}
}
