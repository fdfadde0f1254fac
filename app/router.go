package app

import (
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// isPath is the format of a message path, eg. offer/create
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router allows us to register many handlers with different message paths
// and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]ledger.Handler
}

var _ ledger.Registry = (*Router)(nil)
var _ ledger.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]ledger.Handler, 10),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered or the path is malformed.
func (r *Router) Handle(path string, h ledger.Handler) {
	if !isPath(path) {
		panic(errors.Wrapf(errors.ErrInvalidInput, "invalid path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(errors.Wrapf(errors.ErrDuplicate, "re-register path %q", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler.
func (r *Router) Handler(path string) ledger.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	path, err := txPath(tx)
	if err != nil {
		return nil, err
	}
	return r.Handler(path).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	path, err := txPath(tx)
	if err != nil {
		return nil, err
	}
	return r.Handler(path).Deliver(ctx, db, tx)
}

func txPath(tx ledger.Tx) (string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return "", errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return "", errors.Wrap(errors.ErrInvalidMsg, "transaction has no message")
	}
	return msg.Path(), nil
}

// noSuchPathHandler is returned for any path that is not registered.
type noSuchPathHandler struct {
	path string
}

var _ ledger.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(ledger.Context, ledger.KVStore, ledger.Tx) (*ledger.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "path %q", h.path)
}

func (h noSuchPathHandler) Deliver(ledger.Context, ledger.KVStore, ledger.Tx) (*ledger.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "path %q", h.path)
}
