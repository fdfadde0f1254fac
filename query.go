package ledger

import (
	"fmt"
	"strings"
)

// Query modifiers are appended to the query path after a question mark,
// for example "/offers?prefix".
const (
	// KeyQueryMod selects the model stored under exactly the given key.
	KeyQueryMod = ""
	// PrefixQueryMod selects all models with keys starting with the
	// given data.
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers queries sent to a single path. Queries always run
// against the last committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the queries of an extension to the router.
type QueryRegister func(QueryRouter)

// QueryRouter directs each query to the handler registered for its path.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns a router without any routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with this router.
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, register := range qr {
		register(r)
	}
}

// Register adds a handler for the given path. Paths start with a slash.
// Registering the same path twice is a programming error and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Sprintf("query path must start with a slash: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path already registered: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for the path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
