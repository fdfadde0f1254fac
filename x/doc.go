/*
Package x contains the extensions the ledger application is built from.

Every sub-package provides handlers, decorators or controllers that are
combined by the application. This package itself only holds the
authentication abstraction all of them share, so that no extension has to
depend on a concrete signature scheme.
*/
package x
