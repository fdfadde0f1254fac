/*
Package app contains the ABCI application glue: a router dispatching
messages to handlers, the decorator chain, the commit store with its check
and deliver caches, and the StoreApp and BaseApp implementations of
abci.Application.
*/
package app
