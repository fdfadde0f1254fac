/*
Package ledger defines the common interfaces that tie the offer ledger
application together: key value storage, addresses and conditions,
handlers and decorators, transactions and query routing.

Extensions under x/ depend only on this package and on each other's
exported interfaces, never on the concrete application in cmd/offerd.
*/
package ledger
