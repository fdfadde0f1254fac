/*
Package cash keeps a single balance per address and moves value between
them.

There is no logic in the coins, except that a balance may never go below
zero or overflow. Other extensions move value through the Controller, so
wallets are only ever touched by this package.
*/
package cash
