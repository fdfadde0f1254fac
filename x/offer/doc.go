/*
Package offer implements a two-party escrow ledger.

The creator of an offer deposits an amount earmarked for a single
recipient. The value is held by the custody wallet until the recipient
accepts the offer, which pays the amount out to the recipient, or the
creator cancels it, which pays it back. Either release happens at most
once per offer. Offers are never deleted, terminal offers stay queryable.

Offer ids are assigned sequentially starting at 1.
*/
package offer
