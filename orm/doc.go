/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket holds one model type, amino encoded, under
<bucket name>:<key>. Secondary indexes are kept in their
own prefixed space and updated on every Put and Delete.

Sequence is a persistent counter that produces
big endian keys, so ids keep their natural order.
*/
package orm
