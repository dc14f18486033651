/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary key and no secondary indexes.
* Objects are serialized with protocol buffers.

Sequences provide monotonically increasing counters stored next to the
bucket data, used to build unique keys.
*/
package orm
