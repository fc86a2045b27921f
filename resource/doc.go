// Package resource bounds the memory and IO a set of tables may use.
//
// A Controller is shared between tables, loaders and block caches. Memory is
// accounted in bytes of string payload; IO is throttled in bytes per second.
// A Controller is safe for concurrent use, and a nil *Controller imposes no
// limits.
package resource
