// Package cache provides an LRU cache for immutable blob blocks.
//
// LRUBlockCache charges cached bytes to an optional resource.Controller, so
// cached vocabulary blocks share the memory budget with table payloads.
package cache
