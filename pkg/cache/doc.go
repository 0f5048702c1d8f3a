// Package cache provides a generic, thread-safe LRU cache.
//
// The locale table uses it to memoize Accept-Language negotiation, where a
// small set of distinct headers accounts for most traffic:
//
//	c := cache.NewLRUCache[string, int](1024)
//	c.Put("en-US,en;q=0.9", 0)
//	v, ok := c.Get("en-US,en;q=0.9")
//
// All methods are safe for concurrent use. Stats reports hit and miss counts
// since creation or the last Clear.
package cache
