// Package cache provides a generic, goroutine-safe LRU cache.
//
// The cache evicts the least recently used item once it grows past its
// capacity. GetOrLoad fills misses from a loader function, which makes the
// cache a convenient memo for expensive pure computations such as compiling
// regular expressions.
//
// # Usage
//
//	patterns := cache.NewLRU[string, *regexp.Regexp](128)
//
//	re, err := patterns.GetOrLoad(`^\d+$`, regexp.Compile)
//	if err != nil {
//	    // invalid pattern, nothing was cached
//	}
//
// An eviction callback can be installed with OnEvict to release resources held
// by evicted values.
package cache
