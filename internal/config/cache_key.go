package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// VisitorThemeKey returns the cache key for a visitor's theme preference
func (r *CacheKeyStruct) VisitorThemeKey(visitorID string) string {
	return fmt.Sprintf("visitor:%s:theme", visitorID)
}

// ContactDedupeKey returns the cache key guarding against repeated contact submissions
func (r *CacheKeyStruct) ContactDedupeKey(fingerprint string) string {
	return fmt.Sprintf("contact:dedupe:%s", fingerprint)
}

var CacheKey = NewCacheKeyStruct()
