package mocks

import (
	"context"

	"hotelier/shared/cache"
)

type cacheImpl struct {
}

// Clear implements cache.RedisCache.
func (c *cacheImpl) Clear(_ context.Context, _ string) error {
	return nil
}

// Delete implements cache.RedisCache.
func (c *cacheImpl) Delete(_ context.Context, _ string) error {
	return nil
}

// Get implements cache.RedisCache. It always misses.
func (c *cacheImpl) Get(_ context.Context, _ string, _ any) error {
	return cache.Nil
}

// Save implements cache.RedisCache.
func (c *cacheImpl) Save(_ context.Context, _ string, _ any, _ int) error {
	return nil
}

func NewCache() cache.RedisCache {
	return &cacheImpl{}
}
