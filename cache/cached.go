package cache

// Cached wraps a zero-argument computation. A fresh cached result is returned
// as is; otherwise fn runs outside the cache lock and its result replaces the
// entry. Two callers missing at once may both run fn.
func Cached[T any](c *Cache, name string, fn func() T) func() T {
	key := Key(name)
	return func() T {
		if v, ok := c.Get(key); ok {
			if t, ok := v.(T); ok {
				return t
			}
		}
		t := fn()
		c.Set(key, t)
		return t
	}
}

// Cached1 is Cached for a one-argument computation, keyed per argument.
func Cached1[A, T any](c *Cache, name string, fn func(A) T) func(A) T {
	return func(a A) T {
		key := Key(name, a)
		if v, ok := c.Get(key); ok {
			if t, ok := v.(T); ok {
				return t
			}
		}
		t := fn(a)
		c.Set(key, t)
		return t
	}
}

// GetOrCompute is the error-returning form used by the engine: failed
// computations are not cached.
func GetOrCompute[T any](c *Cache, key string, fn func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	t, err := fn()
	if err != nil {
		return t, err
	}
	c.Set(key, t)
	return t, nil
}
