package href

import "sync"

// urlPool is the pool of the `URL`s that belong to the same `Href`.
type urlPool struct {
	h    *Href
	pool *sync.Pool
}

// newURLPool returns a new instance of the `urlPool` with the h.
func newURLPool(h *Href) *urlPool {
	return &urlPool{
		h: h,
		pool: &sync.Pool{
			New: func() interface{} {
				return newURL(h)
			},
		},
	}
}

// get returns an instance of the `URL` from the up, parsed from the s.
func (up *urlPool) get(s string) *URL {
	u := up.pool.Get().(*URL)
	parseInto(u, s)
	return u
}

// put puts the u back to the up.
func (up *urlPool) put(u *URL) {
	if u == nil || u.h != up.h {
		return
	}

	u.reset()
	up.pool.Put(u)
}

// AcquireURL returns a URL value parsed from the s, reusing a released one
// when possible. It never goes through the parse cache.
//
// The returned value should be given back by calling the `ReleaseURL` once
// it is no longer used, which reduces the allocations of hot loops.
func (h *Href) AcquireURL(s string) *URL {
	return h.urlPool.get(s)
}

// ReleaseURL gives the u back to the h. The u must not be used after that.
// URL values that belong to other `Href`s are ignored.
func (h *Href) ReleaseURL(u *URL) {
	h.urlPool.put(u)
}
