package vision

import "container/list"

// memoCache is a capacity-bounded LRU over the prefix+instruction key.
// A stored nil slice is a valid entry: it remembers a lookup that
// resolved to nothing (or failed) so the backend is not asked again.
// Not safe for concurrent use; processors guard it with their own lock.
type memoCache struct {
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type memoEntry struct {
	key      string
	elements []Element
}

func newMemoCache(capacity int) *memoCache {
	if capacity <= 0 {
		capacity = 128
	}
	return &memoCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

func (c *memoCache) get(key string) ([]Element, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoEntry).elements, true
}

func (c *memoCache) put(key string, elements []Element) {
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		el.Value.(*memoEntry).elements = elements
		return
	}
	c.entries[key] = c.order.PushFront(&memoEntry{key: key, elements: elements})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*memoEntry).key)
	}
}

func (c *memoCache) len() int { return c.order.Len() }
