package util

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// CacheConfig 用于配置LRU缓存的行为。
type CacheConfig struct {
	// Capacity 是缓存的最大元素数量。如果为0，则不限制数量。
	Capacity int
	// TTL 是元素的存活时间。如果为0，则元素永不过期。
	TTL time.Duration
}

// entry 结构体用于存储链表节点中的实际数据。
type entry[K comparable, V any] struct {
	key        K
	value      V
	expiration time.Time // 元素的过期时间
}

// LRUCache 是一个支持泛型、可配置且线程安全的LRU缓存。
// 访问一个元素会刷新它的位置和过期时间，容量超限时淘汰最久未使用的元素。
type LRUCache[K comparable, V any] struct {
	config CacheConfig
	ll     *list.List
	cache  map[K]*list.Element
	lock   sync.RWMutex // 读写锁保证并发安全
}

// NewWithConfig 使用指定的配置创建一个LRU缓存实例。
func NewWithConfig[K comparable, V any](config CacheConfig) (*LRUCache[K, V], error) {
	// 至少要有一个限制条件
	if config.Capacity <= 0 && config.TTL <= 0 {
		return nil, fmt.Errorf("必须设置 Capacity 或 TTL 中的至少一个")
	}
	return &LRUCache[K, V]{
		config: config,
		ll:     list.New(),
		cache:  make(map[K]*list.Element),
	}, nil
}

// Get 方法根据键获取一个值，并刷新其最近使用位置与过期时间。
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.cache[key]
	if !ok {
		var zeroV V
		return zeroV, false
	}

	// 检查TTL是否过期（被动淘汰）
	ent := element.Value.(*entry[K, V])
	if c.config.TTL > 0 && time.Now().After(ent.expiration) {
		c.removeElement(element)
		var zeroV V
		return zeroV, false
	}

	if c.config.TTL > 0 {
		ent.expiration = time.Now().Add(c.config.TTL)
	}
	c.ll.MoveToFront(element)
	return ent.value, true
}

// Put 方法向缓存中添加或更新一个值。
func (c *LRUCache[K, V]) Put(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	expiration := time.Time{}
	if c.config.TTL > 0 {
		expiration = time.Now().Add(c.config.TTL)
	}

	if element, ok := c.cache[key]; ok {
		ent := element.Value.(*entry[K, V])
		ent.value = value
		ent.expiration = expiration
		c.ll.MoveToFront(element)
		return
	}

	element := c.ll.PushFront(&entry[K, V]{key: key, value: value, expiration: expiration})
	c.cache[key] = element

	// 容量超限时淘汰链表尾部（最久未使用）的元素。
	if c.config.Capacity > 0 && c.ll.Len() > c.config.Capacity {
		c.removeOldest()
	}
}

// Remove 方法从缓存中删除一个键。
func (c *LRUCache[K, V]) Remove(key K) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.cache[key]
	if !ok {
		return false
	}
	c.removeElement(element)
	return true
}

// Len 返回缓存中未过期元素的数量。
func (c *LRUCache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.config.TTL > 0 {
		now := time.Now()
		for element := c.ll.Back(); element != nil; {
			prev := element.Prev()
			if now.After(element.Value.(*entry[K, V]).expiration) {
				c.removeElement(element)
			}
			element = prev
		}
	}
	return c.ll.Len()
}

// Keys 返回缓存中所有未过期的键，按最近使用顺序排列。
func (c *LRUCache[K, V]) Keys() []K {
	c.lock.RLock()
	defer c.lock.RUnlock()

	now := time.Now()
	keys := make([]K, 0, c.ll.Len())
	for element := c.ll.Front(); element != nil; element = element.Next() {
		ent := element.Value.(*entry[K, V])
		if c.config.TTL > 0 && now.After(ent.expiration) {
			continue
		}
		keys = append(keys, ent.key)
	}
	return keys
}

// removeOldest 淘汰最久未使用的元素。调用方必须持有写锁。
func (c *LRUCache[K, V]) removeOldest() {
	element := c.ll.Back()
	if element != nil {
		c.removeElement(element)
	}
}

// removeElement 从链表和哈希表中删除元素。调用方必须持有写锁。
func (c *LRUCache[K, V]) removeElement(element *list.Element) {
	c.ll.Remove(element)
	delete(c.cache, element.Value.(*entry[K, V]).key)
}
