package menu

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const listKey = "menu:items"

// Cache is a Redis read-through decorator around the menu store. Cache
// misses and Redis failures fall back to the store; writes invalidate.
type Cache struct {
	store  *Store
	client *redis.Client
	ttl    time.Duration
}

func NewCache(store *Store, client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{store: store, client: client, ttl: ttl}
}

func itemKey(id string) string {
	return "menu:item:" + id
}

func (c *Cache) Get(ctx context.Context, id string) (*Item, bool, error) {
	if data, err := c.client.Get(ctx, itemKey(id)).Bytes(); err == nil {
		var item Item
		if err := json.Unmarshal(data, &item); err == nil {
			return &item, true, nil
		}
	}

	item, ok, err := c.store.Get(ctx, id)
	if err != nil || !ok {
		return nil, ok, err
	}

	if data, err := json.Marshal(item); err == nil {
		if err := c.client.Set(ctx, itemKey(id), data, c.ttl).Err(); err != nil {
			log.Printf("[Menu] Failed to cache item %s: %v", id, err)
		}
	}
	return item, true, nil
}

func (c *Cache) List(ctx context.Context) ([]*Item, error) {
	if data, err := c.client.Get(ctx, listKey).Bytes(); err == nil {
		var items []*Item
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
	}

	items, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := c.client.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
			log.Printf("[Menu] Failed to cache menu list: %v", err)
		}
	}
	return items, nil
}

func (c *Cache) Insert(ctx context.Context, item *Item) (string, error) {
	id, err := c.store.Insert(ctx, item)
	if err != nil {
		return "", err
	}
	c.invalidate(ctx, id)
	return id, nil
}

func (c *Cache) Update(ctx context.Context, item *Item) error {
	if err := c.store.Update(ctx, item); err != nil {
		return err
	}
	c.invalidate(ctx, item.ID)
	return nil
}

func (c *Cache) Delete(ctx context.Context, id string) (bool, error) {
	existed, err := c.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, id)
	return existed, nil
}

func (c *Cache) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, itemKey(id), listKey).Err(); err != nil {
		log.Printf("[Menu] Failed to invalidate cache for %s: %v", id, err)
	}
}
