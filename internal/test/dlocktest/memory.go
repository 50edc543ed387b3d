// Package dlocktest 单进程内的分布式锁，只用于测试
package dlocktest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meoying/dlock-go"
)

var ErrNotHeld = errors.New("锁没有被持有")

const spinInterval = time.Millisecond

// Client 同一个 key 同一时刻只有一个持有者，不处理过期
type Client struct {
	// 只实现用到的方法
	dlock.Client
	mu   sync.Mutex
	held map[string]bool

	// 成功加锁的次数
	Acquired atomic.Int64
	// 不为 nil 的时候 NewLock 直接返回这个错误
	NewLockErr error
}

func NewClient() *Client {
	return &Client{held: make(map[string]bool)}
}

func (c *Client) NewLock(_ context.Context, key string, _ time.Duration) (dlock.Lock, error) {
	if c.NewLockErr != nil {
		return nil, c.NewLockErr
	}
	return &Lock{client: c, key: key}, nil
}

// Held 某个 key 当前是否被持有
func (c *Client) Held(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held[key]
}

func (c *Client) tryAcquire(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held[key] {
		return false
	}
	c.held[key] = true
	c.Acquired.Add(1)
	return true
}

func (c *Client) release(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.held[key] {
		return false
	}
	delete(c.held, key)
	return true
}

type Lock struct {
	client *Client
	key    string
	locked bool
}

// Lock 一直重试，直到拿到锁或者 ctx 过期
func (l *Lock) Lock(ctx context.Context) error {
	for {
		if l.client.tryAcquire(l.key) {
			l.locked = true
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(spinInterval):
		}
	}
}

func (l *Lock) Unlock(_ context.Context) error {
	if !l.locked || !l.client.release(l.key) {
		return ErrNotHeld
	}
	l.locked = false
	return nil
}

func (l *Lock) Refresh(_ context.Context) error {
	if !l.locked {
		return ErrNotHeld
	}
	return nil
}
