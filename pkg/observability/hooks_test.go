package observability

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEngineHooks{}
	e.OnPassStart(ctx, "snap-1", 12)
	e.OnPassComplete(ctx, "snap-1", time.Second, nil)
	e.OnCascadeComplete(ctx, "snap-1", 3, nil)
	e.OnLayoutComplete(ctx, "snap-1", 4, nil)

	s := NoopStoreHooks{}
	s.OnSnapshotFetch(ctx, 12, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "view")
	c.OnCacheMiss(ctx, "view")
	c.OnCacheSet(ctx, "view", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	custom := &countingEngineHooks{}
	SetEngineHooks(custom)
	Engine().OnPassStart(context.Background(), "snap-1", 1)
	if custom.passes.Load() != 1 {
		t.Error("custom hooks not invoked after registration")
	}

	// Nil registration keeps the current hooks.
	SetEngineHooks(nil)
	if Engine() != custom {
		t.Error("SetEngineHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset should restore noop hooks")
	}
}

type countingEngineHooks struct {
	passes atomic.Int64
}

func (c *countingEngineHooks) OnPassStart(context.Context, string, int) { c.passes.Add(1) }
func (c *countingEngineHooks) OnPassComplete(context.Context, string, time.Duration, error) {
}
func (c *countingEngineHooks) OnCascadeComplete(context.Context, string, int, error) {}
func (c *countingEngineHooks) OnLayoutComplete(context.Context, string, int, error)  {}
