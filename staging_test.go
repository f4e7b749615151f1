package errstatus

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestStageAndDrain(t *testing.T) {
	ctx := WithStaging(context.Background())
	st := ForCode(CodeAccountNotFound).WithMessage("gone")

	if !Stage(ctx, st) {
		t.Fatal("Stage reported no staging cell")
	}
	got := Drain(ctx)
	if !got.Equal(st) {
		t.Errorf("drained %v, want %v", got, st)
	}
	// Read-once: the slot is cleared by draining.
	if again := Drain(ctx); again != nil {
		t.Errorf("second drain returned %v, want nil", again)
	}
}

func TestStageOverwrites(t *testing.T) {
	ctx := WithStaging(context.Background())
	Stage(ctx, ForCode(CodeAccountNotFound))
	Stage(ctx, ForCode(CodeDeviceNotFound))
	if got := Drain(ctx); got.Code() != CodeDeviceNotFound {
		t.Errorf("drained %v, want the later staged value", got)
	}
}

func TestStageNilDefinesEmptySlot(t *testing.T) {
	ctx := WithStaging(context.Background())
	Stage(ctx, ForCode(CodeUnknown))
	Stage(ctx, nil)
	if got := Drain(ctx); got != nil {
		t.Errorf("drained %v after staging nil, want nil", got)
	}
}

func TestStagingWithoutCell(t *testing.T) {
	ctx := context.Background()
	if Stage(ctx, ForCode(CodeUnknown)) {
		t.Error("Stage succeeded without a staging cell")
	}
	if got := Drain(ctx); got != nil {
		t.Errorf("Drain returned %v without a staging cell", got)
	}
	if id := CallID(ctx); id != "" {
		t.Errorf("CallID returned %q without a staging cell", id)
	}
}

func TestCallIDsAreDistinct(t *testing.T) {
	a := CallID(WithStaging(context.Background()))
	b := CallID(WithStaging(context.Background()))
	if a == "" || b == "" {
		t.Fatalf("empty call tokens: %q, %q", a, b)
	}
	if a == b {
		t.Errorf("two calls share token %q", a)
	}
}

func TestStagingIsolationAcrossConcurrentCalls(t *testing.T) {
	const calls = 64
	var wg sync.WaitGroup
	wg.Add(calls)
	for i := 0; i < calls; i++ {
		go func(i int) {
			defer wg.Done()
			ctx := WithStaging(context.Background())
			want := ForCode(CodeDeviceNotFound).WithMessage(fmt.Sprintf("device-%d", i))
			Stage(ctx, want)
			if got := Drain(ctx); !got.Equal(want) {
				t.Errorf("call %d drained %v, want %v", i, got, want)
			}
		}(i)
	}
	wg.Wait()
}
