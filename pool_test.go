package docbatch

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestConverterPoolLazyCreation(t *testing.T) {
	t.Parallel()

	var created atomic.Int32
	pool := NewConverterPool(3)
	pool.newFn = func() (*Converter, error) {
		created.Add(1)
		return newStubConverter(nil), nil
	}

	if got := created.Load(); got != 0 {
		t.Fatalf("converters created at construction = %d, want 0", got)
	}

	c, err := pool.Acquire()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := created.Load(); got != 1 {
		t.Fatalf("converters created after one acquire = %d, want 1", got)
	}

	// A released converter is reused instead of creating another.
	pool.Release(c)
	if _, err := pool.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := created.Load(); got != 1 {
		t.Errorf("converters created after reuse = %d, want 1", got)
	}
}

func TestConverterPoolCapacity(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	pool.newFn = func() (*Converter, error) { return newStubConverter(nil), nil }

	a, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	b, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}

	// Third acquire must block until a converter is released.
	acquired := make(chan *Converter)
	go func() {
		c, err := pool.Acquire()
		if err != nil {
			t.Error(err)
		}
		acquired <- c
	}()

	select {
	case <-acquired:
		t.Fatal("acquire beyond capacity did not block")
	default:
	}

	pool.Release(a)
	if got := <-acquired; got != a {
		t.Error("blocked acquire did not receive the released converter")
	}
	pool.Release(b)
}

func TestConverterPoolCreationFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("office suite not found")

	var attempts atomic.Int32
	pool := NewConverterPool(1)
	pool.newFn = func() (*Converter, error) {
		attempts.Add(1)
		return nil, wantErr
	}

	if _, err := pool.Acquire(); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}

	// Failed creation releases the slot so the next acquire retries.
	if _, err := pool.Acquire(); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
	if got := attempts.Load(); got != 2 {
		t.Errorf("creation attempts = %d, want 2", got)
	}
}

func TestConverterPoolConcurrentAcquire(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(4)
	pool.newFn = func() (*Converter, error) { return newStubConverter(nil), nil }

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := pool.Acquire()
			if err != nil {
				t.Error(err)
				return
			}
			pool.Release(c)
		}()
	}
	wg.Wait()

	if got := pool.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
}

func TestConverterPoolCloseIdempotent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	pool.newFn = func() (*Converter, error) { return newStubConverter(nil), nil }

	c, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	pool.Release(c)

	if err := pool.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	// Release after close is a no-op rather than a panic on a closed channel.
	pool.Release(c)
}

func TestConverterPoolReleaseCloseRace(t *testing.T) {
	t.Parallel()

	// Release and Close from different goroutines must never panic on the
	// pool's channel, whichever wins the race.
	for i := 0; i < 200; i++ {
		pool := NewConverterPool(1)
		pool.newFn = func() (*Converter, error) { return newStubConverter(nil), nil }

		c, err := pool.Acquire()
		if err != nil {
			t.Fatal(err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			pool.Release(c)
		}()
		go func() {
			defer wg.Done()
			if err := pool.Close(); err != nil {
				t.Error(err)
			}
		}()
		wg.Wait()
	}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	cpus := runtime.GOMAXPROCS(0)
	auto := cpus / cpuDivisor
	if auto < MinPoolSize {
		auto = MinPoolSize
	}
	if auto > MaxPoolSize {
		auto = MaxPoolSize
	}

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit wins", workers: 3, want: 3},
		{name: "explicit above cap honored", workers: 12, want: 12},
		{name: "zero auto-sizes", workers: 0, want: auto},
		{name: "negative auto-sizes", workers: -1, want: auto},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}
