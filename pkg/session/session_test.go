package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/arcslider/pkg/geometry"
	"github.com/matzehuels/arcslider/pkg/slider"
)

func widget() slider.Widget {
	return slider.Widget{Sliders: []slider.Config{slider.DefaultConfig()}}
}

func TestNew(t *testing.T) {
	s := New(widget(), 0)
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", s.ID, err)
	}
	if s.Widget.Sliders[0].ID != "slider-0" {
		t.Errorf("widget not normalized: %+v", s.Widget)
	}
	if got := time.Until(s.ExpiresAt()); got < DefaultTTL-time.Minute {
		t.Errorf("expires in %v, want about %v", got, DefaultTTL)
	}
	if New(widget(), 0).ID == s.ID {
		t.Error("IDs should be unique")
	}
}

func TestDoExtendsLifetime(t *testing.T) {
	s := New(widget(), 20*time.Millisecond)
	before := s.ExpiresAt()
	time.Sleep(5 * time.Millisecond)

	var frame slider.Frame
	var ok bool
	s.Do(func(c *slider.Controller) {
		frame, ok = c.PointerDown(geometry.Point{X: 200, Y: 150})
	})
	if !ok || frame.SliderID != "slider-0" {
		t.Fatalf("PointerDown = %+v, %v", frame, ok)
	}
	if !s.ExpiresAt().After(before) {
		t.Error("Do should extend the expiry")
	}
}

func TestDoSerializes(t *testing.T) {
	s := New(widget(), time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Do(func(c *slider.Controller) {
				c.PointerDown(geometry.Point{X: 150 + float64(i), Y: 100})
				c.PointerUp()
			})
		}(i)
	}
	wg.Wait()
	s.Do(func(c *slider.Controller) {
		if c.Dragging() {
			t.Error("controller left dragging")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2)

	a := New(widget(), time.Minute)
	b := New(widget(), time.Minute)
	if err := store.Set(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, b); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, New(widget(), time.Minute)); !errors.Is(err, ErrFull) {
		t.Errorf("third Set err = %v, want ErrFull", err)
	}
	if err := store.Set(ctx, a); err != nil {
		t.Errorf("replacing existing id should succeed: %v", err)
	}

	got, err := store.Get(ctx, a.ID)
	if err != nil || got != a {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v", err)
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, a.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d", store.Len())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	short := New(widget(), time.Millisecond)
	long := New(widget(), time.Minute)
	short2 := New(widget(), time.Millisecond)
	for _, s := range []*Session{short, long, short2} {
		if err := store.Set(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(ctx, short.ID); !errors.Is(err, ErrExpired) {
		t.Errorf("Get(expired) err = %v", err)
	}
	removed, err := store.Cleanup(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0] != short2.ID {
		t.Errorf("Cleanup removed %v, want [%s]", removed, short2.ID)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}
