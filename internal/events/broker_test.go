package events

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBroker(t *testing.T) {
	t.Run("доставка всем подписчикам", func(t *testing.T) {
		b := NewBroker(4, zerolog.Nop())
		a, unsubA := b.Subscribe()
		c, unsubC := b.Subscribe()
		defer unsubA()
		defer unsubC()

		b.Publish(Event{Kind: KindCreated, Entity: "ticket", ID: "t1"})

		got := <-a
		assert.Equal(t, "t1", got.ID)
		assert.False(t, got.At.IsZero())
		assert.Equal(t, "t1", (<-c).ID)
	})

	t.Run("медленный подписчик теряет события", func(t *testing.T) {
		b := NewBroker(2, zerolog.Nop())
		ch, unsub := b.Subscribe()
		defer unsub()

		for i := 0; i < 5; i++ {
			b.Publish(Event{Kind: KindUpdated, Entity: "task"})
		}

		assert.Len(t, ch, 2)
		assert.Equal(t, uint64(3), b.Dropped())
	})

	t.Run("отписка закрывает канал", func(t *testing.T) {
		b := NewBroker(1, zerolog.Nop())
		ch, unsub := b.Subscribe()
		require.Equal(t, 1, b.Subscribers())

		unsub()
		unsub()

		_, ok := <-ch
		assert.False(t, ok)
		assert.Zero(t, b.Subscribers())
	})

	t.Run("закрытие брокера", func(t *testing.T) {
		b := NewBroker(1, zerolog.Nop())
		ch, unsub := b.Subscribe()

		b.Close()
		b.Publish(Event{Entity: "ticket"})
		unsub()

		_, ok := <-ch
		assert.False(t, ok)

		late, _ := b.Subscribe()
		_, ok = <-late
		assert.False(t, ok)
	})

	t.Run("параллельная публикация", func(t *testing.T) {
		b := NewBroker(1000, zerolog.Nop())
		ch, unsub := b.Subscribe()
		defer unsub()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					b.Publish(Event{Entity: "ticket"})
				}
			}()
		}
		wg.Wait()

		assert.Len(t, ch, 500)
	})
}
