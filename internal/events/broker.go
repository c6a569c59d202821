package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

const DefaultBuffer = 64

// Event уведомление об изменении записи.
type Event struct {
	Kind   string    `json:"kind"`
	Entity string    `json:"entity"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// Publisher публикует события. Время события проставляет Publish, сервисы
// поле At не заполняют.
type Publisher interface {
	Publish(e Event)
}

// Broker раздает события подписчикам. Каждому подписчику выделен буфер;
// если подписчик не успевает читать, событие для него теряется.
type Broker struct {
	mu      sync.RWMutex
	subs    map[uint64]chan Event
	nextID  uint64
	buffer  int
	closed  bool
	dropped atomic.Uint64
	log     zerolog.Logger
}

func NewBroker(buffer int, log zerolog.Logger) *Broker {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker{subs: make(map[uint64]chan Event), buffer: buffer, log: log}
}

func (b *Broker) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for id, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped.Add(1)
			b.log.Debug().Uint64("subscriber", id).Str("entity", e.Entity).Msg("event dropped for slow subscriber")
		}
	}
}

// Subscribe возвращает канал событий и функцию отписки. Канал закрывается
// при отписке или закрытии брокера.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped число событий, потерянных из-за переполненных буферов.
func (b *Broker) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Nop публикатор, который ничего не делает.
type Nop struct{}

func (Nop) Publish(Event) {}
