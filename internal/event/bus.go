package event

import (
	"log/slog"
	"sync"
)

type HandlerFunc func(raw any)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]HandlerFunc),
	}
}

func (b *Bus) Subscribe(eventName string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

func (b *Bus) HandlerCount(eventName string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventName])
}

// Publish delivers evt to every handler on its own goroutine.
func (b *Bus) Publish(eventName string, evt any) {
	for _, handler := range b.snapshot(eventName) {
		go run(eventName, handler, evt)
	}
}

// PublishSync delivers evt to every handler in subscription order before
// returning.
func (b *Bus) PublishSync(eventName string, evt any) {
	for _, handler := range b.snapshot(eventName) {
		run(eventName, handler, evt)
	}
}

func (b *Bus) snapshot(eventName string) []HandlerFunc {
	b.mu.RLock()
	defer b.mu.RUnlock()
	handlers := make([]HandlerFunc, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	return handlers
}

func run(eventName string, h HandlerFunc, evt any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "event", eventName, "panic", r)
		}
	}()
	h(evt)
}
