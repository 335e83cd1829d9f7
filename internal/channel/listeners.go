package channel

import (
	"sync"

	"github.com/gabrielstonedelza/merchantplus-console/internal/protocol"
)

// EventCallback receives one dispatched message.
type EventCallback func(msg protocol.Message)

type listener struct {
	callback EventCallback
}

// listenerRegistry is a multimap of message type to callbacks.  Callbacks
// registered for the same type are kept in registration order.
type listenerRegistry struct {
	listeners map[string][]*listener
	sync.RWMutex
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{
		listeners: make(map[string][]*listener),
	}
}

func (lr *listenerRegistry) register(eventType string, callback EventCallback) *listener {
	lr.Lock()
	defer lr.Unlock()

	l := &listener{callback: callback}
	lr.listeners[eventType] = append(lr.listeners[eventType], l)
	return l
}

func (lr *listenerRegistry) unregister(eventType string, target *listener) {
	lr.Lock()
	defer lr.Unlock()

	registered, exists := lr.listeners[eventType]
	if exists == false {
		return
	}

	for i, l := range registered {
		if l == target {
			lr.listeners[eventType] = append(registered[:i:i], registered[i+1:]...)
			break
		}
	}

	if len(lr.listeners[eventType]) == 0 {
		delete(lr.listeners, eventType)
	}
}

// snapshot returns a stable copy of the callbacks registered for an
// event type.  Dispatch iterates over the copy so a callback that
// unsubscribes itself (or anything else) mid-dispatch cannot skip or
// crash the remaining subscribers.
func (lr *listenerRegistry) snapshot(eventType string) []EventCallback {
	lr.RLock()
	defer lr.RUnlock()

	registered, exists := lr.listeners[eventType]
	if exists == false {
		return nil
	}

	callbacks := make([]EventCallback, len(registered))
	for i, l := range registered {
		callbacks[i] = l.callback
	}

	return callbacks
}

func (lr *listenerRegistry) clear() {
	lr.Lock()
	defer lr.Unlock()

	lr.listeners = make(map[string][]*listener)
}
