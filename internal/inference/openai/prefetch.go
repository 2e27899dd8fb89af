package openai

import (
	"context"
	"log/slog"

	"bandup/internal/inference"
)

// prefetchSlot holds at most one speculative generation per client. The
// result is consumed once by a matching Generate call, or discarded when a
// request for a different topic/band arrives.
type prefetchSlot struct {
	key      string
	cancel   context.CancelFunc
	done     chan struct{}
	sentence inference.Sentence
	err      error
}

func prefetchKey(topic, targetBand string) string {
	return topic + "|" + targetBand
}

// Prefetch implements the inference.Client interface
func (client *Client) Prefetch(ctx context.Context, topic, targetBand string) {
	key := prefetchKey(topic, targetBand)

	client.mu.Lock()
	if client.slot != nil {
		if client.slot.key == key {
			client.mu.Unlock()
			return
		}
		// A prefetch for a different key supersedes the outstanding one.
		client.slot.cancel()
		client.slot = nil
	}
	// The speculative request outlives the caller that started it; only a
	// superseding prefetch or a consuming Generate cancels it.
	prefetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	slot := &prefetchSlot{key: key, cancel: cancel, done: make(chan struct{})}
	client.slot = slot
	historyClause := client.historyClauseLocked()
	client.mu.Unlock()

	go func() {
		defer close(slot.done)
		slot.sentence, slot.err = client.generateSentence(prefetchCtx, topic, targetBand, historyClause)
		if slot.err != nil {
			slog.Default().Debug("prefetch failed",
				"topic", topic,
				"targetBand", targetBand,
				"error", slot.err,
			)
		}
	}()
}

// takeSlot removes the prefetch slot and returns it when it matches the
// key. A slot for a different key is cancelled and discarded: a new
// generation request invalidates it either way.
func (client *Client) takeSlot(topic, targetBand string) *prefetchSlot {
	key := prefetchKey(topic, targetBand)

	client.mu.Lock()
	defer client.mu.Unlock()

	slot := client.slot
	if slot == nil {
		return nil
	}
	client.slot = nil
	if slot.key != key {
		slot.cancel()
		return nil
	}
	return slot
}
