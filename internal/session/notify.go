// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import "github.com/pdiddy/doc-converter/pkg/types"

// Subscribe returns a channel that receives an event for every state
// change, and a func that unsubscribes and closes the channel. Delivery
// never blocks the session: a subscriber whose buffer is full misses events.
func (o *Orchestrator) Subscribe() (<-chan types.ProgressEvent, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextSub
	o.nextSub++
	ch := make(chan types.ProgressEvent, subscriberBuffer)
	o.subs[id] = ch

	return ch, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if c, ok := o.subs[id]; ok {
			delete(o.subs, id)
			close(c)
		}
	}
}

func (o *Orchestrator) publishLocked() {
	ev := types.ProgressEvent{
		RunID:    o.runID,
		Mode:     o.mode,
		Status:   o.status,
		Progress: o.progress,
	}
	for id, ch := range o.subs {
		select {
		case ch <- ev:
		default:
			o.logger.Debug("subscriber lagging, event dropped", "subscriber", id, "progress", ev.Progress)
		}
	}
}
