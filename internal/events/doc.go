// Package events provides the typed publish/subscribe bus that decouples
// the shell state machine from its consumers.
//
// Events are a closed set of tagged variants, one constructor per kind.
// Dispatch is synchronous on the publishing goroutine; handlers must be
// fast and must not re-enter the state machine's writer lock.
//
// Guarantees:
//   - Subscribe/Unsubscribe/Publish are safe for concurrent use
//   - Publish iterates a snapshot of the subscriber list, so subscription
//     changes during dispatch cannot corrupt iteration or deadlock
//   - A panicking handler is isolated: it is logged and the remaining
//     handlers still run
//
// Example Usage:
//
//	bus := events.NewBus(logger)
//	sub := bus.Subscribe(events.WorkspaceSwitched, func(e events.Event) {
//	    p := e.Payload.(events.WorkspaceSwitchedPayload)
//	    log.Println("now on", p.WorkspaceID)
//	})
//	defer bus.Unsubscribe(sub)
package events
