// Package event provides OneShot, the "mounting complete" signal.
//
// Subscribers registered before Fire are queued and invoked in order during
// Fire. Subscribers registered afterwards run immediately inside Subscribe.
package event
