// Package drone implements the delivery agent state machine and its tick-by-tick
// playback of a route.
package drone
