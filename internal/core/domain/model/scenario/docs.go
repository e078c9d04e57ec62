// Package scenario describes delivery challenges and reads them from the challenge
// text format.
package scenario
