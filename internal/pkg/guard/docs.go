// Package guard holds small helpers that protect domain value objects from being
// used without going through their constructors.
package guard
