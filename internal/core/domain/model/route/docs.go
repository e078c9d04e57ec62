// Package route models drone itineraries: ordered steps over the grid together with
// the packets captured on the way. Routes can be extended one step at a time, undone
// and chained into multi-stop itineraries.
package route
