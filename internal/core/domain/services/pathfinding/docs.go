// Package pathfinding discovers drone routes on the delivery grid.
//
// A Path turns the Bearing between two cells into a step-by-step route. Each step
// is chosen among the neighbours that follow the bearing, filtered by a Policy:
//   - Capture decides which cells are preferred (packets and lanes, free cells, or anything passable)
//   - Alternative, Opposite, Wait and Dodge change how the walk reacts when the preferred list is short
//   - Pure turns every fallback off
//
// MapRoute tries policies in order until one reaches the target. MapBubbleRoute
// chains legs to the closest Pending packets into one itinerary bounded by the
// drone's capacity and autonomy.
//
// Searches run against the shared grid: captured packets become Willing while a
// route is being built and are released when the search fails.
package pathfinding
