// Package resource implements the engine-side handle table.
//
// Values that cross the bridge are never exposed directly. The table stores
// them and hands out opaque Handle tokens instead. A token stays resolvable
// until it is removed; after that every lookup fails, including lookups
// through a token whose slot has since been reused, because each slot
// carries a generation that is part of the token.
//
// Each entry records the handle of the object it was obtained from.
// RemoveDescendants uses that to invalidate a whole ownership tree at once,
// while a plain Remove of a parent leaves its children resolvable.
//
//	table := resource.NewTable()
//	pkg := table.Insert(typePackage, 0, p)
//	sheet := table.Insert(typeWorksheet, pkg, ws)
//	table.Remove(pkg)            // sheet still resolves
//	table.RemoveDescendants(pkg) // drops sheet
//
// Observers receive created/dropped events and are invoked without any
// table lock held.
package resource
