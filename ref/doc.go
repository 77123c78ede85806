// Package ref implements the runtime's ownership primitive: an intrusive,
// atomically reference-counted handle over a heap object that embeds its own
// count.
//
// Ref is intrusive so that taking or dropping ownership touches a single
// allocation. The counted object implements Object by exposing its embedded
// atomic count and a Destroy method that releases whatever the object owns.
//
// Handles are explicit about ownership transitions. Clone copies ownership
// (increments the count), Take moves it (count unchanged, source emptied),
// and Release drops it, destroying the object exactly when the count reaches
// zero. Plain struct assignment of a Ref is a move: after assigning, exactly
// one of the two copies may be released. Dereferencing an empty handle is
// undefined; callers track emptiness explicitly.
package ref
