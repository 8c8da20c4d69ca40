// Package game holds the reconstructed match model and the static game data
// (maps, modes, client versions) the resolver snaps observations onto.
//
// A Match is only ever handed out after Validate has accepted it, so
// consumers may rely on its structural invariants: rounds are non-empty,
// densely indexed and non-overlapping, the duration equals the last round's
// end, and every kill references a roster player inside its round's bounds.
package game
