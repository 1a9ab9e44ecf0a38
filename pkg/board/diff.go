package board

// LayoutChanged reports whether any of width, height, row or column differ.
func LayoutChanged(a, b Layout) bool {
	return a.WidthPercentage != b.WidthPercentage ||
		a.Height != b.Height ||
		a.Row != b.Row ||
		a.Col != b.Col
}

// DiffGrids compares two row snapshots and returns what changed.
//
// A row whose id is absent from oldRows is reported together with all its
// cards. Otherwise each card is compared with its counterpart in oldCards
// (cards missing from the map count as added) and the row is reported when
// at least one of its cards was. Rows of oldRows that no longer exist in
// newRows are appended to UpdatedRows; callers tell deletions apart by
// checking membership in newRows. Content is not compared.
func DiffGrids(oldRows, newRows []Row, oldCards map[CardID]Card) ChangeSet {
	var changes ChangeSet

	oldIDs := make(map[RowID]struct{}, len(oldRows))
	for _, r := range oldRows {
		oldIDs[r.ID] = struct{}{}
	}
	newIDs := make(map[RowID]struct{}, len(newRows))

	for _, row := range newRows {
		newIDs[row.ID] = struct{}{}

		if _, ok := oldIDs[row.ID]; !ok {
			changes.UpdatedRows = append(changes.UpdatedRows, row)
			changes.UpdatedCards = append(changes.UpdatedCards, row.Cards...)
			continue
		}

		rowChanged := false
		for _, card := range row.Cards {
			old, ok := oldCards[card.ID]
			if !ok || LayoutChanged(old.Layout, card.Layout) {
				changes.UpdatedCards = append(changes.UpdatedCards, card)
				rowChanged = true
			}
		}
		if rowChanged {
			changes.UpdatedRows = append(changes.UpdatedRows, row)
		}
	}

	for _, row := range oldRows {
		if _, ok := newIDs[row.ID]; !ok {
			changes.UpdatedRows = append(changes.UpdatedRows, row)
		}
	}
	return changes
}

// DiffImproperLayout returns the corrected version of every input card whose
// layout was changed by [BuildRows]. It is used once at load time so a host
// can persist the normalisation.
func DiffImproperLayout(initial []Card, corrected map[CardID]Card) []Card {
	var out []Card
	for _, c := range initial {
		fixed, ok := corrected[c.ID]
		if ok && LayoutChanged(c.Layout, fixed.Layout) {
			out = append(out, fixed)
		}
	}
	return out
}
