package availability

// ExpandWindow cuts [start, end) into consecutive slot labels. A slot is only
// emitted when it ends at or before end, so a trailing remainder shorter than
// SlotMinutes is dropped. Malformed times yield no slots.
func ExpandWindow(start, end string) []string {
	from, err := ParseClock(start)
	if err != nil {
		return nil
	}
	to, err := ParseClock(end)
	if err != nil {
		return nil
	}

	var slots []string
	for cur := from; cur.Before(to); {
		next := cur.Add(SlotMinutes)
		if !next.After(to) {
			slots = append(slots, SlotLabel(cur, next))
		}
		cur = next
	}
	return slots
}
