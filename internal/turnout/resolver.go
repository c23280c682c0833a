package turnout

// Resolve selects the current record per station: for each station ID present
// in records, the record with the latest effective timestamp. Ties on the
// timestamp (including records with no timestamp at all) are broken by the
// higher record ID, so resolution is deterministic regardless of input order.
//
// The result has at most one entry per station ID and never fails; stations
// absent from the input are simply absent from the output.
func Resolve(records []*Record) map[int64]*Record {
	current := make(map[int64]*Record, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		best, ok := current[rec.StationID]
		if !ok || supersedes(rec, best) {
			current[rec.StationID] = rec
		}
	}
	return current
}

// supersedes reports whether a replaces b as the current record.
func supersedes(a, b *Record) bool {
	at, bt := a.EffectiveTime(), b.EffectiveTime()
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return a.ID > b.ID
}

// Total sums resolved voter counts into a 64-bit accumulator. Counts are
// non-negative ints, so the sum cannot overflow at any realistic scale.
func Total(current map[int64]*Record) int64 {
	var total int64
	for _, rec := range current {
		total += int64(rec.VoterCount)
	}
	return total
}
