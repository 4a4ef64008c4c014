package entity

import "sort"

// ResolveMode selects the overlap resolution strategy.
type ResolveMode int

const (
	// ModeLongest keeps the longest span at each position, breaking
	// ties by earlier start, then type priority. Default.
	ModeLongest ResolveMode = iota
	// ModePriority sweeps left to right and lets a higher-priority
	// type displace an overlapping lower-priority one.
	ModePriority
)

// Resolve reduces raw matches to a non-overlapping set ordered by
// start offset.
func Resolve(matches []Match, mode ResolveMode) []Match {
	if len(matches) == 0 {
		return nil
	}
	if mode == ModePriority {
		return resolvePriority(matches)
	}
	return resolveLongest(matches)
}

func resolveLongest(matches []Match) []Match {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Len() != sorted[j].Len() {
			return sorted[i].Len() > sorted[j].Len()
		}
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Pattern.Type.Priority() < sorted[j].Pattern.Type.Priority()
	})

	var kept []Match
	for _, m := range sorted {
		overlaps := false
		for _, k := range kept {
			if m.Start < k.End && k.Start < m.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, m)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

func resolvePriority(matches []Match) []Match {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	var kept []Match
	for _, m := range sorted {
		if len(kept) == 0 {
			kept = append(kept, m)
			continue
		}
		last := &kept[len(kept)-1]
		if m.Start >= last.End {
			kept = append(kept, m)
			continue
		}
		if m.Pattern.Type.Priority() < last.Pattern.Type.Priority() {
			*last = m
		}
	}
	return kept
}
