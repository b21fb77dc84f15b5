package obligation

import "sort"

// Aggregated is the merged view over the five regulation buckets.
//
// Invariant: TotalCount equals the sum of the five bucket lengths after
// per-bucket dedup, and Flat holds exactly those records in bucket order,
// stably sorted by priority.
type Aggregated struct {
	Set        Set
	Flat       []Record
	TotalCount int
}

// Aggregate deduplicates each bucket by record ID (first occurrence wins,
// preserving input order), concatenates the buckets in their fixed reporting
// order, and stably sorts the flat collection by priority rank.
//
// Pure transformation: the input set is not modified and records are not
// mutated.
func Aggregate(s Set) Aggregated {
	deduped := Set{}
	total := 0
	for _, reg := range Regulations() {
		bucket := dedupe(s.Bucket(reg))
		deduped = deduped.WithBucket(reg, bucket)
		total += len(bucket)
	}

	flat := make([]Record, 0, total)
	for _, reg := range Regulations() {
		flat = append(flat, deduped.Bucket(reg)...)
	}

	return Aggregated{
		Set:        deduped,
		Flat:       SortByPriority(flat),
		TotalCount: total,
	}
}

// SortByPriority returns a new slice ordered by the fixed priority rank.
// The sort is stable: equal-priority records keep their relative input order.
func SortByPriority(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})
	return sorted
}

// dedupe removes duplicate IDs within one bucket, keeping the first
// occurrence. IDs are bucket-scoped so this never drops records across
// buckets.
func dedupe(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
