package obligation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string, source Regulation, priority Priority) Record {
	return Record{ID: id, Name: "obligation " + id, Source: source, Priority: priority}
}

// TestAggregateTotalCount verifies totalCount equals the sum of the five
// bucket lengths after per-bucket dedup, with the 3/2/0/1/0 catalogue shape.
func TestAggregateTotalCount(t *testing.T) {
	agg := Aggregate(Set{
		AIAct: []Record{
			rec("ai-1", RegulationAIAct, PriorityCritical),
			rec("ai-2", RegulationAIAct, PriorityHigh),
			rec("ai-3", RegulationAIAct, PriorityMedium),
		},
		GDPR: []Record{
			rec("gdpr-1", RegulationGDPR, PriorityHigh),
			rec("gdpr-2", RegulationGDPR, PriorityLow),
		},
		GPAI: []Record{
			rec("gpai-1", RegulationGPAI, PriorityMedium),
		},
	})

	assert.Equal(t, 6, agg.TotalCount)
	assert.Len(t, agg.Flat, 6)
	assert.Len(t, agg.Set.AIAct, 3)
	assert.Len(t, agg.Set.GDPR, 2)
	assert.Empty(t, agg.Set.DORA)
	assert.Len(t, agg.Set.GPAI, 1)
	assert.Empty(t, agg.Set.Sectoral)
}

// TestAggregateDedupesWithinBucket verifies first-occurrence-wins dedup and
// that identical IDs in different buckets are never dropped.
func TestAggregateDedupesWithinBucket(t *testing.T) {
	first := rec("dup", RegulationAIAct, PriorityCritical)
	second := rec("dup", RegulationAIAct, PriorityLow)
	second.Name = "later duplicate"

	agg := Aggregate(Set{
		AIAct: []Record{first, second},
		GDPR:  []Record{rec("dup", RegulationGDPR, PriorityHigh)},
	})

	assert.Equal(t, 2, agg.TotalCount)
	require.Len(t, agg.Set.AIAct, 1)
	assert.Equal(t, "obligation dup", agg.Set.AIAct[0].Name, "first occurrence wins")
	assert.Len(t, agg.Set.GDPR, 1, "IDs are bucket-scoped; no cross-bucket drop")
}

// TestAggregateDoesNotMutateInput verifies the transformation is pure.
func TestAggregateDoesNotMutateInput(t *testing.T) {
	input := Set{AIAct: []Record{
		rec("a", RegulationAIAct, PriorityLow),
		rec("b", RegulationAIAct, PriorityCritical),
	}}

	_ = Aggregate(input)

	assert.Equal(t, "a", input.AIAct[0].ID, "input order untouched")
	assert.Equal(t, "b", input.AIAct[1].ID)
}

// TestSortStability verifies equal-priority records keep their relative
// input order.
func TestSortStability(t *testing.T) {
	records := []Record{
		rec("m-1", RegulationAIAct, PriorityMedium),
		rec("c-1", RegulationAIAct, PriorityCritical),
		rec("m-2", RegulationGDPR, PriorityMedium),
		rec("h-1", RegulationDORA, PriorityHigh),
		rec("m-3", RegulationSectoral, PriorityMedium),
	}

	sorted := SortByPriority(records)

	ids := make([]string, len(sorted))
	for i, r := range sorted {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"c-1", "h-1", "m-1", "m-2", "m-3"}, ids)
}

// TestSortRanksUnspecifiedLast verifies the fixed total order places records
// without a priority after low.
func TestSortRanksUnspecifiedLast(t *testing.T) {
	records := []Record{
		rec("none", RegulationAIAct, ""),
		rec("low", RegulationAIAct, PriorityLow),
	}

	sorted := SortByPriority(records)
	assert.Equal(t, "low", sorted[0].ID)
	assert.Equal(t, "none", sorted[1].ID)
}

func TestAppliesToRole(t *testing.T) {
	r := rec("x", RegulationAIAct, PriorityHigh)
	assert.True(t, r.AppliesToRole("provider"), "empty appliesTo means all roles")

	r.AppliesTo = []string{"provider", "importer"}
	assert.True(t, r.AppliesToRole("provider"))
	assert.False(t, r.AppliesToRole("deployer"))
}
