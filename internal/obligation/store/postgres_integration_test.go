//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"regent/internal/obligation"
	"regent/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *Postgres
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	s := &PostgresStoreSuite{store: NewPostgres(pg.Pool), ctx: context.Background()}
	suite.Run(t, s)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.store.EnsureSchema(s.ctx))

	deadline := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	err := s.store.Replace(s.ctx, map[obligation.Regulation][]Entry{
		obligation.RegulationAIAct: {
			{Record: obligation.Record{
				ID: "ai-hr-1", Name: "Risk management system",
				Summary:  "Establish and maintain a risk management system.",
				Source:   obligation.RegulationAIAct,
				Articles: []string{"Art. 9"},
				Priority: obligation.PriorityCritical,
				Deadline: &deadline,
			}, Tiers: []string{"high_risk"}},
			{Record: obligation.Record{
				ID: "ai-any-1", Name: "AI literacy",
				Source:   obligation.RegulationAIAct,
				Priority: obligation.PriorityLow,
			}},
		},
		obligation.RegulationDORA: {
			{Record: obligation.Record{
				ID: "dora-1", Name: "ICT risk management",
				Source:   obligation.RegulationDORA,
				Priority: obligation.PriorityHigh,
			}, Requires: []string{"financial_entity"}},
		},
	}, []obligation.Milestone{
		{Date: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), Event: "prohibitions apply", Impact: "all operators"},
	})
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestFetchFiltersAndKeepsOrder() {
	records, err := s.store.Fetch(s.ctx, obligation.RegulationAIAct, Query{RiskTier: "high_risk"})
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("ai-hr-1", records[0].ID)
	s.Equal("ai-any-1", records[1].ID)

	s.Require().NotNil(records[0].Deadline)
	s.Equal(2026, records[0].Deadline.Year())
	s.Equal([]string{"Art. 9"}, records[0].Articles)
	s.Equal(obligation.RegulationAIAct, records[0].Source)
}

func (s *PostgresStoreSuite) TestFetchHonoursRequiredFlags() {
	records, err := s.store.Fetch(s.ctx, obligation.RegulationDORA, Query{RiskTier: "high_risk"})
	s.Require().NoError(err)
	s.Empty(records)

	records, err = s.store.Fetch(s.ctx, obligation.RegulationDORA, Query{
		RiskTier: "high_risk",
		Flags:    map[string]bool{"financial_entity": true},
	})
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("dora-1", records[0].ID)
}

func (s *PostgresStoreSuite) TestMilestonesRoundTrip() {
	milestones, err := s.store.Milestones(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(milestones, 1)
	s.Equal("prohibitions apply", milestones[0].Event)
	s.Equal("all operators", milestones[0].Impact)
	s.Equal(2025, milestones[0].Date.Year())
}

func (s *PostgresStoreSuite) TestReplaceOverwrites() {
	err := s.store.Replace(s.ctx, map[obligation.Regulation][]Entry{
		obligation.RegulationGDPR: {
			{Record: obligation.Record{ID: "gdpr-1", Name: "Lawful basis", Source: obligation.RegulationGDPR}},
		},
	}, nil)
	s.Require().NoError(err)

	records, err := s.store.Fetch(s.ctx, obligation.RegulationAIAct, Query{RiskTier: "high_risk"})
	s.Require().NoError(err)
	s.Empty(records)

	records, err = s.store.Fetch(s.ctx, obligation.RegulationGDPR, Query{RiskTier: "minimal_risk"})
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("gdpr-1", records[0].ID)
}
