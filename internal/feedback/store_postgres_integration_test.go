//go:build integration

package feedback_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"ziwei/internal/feedback"
	"ziwei/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *feedback.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = feedback.NewPostgresStore(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "feedback_entries"))
}

func newEntry(category string, accuracy feedback.Accuracy, createdAt time.Time) feedback.Entry {
	return feedback.Entry{
		ID:         uuid.NewString(),
		ChartID:    "chart-1",
		Category:   category,
		Prediction: "適合公職",
		Rating:     4,
		Accuracy:   accuracy,
		Actual:     "考上了",
		ClientIP:   "203.0.113.7",
		CreatedAt:  createdAt,
	}
}

func (s *PostgresStoreSuite) TestInsertAndList() {
	ctx := context.Background()
	base := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Insert(ctx, newEntry("事業", feedback.AccuracyAccurate, base)))
	s.Require().NoError(s.store.Insert(ctx, newEntry("財運", feedback.AccuracyPartial, base.Add(time.Minute))))

	entries, err := s.store.List(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("財運", entries[0].Category, "newest first")
	s.Equal("事業", entries[1].Category)
	s.Equal(feedback.AccuracyAccurate, entries[1].Accuracy)
	s.Equal("203.0.113.7", entries[1].ClientIP)
}

func (s *PostgresStoreSuite) TestListHonorsLimit() {
	ctx := context.Background()
	base := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.store.Insert(ctx, newEntry("事業", feedback.AccuracyAccurate, base.Add(time.Duration(i)*time.Second))))
	}

	entries, err := s.store.List(ctx, 3)
	s.Require().NoError(err)
	s.Len(entries, 3)
}

func (s *PostgresStoreSuite) TestStats() {
	ctx := context.Background()
	base := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Insert(ctx, newEntry("事業", feedback.AccuracyAccurate, base)))
	s.Require().NoError(s.store.Insert(ctx, newEntry("事業", feedback.AccuracyAccurate, base)))
	s.Require().NoError(s.store.Insert(ctx, newEntry("財運", feedback.AccuracyInaccurate, base)))

	stats, err := s.store.Stats(ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(2, stats.Accurate)
	s.Equal(0, stats.Partial)
	s.Equal(1, stats.Inaccurate)
	s.InDelta(4.0, stats.MeanRating, 0.001)
}

func (s *PostgresStoreSuite) TestStatsOnEmptyTable() {
	stats, err := s.store.Stats(context.Background())
	s.Require().NoError(err)
	s.Equal(0, stats.Total)
	s.InDelta(0.0, stats.MeanRating, 0.001)
}
