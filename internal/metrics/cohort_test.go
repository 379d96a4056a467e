package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pouch-dashboard/internal/models"
)

func TestCohortRetention_EarlyCancellations(t *testing.T) {
	var subs []models.SubscriptionRecord
	for i := 0; i < 8; i++ {
		subs = append(subs, models.SubscriptionRecord{
			Status:          models.StatusActive,
			OrderPlacedDate: day(2024, time.January, 5),
		})
	}
	for i := 0; i < 2; i++ {
		subs = append(subs, models.SubscriptionRecord{
			Status:          models.StatusCancelled,
			OrderPlacedDate: day(2024, time.January, 5),
			CancelledOn:     day(2024, time.January, 20),
		})
	}

	cohorts := CohortRetention(subs)

	require.Len(t, cohorts, 1)
	c := cohorts[0]
	assert.Equal(t, "2024-01", c.Cohort)
	assert.Equal(t, 10, c.Size)
	assert.Equal(t, 8, c.Active30)
	assert.Equal(t, 80.0, c.Retention30)
	assert.Equal(t, 80.0, c.Retention90)
}

func TestCohortRetention_Checkpoints(t *testing.T) {
	subs := []models.SubscriptionRecord{
		// checkpoints for 2024-01: Jan 31, Mar 1, Mar 31
		{Status: models.StatusCancelled, OrderPlacedDate: day(2024, time.January, 2), CancelledOn: day(2024, time.March, 15)},
		{Status: models.StatusPaused, OrderPlacedDate: day(2024, time.January, 3), PausedOn: day(2024, time.February, 10)},
		{Status: models.StatusPaused, OrderPlacedDate: day(2024, time.January, 4)},
		// cancelled exactly on the checkpoint is no longer active
		{Status: models.StatusCancelled, OrderPlacedDate: day(2024, time.January, 9), CancelledOn: day(2024, time.January, 31)},
	}

	cohorts := CohortRetention(subs)

	require.Len(t, cohorts, 1)
	c := cohorts[0]
	assert.Equal(t, 4, c.Size)
	assert.Equal(t, 2, c.Active30)
	assert.Equal(t, 1, c.Active60)
	assert.Equal(t, 0, c.Active90)
	assert.Equal(t, 50.0, c.Retention30)
	assert.Equal(t, 25.0, c.Retention60)
	assert.Equal(t, 0.0, c.Retention90)
}

func TestCohortRetention_SortedAndSkipsUndated(t *testing.T) {
	subs := []models.SubscriptionRecord{
		{Status: models.StatusActive, OrderPlacedDate: day(2024, time.March, 1)},
		{Status: models.StatusActive, OrderPlacedDate: day(2023, time.December, 30)},
		{Status: models.StatusActive},
		{Status: models.StatusActive, OrderPlacedDate: day(2024, time.January, 15)},
		{Status: models.StatusActive, OrderPlacedDate: day(2024, time.January, 16)},
		{Status: models.StatusActive, OrderPlacedDate: day(2024, time.January, 17)},
	}

	cohorts := CohortRetention(subs)

	require.Len(t, cohorts, 3)
	assert.Equal(t, "2023-12", cohorts[0].Cohort)
	assert.Equal(t, "2024-01", cohorts[1].Cohort)
	assert.Equal(t, 3, cohorts[1].Size)
	assert.Equal(t, 100.0, cohorts[1].Retention60)
	assert.Equal(t, "2024-03", cohorts[2].Cohort)
}

func TestCohortRetention_RoundsToOneDecimal(t *testing.T) {
	subs := []models.SubscriptionRecord{
		{Status: models.StatusActive, OrderPlacedDate: day(2024, time.May, 1)},
		{Status: models.StatusActive, OrderPlacedDate: day(2024, time.May, 2)},
		{Status: models.StatusCancelled, OrderPlacedDate: day(2024, time.May, 3), CancelledOn: day(2024, time.May, 10)},
	}

	cohorts := CohortRetention(subs)

	require.Len(t, cohorts, 1)
	assert.Equal(t, 66.7, cohorts[0].Retention30)
}

func TestCohortRetention_Empty(t *testing.T) {
	assert.Empty(t, CohortRetention(nil))
}

func TestCohortRetention_MixedOffsets(t *testing.T) {
	eastern := time.FixedZone("EST", -5*60*60)
	lateJan := time.Date(2024, time.January, 31, 22, 0, 0, 0, eastern)
	earlyFeb := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)
	cancelled := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	cohorts := CohortRetention([]models.SubscriptionRecord{
		{Status: models.StatusCancelled, OrderPlacedDate: &lateJan, CancelledOn: &cancelled},
		{Status: models.StatusActive, OrderPlacedDate: &earlyFeb},
	})

	require.Len(t, cohorts, 1)
	c := cohorts[0]
	assert.Equal(t, "2024-02", c.Cohort)
	assert.Equal(t, 2, c.Size)
	assert.Equal(t, 2, c.Active30)
	assert.Equal(t, 1, c.Active60)
}
