//go:build unit

package memstore_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/infra"
	"experience-booking/internal/infra/memstore"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/usecase/shared"
	"experience-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func TestCatalog_RoundTrip(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog(builder.NewHashedPolicy(), discard)

	days := []builder.DaySpec{}
	for d := range 3 {
		date := time.Date(2025, 11, 1+d, 0, 0, 0, 0, time.UTC).Format(clock.DateLayout)
		days = append(days, builder.DaySpec{Date: date, Slots: []builder.SlotSpec{
			{Time: "06:00 am", Capacity: d},
			{Time: "10:00 am", Capacity: 3},
			{Time: "08:00 am", Capacity: 7},
		}})
	}
	written := shared.NewExperienceRecord(builder.NewExperienceBuilder().WithDays(days...).MustBuildDomain())
	require.NoError(t, catalog.UpsertExperience(ctx, written))

	got, err := catalog.GetExperience(ctx, "exp-kayak")
	require.NoError(t, err)

	if diff := cmp.Diff(written, shared.NewExperienceRecord(got)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_LegacyCapacity(t *testing.T) {
	ctx := context.Background()
	policy := builder.NewHashedPolicy()
	catalog := memstore.NewCatalog(policy, discard)

	zero := 0
	rec := shared.ExperienceRecord{
		ID: "legacy", Title: "Legacy", BasePrice: 500,
		Days: []shared.DayRecord{{Date: "2025-10-22", Slots: []shared.SlotRecord{
			{Time: "07:00 am"},
			{Time: "09:00 am", Capacity: &zero},
		}}},
	}
	require.NoError(t, catalog.UpsertExperience(ctx, rec))

	first, err := catalog.GetExperience(ctx, "legacy")
	require.NoError(t, err)
	second, err := catalog.GetExperience(ctx, "legacy")
	require.NoError(t, err)

	legacy, err := first.FindSlot("2025-10-22", "07:00 am")
	require.NoError(t, err)
	again, err := second.FindSlot("2025-10-22", "07:00 am")
	require.NoError(t, err)

	want := policy.DefaultCapacity(experience.NewSlotKey("legacy", "2025-10-22", "07:00 am"))
	assert.Equal(t, want, legacy.CapacityRemaining())
	assert.Equal(t, legacy, again)
	assert.False(t, legacy.SoldOut())

	soldOut, err := first.FindSlot("2025-10-22", "09:00 am")
	require.NoError(t, err)
	assert.True(t, soldOut.SoldOut())
}

func TestCatalog_ListAndReplace(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog(experience.NewFixedCapacity(5), discard)

	for _, id := range []string{"b", "a", "c"} {
		rec := shared.NewExperienceRecord(builder.NewExperienceBuilder().WithID(id).MustBuildDomain())
		require.NoError(t, catalog.UpsertExperience(ctx, rec))
	}
	replaced := shared.NewExperienceRecord(builder.NewExperienceBuilder().WithID("a").WithTitle("Renamed").MustBuildDomain())
	require.NoError(t, catalog.UpsertExperience(ctx, replaced))

	list, err := catalog.ListExperiences(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID())
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
	assert.Equal(t, "Renamed", list[1].Title())
}

func TestCatalog_Errors(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog(experience.NewFixedCapacity(5), discard)

	_, err := catalog.GetExperience(ctx, "missing")
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	err = catalog.UpsertExperience(ctx, shared.ExperienceRecord{ID: "x", Title: ""})
	assert.ErrorIs(t, err, experience.ErrEmptyTitle)
}

func TestCatalog_StoredRecordIsCopied(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog(experience.NewFixedCapacity(5), discard)

	capacity := 4
	rec := shared.ExperienceRecord{
		ID: "x", Title: "X",
		Days: []shared.DayRecord{{Date: "2025-10-22", Slots: []shared.SlotRecord{{Time: "07:00 am", Capacity: &capacity}}}},
	}
	require.NoError(t, catalog.UpsertExperience(ctx, rec))
	capacity = 0
	rec.Days[0].Slots[0].Time = "changed"

	got, err := catalog.GetExperience(ctx, "x")
	require.NoError(t, err)
	slot, err := got.FindSlot("2025-10-22", "07:00 am")
	require.NoError(t, err)
	assert.Equal(t, 4, slot.CapacityRemaining())
}

func TestSampleExperiences(t *testing.T) {
	ctx := context.Background()
	c := clock.NewMockClock(time.Date(2025, 10, 21, 23, 0, 0, 0, time.UTC))
	catalog := memstore.NewCatalog(builder.NewHashedPolicy(), discard)
	require.NoError(t, memstore.Seed(ctx, catalog, memstore.SampleExperiences(c)))

	list, err := catalog.ListExperiences(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Kayaking", "Nandi Hills Sunrise", "Coffee Trail"},
		[]string{list[0].Title(), list[1].Title(), list[2].Title()})

	kayak := list[0]
	days := kayak.Days()
	require.Len(t, days, 4)
	assert.Equal(t, "2025-10-21", days[0].Date())
	assert.Equal(t, "2025-10-24", days[3].Date())

	soldOut := func(date, slotTime string) bool {
		s, err := kayak.FindSlot(date, slotTime)
		require.NoError(t, err)
		return s.SoldOut()
	}
	assert.True(t, soldOut("2025-10-21", "01:00 pm"))
	assert.True(t, soldOut("2025-10-22", "07:00 am"))
	assert.True(t, soldOut("2025-10-23", "11:00 am"))
	assert.False(t, soldOut("2025-10-21", "09:00 am"))

	for _, e := range list {
		for _, d := range e.Days() {
			for _, s := range d.Slots() {
				assert.GreaterOrEqual(t, s.CapacityRemaining(), 0)
			}
		}
	}
}

func TestScriptExperiences(t *testing.T) {
	c := clock.NewMockClock(time.Date(2025, 10, 21, 8, 0, 0, 0, time.UTC))
	recs := memstore.ScriptExperiences(c)
	require.Len(t, recs, 3)

	assert.Len(t, recs[0].Days[0].Slots, 4)
	assert.Equal(t, "06:00 am", recs[1].Days[0].Slots[0].Time)
	assert.Len(t, recs[2].Days[0].Slots, 3)

	// Kayaking 01:00 pm is sold out every day
	for _, d := range recs[0].Days {
		require.NotNil(t, d.Slots[3].Capacity)
		assert.Equal(t, 0, *d.Slots[3].Capacity)
	}
	for _, d := range recs[2].Days {
		for _, s := range d.Slots {
			assert.Nil(t, s.Capacity)
		}
	}
}
