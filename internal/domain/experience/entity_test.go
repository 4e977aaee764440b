//go:build unit

package experience_test

import (
	"testing"

	"experience-booking/internal/domain/experience"
	"experience-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ExperienceBuilder)
	errIs  error
}

func TestExperience(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewExperienceBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, "exp-kayak", actual.ID())
		assert.Equal(t, int64(999), actual.BasePrice())
		assert.Equal(t, 4, actual.SlotCount())
		require.Len(t, actual.Days(), 2)
		assert.Equal(t, "2025-10-22", actual.Days()[0].Date())
		assert.Equal(t, "2025-10-23", actual.Days()[1].Date())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty id",
				mutate: func(b *builder.ExperienceBuilder) { b.WithID("  ") },
				errIs:  experience.ErrEmptyExperienceID,
			},
			{
				name:   "empty title",
				mutate: func(b *builder.ExperienceBuilder) { b.WithTitle("") },
				errIs:  experience.ErrEmptyTitle,
			},
			{
				name:   "negative base price",
				mutate: func(b *builder.ExperienceBuilder) { b.WithBasePrice(-1) },
				errIs:  experience.ErrNegativeBasePrice,
			},
			{
				name:   "zero base price",
				mutate: func(b *builder.ExperienceBuilder) { b.WithBasePrice(0) },
			},
			{
				name:   "no days",
				mutate: func(b *builder.ExperienceBuilder) { b.WithoutDays() },
			},
		})
	})

	t.Run("day and slot validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "duplicate date",
				mutate: func(b *builder.ExperienceBuilder) {
					b.WithDays(
						builder.DaySpec{Date: "2025-10-22", Slots: []builder.SlotSpec{{Time: "07:00 am", Capacity: 1}}},
						builder.DaySpec{Date: "2025-10-22", Slots: []builder.SlotSpec{{Time: "09:00 am", Capacity: 1}}},
					)
				},
				errIs: experience.ErrDuplicateDate,
			},
			{
				name: "non ISO date",
				mutate: func(b *builder.ExperienceBuilder) {
					b.WithDays(builder.DaySpec{Date: "22/10/2025"})
				},
				errIs: experience.ErrInvalidDate,
			},
			{
				name: "empty date",
				mutate: func(b *builder.ExperienceBuilder) {
					b.WithDays(builder.DaySpec{Date: ""})
				},
				errIs: experience.ErrEmptyDate,
			},
			{
				name: "duplicate slot time",
				mutate: func(b *builder.ExperienceBuilder) {
					b.WithDays(builder.DaySpec{Date: "2025-10-22", Slots: []builder.SlotSpec{
						{Time: "07:00 am", Capacity: 1},
						{Time: "07:00 am", Capacity: 2},
					}})
				},
				errIs: experience.ErrDuplicateSlotTime,
			},
			{
				name: "negative capacity",
				mutate: func(b *builder.ExperienceBuilder) {
					b.WithDays(builder.DaySpec{Date: "2025-10-22", Slots: []builder.SlotSpec{{Time: "07:00 am", Capacity: -1}}})
				},
				errIs: experience.ErrNegativeCapacity,
			},
			{
				name: "empty slot time",
				mutate: func(b *builder.ExperienceBuilder) {
					b.WithDays(builder.DaySpec{Date: "2025-10-22", Slots: []builder.SlotSpec{{Time: " ", Capacity: 1}}})
				},
				errIs: experience.ErrEmptyTime,
			},
		})
	})

	t.Run("find slot", func(t *testing.T) {
		exp := builder.NewExperienceBuilder().MustBuildDomain()

		slot, err := exp.FindSlot("2025-10-22", "09:00 am")
		require.NoError(t, err)
		assert.Equal(t, "09:00 am", slot.Time())
		assert.Equal(t, 2, slot.CapacityRemaining())
		assert.False(t, slot.SoldOut())

		soldOut, err := exp.FindSlot("2025-10-22", "11:00 am")
		require.NoError(t, err)
		assert.True(t, soldOut.SoldOut())

		_, err = exp.FindSlot("2025-10-23", "09:00 am")
		assert.ErrorIs(t, err, experience.ErrSlotNotFound)

		_, err = exp.FindSlot("2030-01-01", "07:00 am")
		assert.ErrorIs(t, err, experience.ErrSlotNotFound)
	})

	t.Run("summary omits slots", func(t *testing.T) {
		exp := builder.NewExperienceBuilder().MustBuildDomain()

		assert.Equal(t, experience.Summary{
			ID:               "exp-kayak",
			Title:            "Kayaking",
			City:             "Udupi",
			BasePrice:        999,
			ImageURL:         "https://images.example.com/kayak.jpg",
			ShortDescription: "Curated small-group experience.",
		}, exp.Summary())
	})

	t.Run("days are copied", func(t *testing.T) {
		exp := builder.NewExperienceBuilder().MustBuildDomain()

		days := exp.Days()
		days[0] = days[1]

		assert.Equal(t, "2025-10-22", exp.Days()[0].Date())
	})
}

func TestSlotKey(t *testing.T) {
	key := experience.NewSlotKey(" exp-1 ", "2025-10-22 ", " 07:00 am")

	assert.Equal(t, experience.SlotKey{ExperienceID: "exp-1", Date: "2025-10-22", Time: "07:00 am"}, key)
	assert.True(t, key.IsComplete())
	assert.Equal(t, "exp-1|2025-10-22|07:00 am", key.String())
	assert.False(t, experience.NewSlotKey("exp-1", "", "07:00 am").IsComplete())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewExperienceBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
