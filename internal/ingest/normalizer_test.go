package ingest

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishimarga/mandi-indexer/internal/domain"
	"github.com/krishimarga/mandi-indexer/internal/mocks"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
)

func validRecord() datagov.RawRecord {
	return datagov.RawRecord{
		State:       "Karnataka",
		District:    "Shimoga",
		Market:      "Shimoga",
		Commodity:   "Tomato",
		Variety:     "Local",
		ArrivalDate: "17/10/2025",
		MinPrice:    "1000",
		MaxPrice:    "1400",
		ModalPrice:  "1200",
	}
}

func TestNormalize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	normalizer := NewNormalizer(clock)

	price, err := normalizer.Normalize(validRecord())
	require.NoError(t, err)

	assert.Equal(t, "Karnataka", price.State)
	assert.Equal(t, "Shimoga", price.District)
	assert.Equal(t, "Shimoga", price.Market)
	assert.Equal(t, "Tomato", price.Commodity)
	assert.Equal(t, "Local", price.Variety)
	assert.Equal(t, 1000.0, price.MinPrice)
	assert.Equal(t, 1400.0, price.MaxPrice)
	assert.Equal(t, 1200.0, price.ModalPrice)
	assert.Equal(t, time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC), price.ArrivalDate)
	assert.Equal(t, now, price.FetchedAt)
}

func TestNormalizeDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	normalizer := NewNormalizer(clock)

	t.Run("blank variety becomes FAQ", func(t *testing.T) {
		record := validRecord()
		record.Variety = "  "

		price, err := normalizer.Normalize(record)
		require.NoError(t, err)
		assert.Equal(t, domain.VarietyFAQ, price.Variety)
	})

	t.Run("missing arrival date falls back to today", func(t *testing.T) {
		record := validRecord()
		record.ArrivalDate = ""

		price, err := normalizer.Normalize(record)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC), price.ArrivalDate)
	})

	t.Run("text fields trimmed", func(t *testing.T) {
		record := validRecord()
		record.Market = " Binny Mill (F&V), Bangalore "

		price, err := normalizer.Normalize(record)
		require.NoError(t, err)
		assert.Equal(t, "Binny Mill (F&V), Bangalore", price.Market)
	})
}

func TestNormalizeRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC)).AnyTimes()

	normalizer := NewNormalizer(clock)

	tests := []struct {
		name   string
		mutate func(*datagov.RawRecord)
	}{
		{
			name:   "malformed arrival date",
			mutate: func(r *datagov.RawRecord) { r.ArrivalDate = "2025-10-17" },
		},
		{
			name:   "out of range arrival date",
			mutate: func(r *datagov.RawRecord) { r.ArrivalDate = "40/10/2025" },
		},
		{
			name:   "unparseable price",
			mutate: func(r *datagov.RawRecord) { r.ModalPrice = "NR" },
		},
		{
			name:   "empty price",
			mutate: func(r *datagov.RawRecord) { r.MinPrice = "" },
		},
		{
			name:   "non-finite price",
			mutate: func(r *datagov.RawRecord) { r.MaxPrice = "NaN" },
		},
		{
			name:   "negative price",
			mutate: func(r *datagov.RawRecord) { r.ModalPrice = "-5" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(&record)

			_, err := normalizer.Normalize(record)
			assert.Error(t, err)
		})
	}
}
