package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishimarga/mandi-indexer/internal/domain"
	"github.com/krishimarga/mandi-indexer/internal/mocks"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store/schema"
	"github.com/krishimarga/mandi-indexer/internal/sweeper"
)

type orchestratorFixture struct {
	client *mocks.MockDataGovClient
	store  *mocks.MockStore
	clock  *mocks.MockClock
	now    time.Time
}

func newOrchestratorFixture(t *testing.T) (*orchestratorFixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	f := &orchestratorFixture{
		client: mocks.NewMockDataGovClient(ctrl),
		store:  mocks.NewMockStore(ctrl),
		clock:  mocks.NewMockClock(ctrl),
		now:    time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC),
	}
	f.clock.EXPECT().Now().Return(f.now).AnyTimes()

	return f, ctrl
}

func (f *orchestratorFixture) orchestrator(cfg Config) *Orchestrator {
	normalizer := NewNormalizer(f.clock)
	retention := sweeper.NewRetention(f.store, f.clock, 30)
	return NewOrchestrator(f.client, f.store, normalizer, retention, f.clock, cfg)
}

func (f *orchestratorFixture) expectSweep(deleted int64) {
	cutoff := domain.Date(f.now).AddDate(0, 0, -30)
	f.store.EXPECT().DeletePricesBefore(gomock.Any(), cutoff).Return(deleted, nil)
}

func TestRunPaginatesUntilShortPage(t *testing.T) {
	f, ctrl := newOrchestratorFixture(t)
	defer ctrl.Finish()

	date := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)
	filters := datagov.Filters{Date: date}

	fullPage := []datagov.RawRecord{validRecord(), validRecord()}
	shortPage := []datagov.RawRecord{validRecord()}

	gomock.InOrder(
		f.client.EXPECT().FetchPage(gomock.Any(), filters, 0, 2).Return(fullPage, nil),
		f.client.EXPECT().FetchPage(gomock.Any(), filters, 2, 2).Return(shortPage, nil),
	)
	f.store.EXPECT().UpsertPrices(gomock.Any(), gomock.Len(2)).Return(int64(2), nil)
	f.store.EXPECT().UpsertPrices(gomock.Any(), gomock.Len(1)).Return(int64(1), nil)
	f.expectSweep(5)

	orchestrator := f.orchestrator(Config{PageLimit: 2})

	result, err := orchestrator.Run(context.Background(), []time.Time{date})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Fetched)
	assert.Equal(t, int64(3), result.Written)
	assert.Equal(t, 0, result.Dropped)
	assert.Equal(t, 0, result.FailedTargets)
	assert.Equal(t, int64(5), result.Deleted)
	assert.NotEmpty(t, result.RunID)
}

func TestRunStopsTargetOnEmptyPage(t *testing.T) {
	f, ctrl := newOrchestratorFixture(t)
	defer ctrl.Finish()

	date := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)

	f.client.EXPECT().
		FetchPage(gomock.Any(), datagov.Filters{Date: date}, 0, 2000).
		Return(nil, nil)
	f.expectSweep(0)

	orchestrator := f.orchestrator(Config{})

	result, err := orchestrator.Run(context.Background(), []time.Time{date})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Fetched)
}

func TestRunFailedTargetDoesNotAbortRun(t *testing.T) {
	f, ctrl := newOrchestratorFixture(t)
	defer ctrl.Finish()

	date := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)

	f.client.EXPECT().
		FetchPage(gomock.Any(), datagov.Filters{Date: date, State: "Karnataka"}, 0, 2000).
		Return(nil, errors.New("upstream unavailable"))
	f.client.EXPECT().
		FetchPage(gomock.Any(), datagov.Filters{Date: date, State: "Maharashtra"}, 0, 2000).
		Return([]datagov.RawRecord{validRecord()}, nil)
	f.store.EXPECT().UpsertPrices(gomock.Any(), gomock.Len(1)).Return(int64(1), nil)
	f.expectSweep(0)

	orchestrator := f.orchestrator(Config{States: []string{"Karnataka", "Maharashtra"}})

	result, err := orchestrator.Run(context.Background(), []time.Time{date})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FailedTargets)
	assert.Equal(t, int64(1), result.Written)
}

func TestRunDropsMalformedRecords(t *testing.T) {
	f, ctrl := newOrchestratorFixture(t)
	defer ctrl.Finish()

	date := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)

	bad := validRecord()
	bad.ModalPrice = "NR"

	f.client.EXPECT().
		FetchPage(gomock.Any(), datagov.Filters{Date: date}, 0, 2000).
		Return([]datagov.RawRecord{validRecord(), bad}, nil)
	f.store.EXPECT().
		UpsertPrices(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, prices []schema.Price) (int64, error) {
			assert.Equal(t, "Tomato", prices[0].Commodity)
			return 1, nil
		})
	f.expectSweep(0)

	orchestrator := f.orchestrator(Config{})

	result, err := orchestrator.Run(context.Background(), []time.Time{date})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, int64(1), result.Written)
	assert.Equal(t, 1, result.Dropped)
}

func TestRunDefaultWindow(t *testing.T) {
	f, ctrl := newOrchestratorFixture(t)
	defer ctrl.Finish()

	yesterday := f.now.AddDate(0, 0, -1)

	f.client.EXPECT().
		FetchPage(gomock.Any(), datagov.Filters{Date: yesterday}, 0, 2000).
		Return(nil, nil)
	f.client.EXPECT().
		FetchPage(gomock.Any(), datagov.Filters{Date: f.now}, 0, 2000).
		Return(nil, nil)
	f.expectSweep(0)

	orchestrator := f.orchestrator(Config{})

	_, err := orchestrator.Run(context.Background(), nil)
	require.NoError(t, err)
}
