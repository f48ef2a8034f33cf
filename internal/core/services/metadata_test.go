package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sg-cli/internal/core/domain"
	ports "sg-cli/internal/core/ports/output"
	"sg-cli/internal/testutil"
)

func newMockService() (*MetadataService, *testutil.MockMetadataRepo, *testutil.MockMetadataFeed, *testutil.MockSnapshotWriter) {
	repo := new(testutil.MockMetadataRepo)
	feed := new(testutil.MockMetadataFeed)
	snap := new(testutil.MockSnapshotWriter)
	return NewMetadataService(repo, feed, snap), repo, feed, snap
}

func TestMetadataService_ChangeStage(t *testing.T) {
	svc, repo, _, _ := newMockService()

	record := &domain.MetadataRecord{Edition: 7, Stage: 2, Image: "https://cdn.example.com/art/2/7.jpg"}
	repo.On("SetCurrentStage", mock.Anything, uint8(3)).Return(uint8(3), nil)
	repo.On("List", mock.Anything, ports.MetadataFilter{Frozen: ports.UnfrozenOnly}).
		Return([]*domain.MetadataRecord{record}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.MetadataRecord")).
		Return(&domain.MetadataRecord{Edition: 7, Stage: 3, Image: "https://cdn.example.com/art/3/7.jpg"}, nil)

	report, err := svc.ChangeStage(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Committed)
	assert.Equal(t, uint8(3), record.Stage)
	assert.Equal(t, "https://cdn.example.com/art/3/7.jpg", record.Image)
	repo.AssertExpectations(t)
}

func TestMetadataService_ChangeStage_SetStageFails(t *testing.T) {
	svc, repo, _, _ := newMockService()

	repo.On("SetCurrentStage", mock.Anything, uint8(2)).Return(uint8(0), domain.ErrStore)

	_, err := svc.ChangeStage(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrStore)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMetadataService_ChangeStage_MalformedImageAborts(t *testing.T) {
	svc, repo, _, _ := newMockService()

	good := testutil.NewRecord(1, 1, false)
	bad := &domain.MetadataRecord{Edition: 2, Image: "https://cdn.example.com/2.jpg"}
	never := testutil.NewRecord(3, 1, false)

	repo.On("SetCurrentStage", mock.Anything, uint8(2)).Return(uint8(2), nil)
	repo.On("List", mock.Anything, ports.MetadataFilter{Frozen: ports.UnfrozenOnly}).
		Return([]*domain.MetadataRecord{good, bad, never}, nil)
	repo.On("Update", mock.Anything, good).Return(good, nil).Once()

	report, err := svc.ChangeStage(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrMalformedPath)

	var recErr *domain.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 2, recErr.Edition)
	assert.Equal(t, OpChangeStage, recErr.Operation)

	assert.Equal(t, 3, report.Selected)
	assert.Equal(t, 1, report.Committed)
	require.NotNil(t, report.FailedEdition)
	assert.Equal(t, 2, *report.FailedEdition)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestMetadataService_ChangeHost(t *testing.T) {
	svc, repo, _, _ := newMockService()

	frozen := testutil.NewRecord(1, 2, true)
	open := testutil.NewRecord(2, 2, false)
	repo.On("List", mock.Anything, ports.MetadataFilter{}).Return([]*domain.MetadataRecord{frozen, open}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.MetadataRecord")).
		Return(&domain.MetadataRecord{}, nil)

	report, err := svc.ChangeHost(context.Background(), "cdn2.example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Committed)
	assert.Equal(t, "https://cdn2.example.com/art/2/1.jpg", frozen.Image)
	assert.Equal(t, "https://cdn2.example.com/art/2/2.jpg", open.Image)
}

func TestMetadataService_ChangeHost_UnparseableImage(t *testing.T) {
	svc, repo, _, _ := newMockService()

	repo.On("List", mock.Anything, ports.MetadataFilter{}).
		Return([]*domain.MetadataRecord{{Edition: 9, Image: "not-a-url"}}, nil)

	_, err := svc.ChangeHost(context.Background(), "cdn2.example.com")
	assert.ErrorIs(t, err, domain.ErrHostRewrite)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMetadataService_ChangeHost_EmptyHost(t *testing.T) {
	svc, repo, _, _ := newMockService()

	_, err := svc.ChangeHost(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidHost)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestMetadataService_ChangeMetadataFaded(t *testing.T) {
	tests := []struct {
		opacity int
		want    string
	}{
		{35, "https://cdn.example.com/faded35/4/7.jpg"},
		{45, "https://cdn.example.com/faded45/4/7.jpg"},
		{100, domain.BlackoutImage},
	}
	for _, tt := range tests {
		svc, repo, _, _ := newMockService()
		record := testutil.NewRecord(7, 2, false)
		repo.On("List", mock.Anything, ports.MetadataFilter{Frozen: ports.UnfrozenOnly}).
			Return([]*domain.MetadataRecord{record}, nil)
		repo.On("Update", mock.Anything, record).Return(record, nil)

		_, err := svc.ChangeMetadataFaded(context.Background(), tt.opacity)
		require.NoError(t, err)
		assert.Equal(t, tt.want, record.Image)
		assert.Equal(t, uint8(2), record.Stage)
		assert.False(t, record.Frozen)
	}
}

func TestMetadataService_ChangeMetadataFaded_InvalidOpacity(t *testing.T) {
	for _, opacity := range []int{0, 34, 50, 99, 101} {
		svc, repo, _, _ := newMockService()

		report, err := svc.ChangeMetadataFaded(context.Background(), opacity)
		assert.ErrorIs(t, err, domain.ErrInvalidOpacity)
		assert.Equal(t, 0, report.Committed)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	}
}

func TestMetadataService_RestoreImages_Filter(t *testing.T) {
	svc, repo, _, _ := newMockService()
	repo.On("List", mock.Anything, ports.MetadataFilter{Frozen: ports.UnfrozenOnly}).
		Return([]*domain.MetadataRecord{}, nil).Once()
	_, err := svc.RestoreImages(context.Background(), false)
	require.NoError(t, err)

	svc, repo, _, _ = newMockService()
	repo.On("List", mock.Anything, ports.MetadataFilter{Frozen: ports.FrozenAny}).
		Return([]*domain.MetadataRecord{}, nil).Once()
	_, err = svc.RestoreImages(context.Background(), true)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMetadataService_Update_RecordNotFound(t *testing.T) {
	svc, repo, _, _ := newMockService()

	record := testutil.NewRecord(4, 1, false)
	repo.On("List", mock.Anything, ports.MetadataFilter{Frozen: ports.UnfrozenOnly}).
		Return([]*domain.MetadataRecord{record}, nil)
	repo.On("Update", mock.Anything, record).Return(nil, domain.ErrRecordNotFound)

	_, err := svc.RestoreImages(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestMetadataService_ShowFrozen(t *testing.T) {
	svc, repo, _, _ := newMockService()

	repo.On("List", mock.Anything, ports.MetadataFilter{Frozen: ports.FrozenOnly}).
		Return([]*domain.MetadataRecord{testutil.NewRecord(3, 1, true), testutil.NewRecord(8, 2, true)}, nil).Once()

	report := svc.ShowFrozen(context.Background())
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)

	var got []domain.FrozenImage
	for img, err := range report {
		require.NoError(t, err)
		got = append(got, img)
	}
	assert.Equal(t, []domain.FrozenImage{
		{Edition: 3, Image: "https://cdn.example.com/art/1/3.jpg", Stage: 1},
		{Edition: 8, Image: "https://cdn.example.com/art/2/8.jpg", Stage: 2},
	}, got)

	for _, err := range report {
		assert.ErrorIs(t, err, domain.ErrReportConsumed)
	}
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestMetadataService_ShowFrozen_StoreError(t *testing.T) {
	svc, repo, _, _ := newMockService()
	repo.On("List", mock.Anything, ports.MetadataFilter{Frozen: ports.FrozenOnly}).Return(nil, domain.ErrStore)

	for _, err := range svc.ShowFrozen(context.Background()) {
		assert.ErrorIs(t, err, domain.ErrStore)
	}
}

func TestMetadataService_DumpMetadata(t *testing.T) {
	svc, repo, _, snap := newMockService()

	records := []*domain.MetadataRecord{testutil.NewRecord(1, 1, false), testutil.NewRecord(2, 1, true)}
	repo.On("List", mock.Anything, ports.MetadataFilter{OrderByEdition: true}).Return(records, nil)
	snap.On("Write", mock.Anything, records).Return("json-dumps/2026-10-14_09-30-00.json", nil)

	path, err := svc.DumpMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "json-dumps/2026-10-14_09-30-00.json", path)
	snap.AssertExpectations(t)
}

func TestMetadataService_DumpMetadata_WriteFails(t *testing.T) {
	svc, repo, _, snap := newMockService()

	repo.On("List", mock.Anything, ports.MetadataFilter{OrderByEdition: true}).Return([]*domain.MetadataRecord{}, nil)
	snap.On("Write", mock.Anything, mock.Anything).Return("", domain.ErrFileSystem)

	_, err := svc.DumpMetadata(context.Background())
	assert.ErrorIs(t, err, domain.ErrFileSystem)
}

func TestMetadataService_InitFrom(t *testing.T) {
	svc, repo, feed, _ := newMockService()

	records := []*domain.MetadataRecord{testutil.NewRecord(1, 1, false), testutil.NewRecord(2, 1, false)}
	feed.On("Fetch", mock.Anything, "https://feed.example.com/all.json").Return(records, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MetadataRecord")).Return(nil)

	report, err := svc.InitFrom(context.Background(), "https://feed.example.com/all.json")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Committed)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestMetadataService_InitFrom_InsertFailureAborts(t *testing.T) {
	svc, repo, feed, _ := newMockService()

	first, second, third := testutil.NewRecord(1, 1, false), testutil.NewRecord(2, 1, false), testutil.NewRecord(3, 1, false)
	feed.On("Fetch", mock.Anything, "dump.json").Return([]*domain.MetadataRecord{first, second, third}, nil)
	repo.On("Create", mock.Anything, first).Return(nil)
	repo.On("Create", mock.Anything, second).Return(domain.ErrEditionConflict)

	report, err := svc.InitFrom(context.Background(), "dump.json")
	assert.ErrorIs(t, err, domain.ErrEditionConflict)
	assert.Equal(t, 1, report.Committed)
	require.NotNil(t, report.FailedEdition)
	assert.Equal(t, 2, *report.FailedEdition)
	repo.AssertNotCalled(t, "Create", mock.Anything, third)
}

func TestMetadataService_InitFrom_ParseError(t *testing.T) {
	svc, repo, feed, _ := newMockService()

	feed.On("Fetch", mock.Anything, "bad.json").Return(nil, domain.ErrImportParse)

	_, err := svc.InitFrom(context.Background(), "bad.json")
	assert.ErrorIs(t, err, domain.ErrImportParse)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMetadataService_InitFrom_EmptySource(t *testing.T) {
	svc, _, feed, _ := newMockService()

	_, err := svc.InitFrom(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidSource)
	feed.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestMetadataService_CurrentStage(t *testing.T) {
	svc, repo, _, _ := newMockService()
	repo.On("GetCurrentStage", mock.Anything).Return(uint8(4), nil)

	stage, err := svc.CurrentStage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint8(4), stage)
}

func TestBatchReport_ListFailure(t *testing.T) {
	svc, repo, _, _ := newMockService()
	cause := errors.New("connection reset")
	repo.On("List", mock.Anything, ports.MetadataFilter{}).Return(nil, cause)

	report, err := svc.ChangeHost(context.Background(), "cdn2.example.com")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, report.Selected)
	assert.Nil(t, report.FailedEdition)
}
