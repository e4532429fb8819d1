package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"cdn-service/domain/apperror"
	"cdn-service/domain/model"
	"cdn-service/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PutFile(ctx context.Context, path string, body io.Reader) error {
	args := m.Called(ctx, path, body)
	return args.Error(0)
}

func (m *MockObjectStorage) DeleteFile(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockObjectStorage) ListObjects(ctx context.Context, dir string) ([]model.StoredObject, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoredObject), args.Error(1)
}

func TestUploadFile_PathAndURL(t *testing.T) {
	storage := new(MockObjectStorage)
	body := strings.NewReader("png")
	storage.On("PutFile", mock.Anything, "morning-show/cover/poster.png", body).Return(nil).Once()

	uc := usecase.NewStorageUseCase(storage, "tnoradio.b-cdn.net")
	res, err := uc.UploadFile(context.Background(), "morning-show", "cover", "poster.png", body)
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "cover/poster.png", res.FilePath)
	assert.Equal(t, "https://tnoradio.b-cdn.net/morning-show/cover/poster.png", res.URL)
	storage.AssertExpectations(t)
}

func TestUploadFile_RejectsTraversal(t *testing.T) {
	storage := new(MockObjectStorage)
	uc := usecase.NewStorageUseCase(storage, "")

	for _, tc := range []struct{ slug, kind, name string }{
		{"..", "cover", "a.png"},
		{"show", "../other", "a.png"},
		{"show", "cover", "a/b.png"},
		{"show", "cover", `..\a.png`},
	} {
		_, err := uc.UploadFile(context.Background(), tc.slug, tc.kind, tc.name, strings.NewReader("x"))
		var paramErr *apperror.ParameterError
		assert.ErrorAs(t, err, &paramErr, "%+v", tc)
	}
	storage.AssertNotCalled(t, "PutFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadFile_MissingParameters(t *testing.T) {
	uc := usecase.NewStorageUseCase(new(MockObjectStorage), "")
	_, err := uc.UploadFile(context.Background(), "show", "", "a.png", strings.NewReader("x"))
	assert.Equal(t, 400, apperror.HTTPStatus(err))
}

func TestUploadFile_UpstreamFailure(t *testing.T) {
	storage := new(MockObjectStorage)
	storage.On("PutFile", mock.Anything, "show/cover/a.png", mock.Anything).
		Return(&apperror.UpstreamError{Service: "bunny-storage", Op: "put", StatusCode: 401, Err: assert.AnError}).Once()

	uc := usecase.NewStorageUseCase(storage, "")
	_, err := uc.UploadFile(context.Background(), "show", "cover", "a.png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, 500, apperror.HTTPStatus(err))
	assert.Contains(t, err.Error(), "status 401")
}

func TestDeleteFile(t *testing.T) {
	storage := new(MockObjectStorage)
	storage.On("DeleteFile", mock.Anything, "show/cover/a.png").Return(nil).Once()

	uc := usecase.NewStorageUseCase(storage, "")
	require.NoError(t, uc.DeleteFile(context.Background(), "show", "cover", "a.png"))

	err := uc.DeleteFile(context.Background(), "show", "cover", "")
	var paramErr *apperror.ParameterError
	assert.ErrorAs(t, err, &paramErr)
	storage.AssertExpectations(t)
}

func TestListFiles_DirectoryAndURLs(t *testing.T) {
	storage := new(MockObjectStorage)
	storage.On("ListObjects", mock.Anything, "show/cover/").Return([]model.StoredObject{
		{ObjectName: "thumbs", IsDirectory: true},
		{ObjectName: "a.png"},
	}, nil).Once()
	storage.On("ListObjects", mock.Anything, "show/").Return(nil, nil).Once()

	uc := usecase.NewStorageUseCase(storage, "https://cdn.example.com/")
	files, err := uc.ListFiles(context.Background(), "show", "cover")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Empty(t, files[0].Url)
	assert.Equal(t, "https://cdn.example.com/show/cover/a.png", files[1].Url)

	files, err = uc.ListFiles(context.Background(), "show", "")
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)

	_, err = uc.ListFiles(context.Background(), "", "cover")
	var paramErr *apperror.ParameterError
	assert.ErrorAs(t, err, &paramErr)
}

func TestGetShows(t *testing.T) {
	storage := new(MockObjectStorage)
	storage.On("ListObjects", mock.Anything, "").Return([]model.StoredObject{{ObjectName: "morning-show", IsDirectory: true}}, nil).Once()
	storage.On("ListObjects", mock.Anything, "morning-show/").Return([]model.StoredObject{{ObjectName: "cover", IsDirectory: true}}, nil).Once()

	uc := usecase.NewStorageUseCase(storage, "")
	shows, err := uc.GetShows(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "morning-show", shows[0].ObjectName)

	dirs, err := uc.GetShows(context.Background(), "morning-show")
	require.NoError(t, err)
	assert.Equal(t, "cover", dirs[0].ObjectName)
	storage.AssertExpectations(t)
}

func TestObjectPath(t *testing.T) {
	path, err := usecase.ObjectPath("a", "b", "c.png")
	require.NoError(t, err)
	assert.Equal(t, "a/b/c.png", path)

	_, err = usecase.ObjectPath("a", "", "c.png")
	assert.Error(t, err)
}
