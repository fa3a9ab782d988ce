package jobs

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/bunny-go/adapters/event"
	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
	"github.com/khoahotran/bunny-go/pkg/bunny/stream"
	"github.com/khoahotran/bunny-go/pkg/logger"
)

type fakeUploader struct {
	folder, name string
	content      []byte
	err          error
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, folder, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.folder, f.name = folder, name
	f.content, _ = io.ReadAll(file)
	return "https://cdn.example.com/" + folder + "/" + name, nil
}

func (f *fakeUploader) Delete(context.Context, string) error { return nil }

type fakeFetcher struct {
	body  stream.FetchVideoBody
	query stream.FetchVideoQuery
	res   result.Result[*stream.ActionResult]
	err   error
}

func (f *fakeFetcher) FetchVideo(_ context.Context, body stream.FetchVideoBody, query stream.FetchVideoQuery) (result.Result[*stream.ActionResult], error) {
	f.body, f.query = body, query
	return f.res, f.err
}

type ProcessJobSuite struct {
	suite.Suite
	uploader *fakeUploader
	fetcher  *fakeFetcher
	uc       *ProcessJobUseCase
}

func (s *ProcessJobSuite) SetupTest() {
	s.uploader = &fakeUploader{}
	s.fetcher = &fakeFetcher{res: result.Success(result.OK, 200, &stream.ActionResult{Success: true})}
	s.uc = NewProcessJobUseCase(s.uploader, s.fetcher, logger.NewNopLogger())
}

func (s *ProcessJobSuite) TestUpload() {
	err := s.uc.Execute(context.Background(), event.JobPayload{
		JobID:   "j1",
		Type:    event.JobStorageUpload,
		Folder:  "docs",
		Name:    "a.txt",
		Content: []byte("hello"),
	})
	s.Require().NoError(err)
	s.Equal("docs", s.uploader.folder)
	s.Equal("a.txt", s.uploader.name)
	s.Equal([]byte("hello"), s.uploader.content)
}

func (s *ProcessJobSuite) TestUploadRejectedIsDropped() {
	s.uploader.err = apperror.NewStatus(400, "bad path")
	err := s.uc.Execute(context.Background(), event.JobPayload{Type: event.JobStorageUpload, Name: "a"})
	s.NoError(err)
}

func (s *ProcessJobSuite) TestUploadTransportFailureIsRetried() {
	s.uploader.err = apperror.NewTransport("PUT", errors.New("offline"))
	err := s.uc.Execute(context.Background(), event.JobPayload{Type: event.JobStorageUpload, Name: "a"})
	s.Require().Error(err)
	s.ErrorIs(err, apperror.ErrTransport)
}

func (s *ProcessJobSuite) TestFetch() {
	err := s.uc.Execute(context.Background(), event.JobPayload{
		Type:         event.JobStreamFetch,
		URL:          "https://example.com/v.mp4",
		CollectionID: "col",
		LowPriority:  true,
	})
	s.Require().NoError(err)
	s.Equal("https://example.com/v.mp4", s.fetcher.body.URL)
	s.Equal(stream.FetchVideoQuery{CollectionID: "col", LowPriority: true}, s.fetcher.query)
}

func (s *ProcessJobSuite) TestFetchServerErrorIsRetried() {
	s.fetcher.res = result.Failure[*stream.ActionResult](result.InternalServerError, 500, "try later")
	err := s.uc.Execute(context.Background(), event.JobPayload{Type: event.JobStreamFetch, URL: "https://example.com/v.mp4"})
	s.Require().Error(err)
	s.Equal(500, apperror.Code(err))
}

func (s *ProcessJobSuite) TestFetchNotFoundIsDropped() {
	s.fetcher.res = result.Failure[*stream.ActionResult](result.NotFound, 404, "no library")
	err := s.uc.Execute(context.Background(), event.JobPayload{Type: event.JobStreamFetch, URL: "https://example.com/v.mp4"})
	s.NoError(err)
}

func (s *ProcessJobSuite) TestUnknownTypeIsSkipped() {
	s.NoError(s.uc.Execute(context.Background(), event.JobPayload{Type: "video.transcribe"}))
}

func TestProcessJobSuite(t *testing.T) {
	suite.Run(t, new(ProcessJobSuite))
}

func TestMissingDependencies(t *testing.T) {
	uc := NewProcessJobUseCase(nil, nil, logger.NewNopLogger())

	err := uc.Execute(context.Background(), event.JobPayload{Type: event.JobStorageUpload, Name: "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	err = uc.Execute(context.Background(), event.JobPayload{Type: event.JobStreamFetch, URL: "u"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
