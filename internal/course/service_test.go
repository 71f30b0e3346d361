package course

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/gyft/backend/internal/models"
	"github.com/ayush/gyft/backend/internal/validation"
)

func newTestService(files FileStore) (*Service, *memCourses, *stubGateway) {
	repo := newMemCourses()
	gw := &stubGateway{gen: sampleGenerated()}
	return NewService(repo, files, gw, validation.New()), repo, gw
}

func TestGenerateStoresCourse(t *testing.T) {
	files := newMemFiles()
	svc, repo, gw := newTestService(files)
	ctx := context.Background()

	c, err := svc.Generate(ctx, "u1", "  golang  ")
	require.NoError(t, err)

	assert.Equal(t, []string{"golang"}, gw.topics)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "Go Basics", c.Title)
	assert.Equal(t, "golang", c.Topic)
	assert.False(t, c.ID.IsZero())
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, "courses/u1/"+c.ID.Hex()+".json", c.ArchiveKey)

	stored, err := repo.GetForUser(ctx, c.ID.Hex(), "u1")
	require.NoError(t, err)
	assert.Equal(t, c.Title, stored.Title)
	assert.Equal(t, 1, files.len())

	n, err := svc.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGenerateDefaultsTitle(t *testing.T) {
	svc, _, gw := newTestService(nil)
	gw.gen.Title = ""
	gw.gen.Chapters = nil

	c, err := svc.Generate(context.Background(), "u1", "golang")
	require.NoError(t, err)
	assert.Equal(t, "Untitled Course", c.Title)
	assert.NotNil(t, c.Chapters)
	assert.Empty(t, c.ArchiveKey)
}

func TestGenerateGatewayFailureStoresNothing(t *testing.T) {
	files := newMemFiles()
	svc, _, gw := newTestService(files)
	gw.err = errUpstream

	_, err := svc.Generate(context.Background(), "u1", "golang")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationFailed))
	assert.Equal(t, 1, gw.calls)

	n, _ := svc.Count(context.Background(), "u1")
	assert.Zero(t, n)
	assert.Zero(t, files.len())
}

func TestGenerateRejectsBadTopic(t *testing.T) {
	svc, _, gw := newTestService(nil)

	for _, topic := range []string{"", "   ", "ab"} {
		_, err := svc.Generate(context.Background(), "u1", topic)
		assert.True(t, errors.Is(err, models.ErrValidation), "topic %q", topic)
	}
	assert.Zero(t, gw.calls)
}

func TestGenerateArchiveFailureIsNonFatal(t *testing.T) {
	files := newMemFiles()
	files.uploadErr = errors.New("minio down")
	svc, _, _ := newTestService(files)

	c, err := svc.Generate(context.Background(), "u1", "golang")
	require.NoError(t, err)
	assert.Empty(t, c.ArchiveKey)
}

func TestGenerateInsertFailureRemovesArchive(t *testing.T) {
	files := newMemFiles()
	svc, repo, _ := newTestService(files)
	repo.insertErr = errors.New("mongo down")

	_, err := svc.Generate(context.Background(), "u1", "golang")
	require.Error(t, err)
	assert.Zero(t, files.len())
}

func TestCoursesAreOwnerScoped(t *testing.T) {
	svc, _, _ := newTestService(newMemFiles())
	ctx := context.Background()

	c, err := svc.Generate(ctx, "alice", "golang")
	require.NoError(t, err)

	_, err = svc.Get(ctx, "bob", c.ID.Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, _, err = svc.Export(ctx, "bob", c.ID.Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))

	err = svc.Delete(ctx, "bob", c.ID.Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))

	list, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	got, err := svc.Get(ctx, "alice", c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestGetUnknownID(t *testing.T) {
	svc, _, _ := newTestService(nil)
	_, err := svc.Get(context.Background(), "u1", "not-an-id")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestDeleteRemovesArchive(t *testing.T) {
	files := newMemFiles()
	svc, _, _ := newTestService(files)
	ctx := context.Background()

	c, err := svc.Generate(ctx, "u1", "golang")
	require.NoError(t, err)
	require.Equal(t, 1, files.len())

	require.NoError(t, svc.Delete(ctx, "u1", c.ID.Hex()))
	assert.Zero(t, files.len())

	_, err = svc.Get(ctx, "u1", c.ID.Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	svc, _, _ := newTestService(newMemFiles())
	c, err := svc.Generate(ctx, "u1", "golang")
	require.NoError(t, err)

	data, got, err := svc.Export(ctx, "u1", c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.JSONEq(t, sampleCourse, string(data))

	noArchive, _, _ := newTestService(nil)
	c, err = noArchive.Generate(ctx, "u1", "golang")
	require.NoError(t, err)
	_, _, err = noArchive.Export(ctx, "u1", c.ID.Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGenerateNonObjectPayloadStoresNothing(t *testing.T) {
	for _, body := range []string{`{"response":"null"}`, `{"response":"[]"}`, `{"response":"\"text\""}`} {
		srv := gatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		repo := newMemCourses()
		files := newMemFiles()
		svc := NewService(repo, files, NewHTTPGateway(srv.URL, time.Second), validation.New())

		c, err := svc.Generate(context.Background(), "u1", "golang")
		assert.Nil(t, c, body)
		assert.ErrorIs(t, err, models.ErrGenerationFailed, body)

		n, err := svc.Count(context.Background(), "u1")
		require.NoError(t, err)
		assert.Zero(t, n, body)
		assert.Zero(t, files.len(), body)
	}
}
