package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/memory"
)

type fakeAttachment struct {
	path   string
	err    error
	stored int
}

func (f *fakeAttachment) Store(context.Context) (string, error) {
	f.stored++
	return f.path, f.err
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance()       { c.t = c.t.Add(time.Minute) }

func newCourseService() (*CourseService, *memory.CourseRepository, *fakeClock) {
	repo := memory.NewCourseRepository()
	clk := &fakeClock{t: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewCourseService(repo, nil, nil)
	svc.Now = clk.now
	return svc, repo, clk
}

func validCourseInput() Fields {
	return Fields{
		"title":       "Money Basics",
		"description": "Learn how to budget and save early.",
		"category":    "school",
		"level":       "beginner",
		"price":       "49.99",
		"duration":    "120",
	}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}

func TestCreateCourseSuccess(t *testing.T) {
	svc, repo, clk := newCourseService()
	ctx := context.Background()
	thumb := &fakeAttachment{path: "/uploads/thumbnails/t.png"}

	c, err := svc.Create(ctx, validCourseInput(), thumb)
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, "Money Basics", c.Title)
	require.Equal(t, entity.CategorySchool, c.Category)
	require.Equal(t, entity.LevelBeginner, c.Level)
	require.InDelta(t, 49.99, c.Price, 0.0001)
	require.Equal(t, 120, c.Duration)
	require.True(t, c.IsActive)
	require.NotNil(t, c.Thumbnail)
	require.Equal(t, "/uploads/thumbnails/t.png", *c.Thumbnail)
	require.Empty(t, c.Videos)
	require.Equal(t, clk.t, c.CreatedAt)
	require.Equal(t, clk.t, c.UpdatedAt)
	require.Equal(t, 1, thumb.stored)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCreateCourseWithoutThumbnailStoresNull(t *testing.T) {
	svc, _, _ := newCourseService()
	c, err := svc.Create(context.Background(), validCourseInput(), nil)
	require.NoError(t, err)
	require.Nil(t, c.Thumbnail)
}

func TestCreateCourseReportsExactlyTheInvalidFields(t *testing.T) {
	cases := []struct {
		name  string
		patch Fields
		want  []string
	}{
		{"short title", Fields{"title": "  ab  "}, []string{"title"}},
		{"short description", Fields{"description": "too short"}, []string{"description"}},
		{"bad category", Fields{"category": "university"}, []string{"category"}},
		{"bad level", Fields{"level": "expert"}, []string{"level"}},
		{"negative price", Fields{"price": "-1"}, []string{"price"}},
		{"non numeric price", Fields{"price": "free"}, []string{"price"}},
		{"zero duration", Fields{"duration": "0"}, []string{"duration"}},
		{"non numeric duration", Fields{"duration": "long"}, []string{"duration"}},
		{
			"everything wrong",
			Fields{"title": "a", "description": "b", "category": "x", "level": "y", "price": "-5", "duration": "-3"},
			[]string{"title", "description", "category", "level", "price", "duration"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newCourseService()
			in := validCourseInput()
			for k, v := range tc.patch {
				in[k] = v
			}
			thumb := &fakeAttachment{path: "/uploads/thumbnails/x.png"}

			_, err := svc.Create(context.Background(), in, thumb)
			fields := validationFields(t, err)
			got := make([]string, 0, len(fields))
			for k := range fields {
				got = append(got, k)
			}
			require.ElementsMatch(t, tc.want, got)
			require.Zero(t, thumb.stored)

			list, _ := repo.List(context.Background())
			require.Empty(t, list)
		})
	}
}

func TestCreateCourseMissingFieldsAreRequired(t *testing.T) {
	svc, _, _ := newCourseService()
	_, err := svc.Create(context.Background(), Fields{"title": "Valid title"}, nil)
	fields := validationFields(t, err)
	require.Len(t, fields, 5)
	require.Equal(t, "is required", fields["price"])
	require.NotContains(t, fields, "title")
}

func TestCreateCourseFreeCourseIsValid(t *testing.T) {
	svc, _, _ := newCourseService()
	in := validCourseInput()
	in["price"] = "0"
	c, err := svc.Create(context.Background(), in, nil)
	require.NoError(t, err)
	require.Zero(t, c.Price)
}

func TestCreateCourseTwiceGivesDistinctIDs(t *testing.T) {
	svc, repo, _ := newCourseService()
	ctx := context.Background()
	a, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	list, _ := repo.List(ctx)
	require.Len(t, list, 2)
}

func TestCreateCourseStripsMarkup(t *testing.T) {
	svc, _, _ := newCourseService()
	in := validCourseInput()
	in["title"] = "<b>Saving</b> 101"
	c, err := svc.Create(context.Background(), in, nil)
	require.NoError(t, err)
	require.Equal(t, "Saving 101", c.Title)
}

func TestUpdateCourseTitleOnly(t *testing.T) {
	svc, repo, clk := newCourseService()
	ctx := context.Background()
	before, err := svc.Create(ctx, validCourseInput(), &fakeAttachment{path: "/uploads/thumbnails/a.png"})
	require.NoError(t, err)

	clk.advance()
	after, err := svc.Update(ctx, before.ID, Fields{"title": "New Title"}, nil)
	require.NoError(t, err)
	require.Equal(t, "New Title", after.Title)
	require.Equal(t, clk.t, after.UpdatedAt)

	stored, err := repo.GetByID(ctx, before.ID)
	require.NoError(t, err)
	expected := before.Clone()
	expected.Title = "New Title"
	expected.UpdatedAt = clk.t
	require.Equal(t, expected, stored)
}

func TestUpdateCourseExplicitZeroValues(t *testing.T) {
	svc, _, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, Fields{"price": "0"}, nil)
	require.NoError(t, err)
	require.Zero(t, updated.Price)

	_, err = svc.Update(ctx, c.ID, Fields{"duration": "0"}, nil)
	require.Equal(t, map[string]string{"duration": "must be a positive number"}, validationFields(t, err))

	_, err = svc.Update(ctx, c.ID, Fields{"title": ""}, nil)
	require.Contains(t, validationFields(t, err), "title")

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, 120, got.Duration)
	require.Equal(t, "Money Basics", got.Title)
}

func TestUpdateCourseIsActiveFlag(t *testing.T) {
	svc, _, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)

	c, err = svc.Update(ctx, c.ID, Fields{"isActive": "false"}, nil)
	require.NoError(t, err)
	require.False(t, c.IsActive)

	c, err = svc.Update(ctx, c.ID, Fields{"isActive": "yes"}, nil)
	require.NoError(t, err)
	require.False(t, c.IsActive)

	c, err = svc.Update(ctx, c.ID, Fields{"isActive": "true"}, nil)
	require.NoError(t, err)
	require.True(t, c.IsActive)
}

func TestUpdateCourseReplacesThumbnail(t *testing.T) {
	svc, _, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)

	c, err = svc.Update(ctx, c.ID, Fields{}, &fakeAttachment{path: "/uploads/thumbnails/new.png"})
	require.NoError(t, err)
	require.Equal(t, "/uploads/thumbnails/new.png", *c.Thumbnail)
}

func TestUpdateMissingCourseHasNoSideEffects(t *testing.T) {
	svc, _, _ := newCourseService()
	thumb := &fakeAttachment{path: "/uploads/thumbnails/x.png"}
	_, err := svc.Update(context.Background(), "missing", Fields{"title": "Whatever"}, thumb)
	require.ErrorIs(t, err, ErrCourseNotFound)
	require.Zero(t, thumb.stored)
}

func TestDeleteCourse(t *testing.T) {
	svc, repo, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "missing"), ErrCourseNotFound)
	list, _ := repo.List(ctx)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, c.ID))
	list, _ = repo.List(ctx)
	require.Empty(t, list)
	_, err = svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func validVideoInput() Fields {
	return Fields{
		"title":       "Opening a bank account",
		"description": "What to bring and what to ask.",
		"duration":    "12",
	}
}

func TestAddVideoAppendsAtEnd(t *testing.T) {
	svc, _, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)

	first, err := svc.AddVideo(ctx, c.ID, validVideoInput(), &fakeAttachment{path: "/uploads/videos/1.mp4"})
	require.NoError(t, err)
	second, err := svc.AddVideo(ctx, c.ID, validVideoInput(), &fakeAttachment{path: "/uploads/videos/2.mp4"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, "/uploads/videos/2.mp4", second.VideoURL)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 2)
	require.Equal(t, second.ID, got.Videos[1].ID)
}

func TestAddVideoValidation(t *testing.T) {
	svc, _, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)

	_, err = svc.AddVideo(ctx, c.ID, Fields{"title": "Intro"}, nil)
	fields := validationFields(t, err)
	require.ElementsMatch(t, []string{"description", "duration", "video"}, keys(fields))

	file := &fakeAttachment{path: "/uploads/videos/x.mp4"}
	in := validVideoInput()
	in["duration"] = "-1"
	_, err = svc.AddVideo(ctx, c.ID, in, file)
	require.Equal(t, []string{"duration"}, keys(validationFields(t, err)))
	require.Zero(t, file.stored)

	_, err = svc.AddVideo(ctx, "missing", validVideoInput(), file)
	require.ErrorIs(t, err, ErrCourseNotFound)

	got, _ := svc.Get(ctx, c.ID)
	require.Empty(t, got.Videos)
}

func TestUpdateAndDeleteVideo(t *testing.T) {
	svc, _, clk := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)
	v, err := svc.AddVideo(ctx, c.ID, validVideoInput(), &fakeAttachment{path: "/uploads/videos/1.mp4"})
	require.NoError(t, err)

	clk.advance()
	updated, err := svc.UpdateVideo(ctx, c.ID, v.ID, Fields{"duration": "15"}, nil)
	require.NoError(t, err)
	require.Equal(t, 15, updated.Duration)
	require.Equal(t, v.Title, updated.Title)
	require.Equal(t, v.VideoURL, updated.VideoURL)
	require.Equal(t, clk.t, updated.UpdatedAt)
	require.Equal(t, v.CreatedAt, updated.CreatedAt)

	_, err = svc.UpdateVideo(ctx, c.ID, "missing", Fields{"duration": "15"}, nil)
	require.ErrorIs(t, err, ErrVideoNotFound)
	_, err = svc.UpdateVideo(ctx, "missing", v.ID, Fields{"duration": "15"}, nil)
	require.ErrorIs(t, err, ErrCourseNotFound)

	require.ErrorIs(t, svc.DeleteVideo(ctx, c.ID, "missing"), ErrVideoNotFound)
	require.ErrorIs(t, svc.DeleteVideo(ctx, "missing", v.ID), ErrCourseNotFound)
	require.NoError(t, svc.DeleteVideo(ctx, c.ID, v.ID))

	got, _ := svc.Get(ctx, c.ID)
	require.Empty(t, got.Videos)
}

type fakeIndex struct {
	indexed map[string]bool
	hits    []string
}

func (f *fakeIndex) Index(_ context.Context, c *entity.Course) error {
	f.indexed[c.ID] = true
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int) ([]string, error) {
	return f.hits, nil
}

func TestSearchUsesIndexAndSkipsStaleHits(t *testing.T) {
	svc, _, _ := newCourseService()
	idx := &fakeIndex{indexed: map[string]bool{}}
	svc.Index = idx
	ctx := context.Background()

	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)
	require.True(t, idx.indexed[c.ID])

	idx.hits = []string{"stale", c.ID}
	found, err := svc.Search(ctx, "money", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, c.ID, found[0].ID)

	require.NoError(t, svc.Delete(ctx, c.ID))
	require.False(t, idx.indexed[c.ID])
}

func TestSearchWithoutIndexIsEmpty(t *testing.T) {
	svc, _, _ := newCourseService()
	found, err := svc.Search(context.Background(), "money", 10)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Empty(t, found)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// gatedAttachment parks Store until release is closed.
type gatedAttachment struct {
	path    string
	entered chan struct{}
	release chan struct{}
}

func newGatedAttachment(path string) *gatedAttachment {
	return &gatedAttachment{path: path, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedAttachment) Store(context.Context) (string, error) {
	close(g.entered)
	<-g.release
	return g.path, nil
}

func TestConcurrentCourseUpdatesKeepBothChanges(t *testing.T) {
	svc, _, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)

	thumb := newGatedAttachment("/uploads/thumbnails/a.png")
	done := make(chan error, 1)
	go func() {
		_, err := svc.Update(ctx, c.ID, Fields{"title": "Title From A"}, thumb)
		done <- err
	}()
	<-thumb.entered

	_, err = svc.Update(ctx, c.ID, Fields{"price": "5"}, nil)
	require.NoError(t, err)

	close(thumb.release)
	require.NoError(t, <-done)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Title From A", got.Title)
	require.Equal(t, 5.0, got.Price)
	require.NotNil(t, got.Thumbnail)
	require.Equal(t, "/uploads/thumbnails/a.png", *got.Thumbnail)
}

func TestConcurrentVideoUpdatesKeepBothChanges(t *testing.T) {
	svc, _, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)
	v, err := svc.AddVideo(ctx, c.ID, validVideoInput(), &fakeAttachment{path: "/uploads/videos/old.mp4"})
	require.NoError(t, err)

	file := newGatedAttachment("/uploads/videos/new.mp4")
	done := make(chan error, 1)
	go func() {
		_, err := svc.UpdateVideo(ctx, c.ID, v.ID, Fields{}, file)
		done <- err
	}()
	<-file.entered

	_, err = svc.UpdateVideo(ctx, c.ID, v.ID, Fields{"title": "Savings accounts explained"}, nil)
	require.NoError(t, err)

	close(file.release)
	require.NoError(t, <-done)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 1)
	require.Equal(t, "Savings accounts explained", got.Videos[0].Title)
	require.Equal(t, "/uploads/videos/new.mp4", got.Videos[0].VideoURL)
}

func TestUpdateOfCourseDeletedMidRequest(t *testing.T) {
	svc, _, _ := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)

	thumb := newGatedAttachment("/uploads/thumbnails/late.png")
	done := make(chan error, 1)
	go func() {
		_, err := svc.Update(ctx, c.ID, Fields{"title": "Too Late"}, thumb)
		done <- err
	}()
	<-thumb.entered
	require.NoError(t, svc.Delete(ctx, c.ID))
	close(thumb.release)

	require.ErrorIs(t, <-done, ErrCourseNotFound)
	_, err = svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDeleteVideoStampsCourseWithServiceClock(t *testing.T) {
	svc, _, clk := newCourseService()
	ctx := context.Background()
	c, err := svc.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)
	v, err := svc.AddVideo(ctx, c.ID, validVideoInput(), &fakeAttachment{path: "/uploads/videos/1.mp4"})
	require.NoError(t, err)

	clk.advance()
	require.NoError(t, svc.DeleteVideo(ctx, c.ID, v.ID))

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, got.Videos)
	require.True(t, got.UpdatedAt.Equal(clk.t), "updatedAt %s, want %s", got.UpdatedAt, clk.t)
}
