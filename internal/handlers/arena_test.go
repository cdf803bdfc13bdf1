package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"

	"aoa/internal/models"
	"aoa/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubArena struct {
	err error
}

func (s *stubArena) Arena(_ context.Context, viewerID string) (*services.ArenaPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	cards := []services.PostCard{{Post: models.Post{ID: "p1"}}, {Post: models.Post{ID: "p2"}}}
	return &services.ArenaPage{Identity: viewerID, Feed: services.InterleaveFeed(cards, nil, 3)}, nil
}

func (s *stubArena) Post(_ context.Context, postID, _ string) (*services.PostPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.PostPage{Card: services.PostCard{Post: models.Post{ID: postID}}, Thread: &services.Thread{}}, nil
}

type stubPosts struct {
	err       error
	got       services.CreatePostInput
	gotOwner  string
	gotMedia  string
	deleted   []string
	deleteErr error
}

func (s *stubPosts) Create(_ context.Context, ownerID string, in services.CreatePostInput) (*models.Post, error) {
	s.got = in
	s.gotOwner = ownerID
	if in.Media != nil {
		b, _ := io.ReadAll(in.Media.Body)
		s.gotMedia = string(b)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.Post{ID: "new-post"}, nil
}

func (s *stubPosts) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

type stubVotes struct {
	err error
}

func (s *stubVotes) Cast(_ context.Context, _, _ string, choice int) (services.Tally, error) {
	if s.err != nil {
		return services.Tally{}, s.err
	}
	if choice == models.ChoiceLeft {
		return services.Tally{Left: 18, Right: 7}, nil
	}
	return services.Tally{Left: 7, Right: 18}, nil
}

func arenaRoutes(arena *stubArena, posts *stubPosts, votes *stubVotes) http.Handler {
	r := newTestEngine(alice)
	h := NewArenaHandler(arena, posts, votes, testLog)
	r.GET("/arena", h.Arena)
	r.GET("/post/:id", h.Post)
	r.GET("/create", h.ShowCreate)
	r.POST("/create", h.Create)
	r.POST("/post/:id/vote", h.Vote)
	return r
}

func TestArenaPage(t *testing.T) {
	w := get(arenaRoutes(&stubArena{}, &stubPosts{}, &stubVotes{}), "/arena")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "arena items=2")

	w = get(arenaRoutes(&stubArena{err: errors500}, &stubPosts{}, &stubVotes{}), "/arena")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), genericError)
}

func TestPostPage(t *testing.T) {
	w := get(arenaRoutes(&stubArena{}, &stubPosts{}, &stubVotes{}), "/post/abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post abc")

	w = get(arenaRoutes(&stubArena{err: services.ErrNotFound}, &stubPosts{}, &stubVotes{}), "/post/abc")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found.")
}

func TestVote(t *testing.T) {
	r := arenaRoutes(&stubArena{}, &stubPosts{}, &stubVotes{})

	w := postForm(r, "/post/p1/vote", url.Values{"choice": {"0"}})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tally    services.TallySummary `json:"tally"`
		MyChoice int                   `json:"my_choice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 25, body.Tally.Total)
	assert.InDelta(t, 0.72, body.Tally.LeftRatio, 1e-9)
	assert.Equal(t, services.LeftDominant, body.Tally.Dominance)
	assert.Equal(t, 0, body.MyChoice)

	w = postForm(r, "/post/p1/vote", url.Values{"choice": {"left"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postForm(arenaRoutes(&stubArena{}, &stubPosts{}, &stubVotes{err: services.ErrNotFound}), "/post/p1/vote", url.Values{"choice": {"1"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found."}`, w.Body.String())
}

func multipartCreate(t *testing.T, fields map[string]string, filename, contentType, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="media"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreatePostWithMedia(t *testing.T) {
	posts := &stubPosts{}
	r := arenaRoutes(&stubArena{}, posts, &stubVotes{})

	req := multipartCreate(t, map[string]string{"prompt": "Cats or dogs?", "left_label": "Cats", "right_label": "Dogs"}, "pet.png", "image/png", "png-bytes")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/post/new-post", w.Header().Get("Location"))
	assert.Equal(t, "alice", posts.gotOwner)
	assert.Equal(t, "Cats", posts.got.LeftLabel)
	require.NotNil(t, posts.got.Media)
	assert.Equal(t, "pet.png", posts.got.Media.Filename)
	assert.Equal(t, "image/png", posts.got.Media.ContentType)
	assert.Equal(t, int64(len("png-bytes")), posts.got.Media.Size)
	assert.Equal(t, "png-bytes", posts.gotMedia)
}

func TestCreatePostRejected(t *testing.T) {
	posts := &stubPosts{err: &services.ValidationError{Field: "prompt", Message: "Prompt is required."}}
	r := arenaRoutes(&stubArena{}, posts, &stubVotes{})

	req := multipartCreate(t, map[string]string{"prompt": ""}, "", "", "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "error=Prompt is required.")
	assert.Nil(t, posts.got.Media)
}
