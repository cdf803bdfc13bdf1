package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"aoa/internal/middleware"
	"aoa/internal/models"
	"aoa/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ArenaReader interface {
	Arena(ctx context.Context, viewerID string) (*services.ArenaPage, error)
	Post(ctx context.Context, postID, viewerID string) (*services.PostPage, error)
}

type PostCreator interface {
	Create(ctx context.Context, ownerID string, in services.CreatePostInput) (*models.Post, error)
}

type VoteCaster interface {
	Cast(ctx context.Context, postID, voterID string, choice int) (services.Tally, error)
}

type ArenaHandler struct {
	arena ArenaReader
	posts PostCreator
	votes VoteCaster
	log   *zap.SugaredLogger
}

func NewArenaHandler(arena ArenaReader, posts PostCreator, votes VoteCaster, log *zap.SugaredLogger) *ArenaHandler {
	return &ArenaHandler{arena: arena, posts: posts, votes: votes, log: log}
}

func (h *ArenaHandler) Arena(c *gin.Context) {
	page, err := h.arena.Arena(c.Request.Context(), middleware.ViewerID(c))
	if err != nil {
		failPage(c, h.log, err)
		return
	}
	Render(c, http.StatusOK, "arena.html", gin.H{"Page": page, "Flashes": takeFlashes(c)})
}

func (h *ArenaHandler) Post(c *gin.Context) {
	page, err := h.arena.Post(c.Request.Context(), c.Param("id"), middleware.ViewerID(c))
	if errors.Is(err, services.ErrNotFound) {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}
	if err != nil {
		failPage(c, h.log, err)
		return
	}
	Render(c, http.StatusOK, "post.html", gin.H{"Page": page, "Flashes": takeFlashes(c)})
}

func (h *ArenaHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "create.html", gin.H{
		"LeftLabel":  models.DefaultLeftLabel,
		"RightLabel": models.DefaultRightLabel,
	})
}

// formUpload opens the named multipart file; nil when none was sent.
func formUpload(c *gin.Context, field string) (*services.Upload, func(), error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*services.Upload, func(), error) {
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

func (h *ArenaHandler) Create(c *gin.Context) {
	in := services.CreatePostInput{
		Prompt:     c.PostForm("prompt"),
		LeftLabel:  c.PostForm("left_label"),
		RightLabel: c.PostForm("right_label"),
	}
	form := gin.H{"Prompt": in.Prompt, "LeftLabel": in.LeftLabel, "RightLabel": in.RightLabel}

	media, closeMedia, err := formUpload(c, "media")
	if err != nil {
		form["Error"] = "Could not read the uploaded file."
		Render(c, http.StatusBadRequest, "create.html", form)
		return
	}
	defer closeMedia()
	in.Media = media

	post, err := h.posts.Create(c.Request.Context(), middleware.ViewerID(c), in)
	if err != nil {
		code := errorStatus(err)
		if code == http.StatusInternalServerError {
			h.log.Errorw("create post", "error", err)
		}
		form["Error"] = msg(err)
		Render(c, code, "create.html", form)
		return
	}
	redirect(c, "/post/"+post.ID)
}

// Vote answers with the fresh tally so the page can redraw the bar.
func (h *ArenaHandler) Vote(c *gin.Context) {
	choice, err := strconv.Atoi(c.PostForm("choice"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Choice must be 0 or 1."})
		return
	}

	tally, err := h.votes.Cast(c.Request.Context(), c.Param("id"), middleware.ViewerID(c), choice)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tally": tally.Summary(), "my_choice": choice})
}
