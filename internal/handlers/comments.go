package handlers

import (
	"context"
	"net/http"
	"strconv"

	"aoa/internal/middleware"
	"aoa/internal/models"
	"aoa/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentCreator interface {
	Create(ctx context.Context, in services.CreateCommentInput) (*models.Comment, error)
}

type Reactor interface {
	React(ctx context.Context, commentID, userID string, value int) (*services.ReactionResult, error)
}

type Reporter interface {
	Create(ctx context.Context, reporterID, itemType, itemID, reason string) (*models.Report, error)
}

type CommentHandler struct {
	comments  CommentCreator
	reactions Reactor
	reports   Reporter
	log       *zap.SugaredLogger
}

func NewCommentHandler(comments CommentCreator, reactions Reactor, reports Reporter, log *zap.SugaredLogger) *CommentHandler {
	return &CommentHandler{comments: comments, reactions: reactions, reports: reports, log: log}
}

// Create posts a comment or reply and sends the viewer back to the thread.
// Rejections travel as a flash message.
func (h *CommentHandler) Create(c *gin.Context) {
	postID := c.Param("id")
	in := services.CreateCommentInput{
		PostID:   postID,
		AuthorID: middleware.ViewerID(c),
		ParentID: c.PostForm("parent_id"),
		Body:     c.PostForm("body"),
		Side:     -1,
	}
	if side, err := strconv.Atoi(c.PostForm("side")); err == nil {
		in.Side = side
	}

	comment, err := h.comments.Create(c.Request.Context(), in)
	if err != nil {
		code := errorStatus(err)
		if code == http.StatusInternalServerError {
			h.log.Errorw("create comment", "post_id", postID, "error", err)
		}
		if code == http.StatusNotFound && in.ParentID == "" {
			RenderError(c, code, "Post not found.")
			return
		}
		flash(c, msg(err))
		redirect(c, "/post/"+postID)
		return
	}
	redirect(c, "/post/"+postID+"#c-"+comment.ID)
}

func (h *CommentHandler) React(c *gin.Context) {
	value, err := strconv.Atoi(c.PostForm("value"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Reaction must be +1 or -1."})
		return
	}

	res, err := h.reactions.React(c.Request.Context(), c.Param("id"), middleware.ViewerID(c), value)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) Report(c *gin.Context) {
	report, err := h.reports.Create(c.Request.Context(), middleware.ViewerID(c),
		c.PostForm("item_type"), c.PostForm("item_id"), c.PostForm("reason"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	h.log.Infow("report filed", "report_id", report.ID, "item_type", report.ItemType, "item_id", report.ItemID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": "Thanks, a moderator will take a look."})
}
