package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vboard/internal/models"
)

const postsPerPage = 10

var (
	errPostNotFound = errors.New("post not found")
	errAlreadyLiked = errors.New("already liked")
)

type CreatePostInput struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"content" binding:"required"`
}

type CreateCommentInput struct {
	Body     string `json:"content" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return uint(id), true
}

// ListPosts returns one page of visible posts, newest first. Pages are
// 1-based; anything below that is clamped. Past the last page the result is
// simply empty, which clients read as "no more pages".
func (e *Env) ListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * postsPerPage

	posts := make([]models.Post, 0, postsPerPage)
	if err := e.DB.Where("visible = ?", true).
		Order("created_at desc, id desc").
		Offset(offset).Limit(postsPerPage).
		Find(&posts).Error; err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost looks a post up by id regardless of visibility: a direct link to a
// soft-deleted post still resolves.
func (e *Env) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var post models.Post
	if err := e.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Printf("Error fetching post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// IncrementViews bumps the view counter. No auth, no dedup: repeated calls
// keep counting.
func (e *Env) IncrementViews(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := e.DB.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		log.Printf("Error incrementing views: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment views"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Views incremented successfully"})
}

func (e *Env) CreatePost(c *gin.Context) {
	user, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	post := models.Post{
		Author:  user.Username,
		Title:   input.Title,
		Body:    input.Body,
		Visible: true,
	}
	if err := e.DB.Create(&post).Error; err != nil {
		log.Printf("Error creating post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	e.broadcast(WsMessage{Type: "new_post", Data: post})
	c.JSON(http.StatusCreated, post)
}

// EditPost updates title and body through an ownership-gated update. A miss
// means either the post does not exist or the caller is not its author; the
// two are deliberately indistinguishable.
func (e *Env) EditPost(c *gin.Context) {
	user, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	tx := e.DB.Model(&models.Post{}).
		Where("id = ? AND author = ?", id, user.Username).
		Updates(map[string]interface{}{"title": input.Title, "body": input.Body})
	if tx.Error != nil {
		log.Printf("Error updating post: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

// DeletePost hides a post rather than removing it; the row stays behind for
// direct-by-id lookups.
func (e *Env) DeletePost(c *gin.Context) {
	user, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	tx := e.DB.Model(&models.Post{}).
		Where("id = ? AND author = ?", id, user.Username).
		Update("visible", false)
	if tx.Error != nil {
		log.Printf("Error deleting post: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	e.broadcast(WsMessage{Type: "delete", Data: gin.H{"id": id}})
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// LikePost records a like and bumps the counter in one transaction, so the
// pair either fully applies or not at all. The composite unique index on
// (post_id, username) keeps the like at-most-once even if two requests race
// past the pre-check.
func (e *Env) LikePost(c *gin.Context) {
	user, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	var likes int
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPostNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.PostLike{}).
			Where("post_id = ? AND username = ?", id, user.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errAlreadyLiked
		}

		like := models.PostLike{PostID: id, Username: user.Username}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyLiked
			}
			return err
		}

		if err := tx.Model(&post).UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
			return err
		}
		likes = post.Likes + 1
		return nil
	})

	switch {
	case errors.Is(err, errAlreadyLiked):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already liked this post"})
		return
	case errors.Is(err, errPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case err != nil:
		log.Printf("Error in like transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	e.broadcast(WsMessage{Type: "like", Data: gin.H{"id": id, "likes": likes}})
	c.JSON(http.StatusOK, gin.H{"message": "Liked successfully", "likes": likes})
}

// AddComment appends a comment to a post. A parentId, when given, nests the
// comment under another one; the reference is stored as supplied.
func (e *Env) AddComment(c *gin.Context) {
	user, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	comment := models.Comment{
		PostID:   id,
		Author:   user.Username,
		Body:     input.Body,
		ParentID: input.ParentID,
	}
	if err := e.DB.Create(&comment).Error; err != nil {
		log.Printf("Error creating comment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added successfully", "id": comment.ID})
}

// ListComments returns a post's comments oldest first, the order a thread is
// read in.
func (e *Env) ListComments(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	comments := make([]models.Comment, 0)
	if err := e.DB.Where("post_id = ?", id).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		log.Printf("Error fetching comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// IsOwner tells an authenticated caller whether they authored a post, so the
// client can decide to show edit and delete controls. Visibility is ignored.
func (e *Env) IsOwner(c *gin.Context) {
	user, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	var count int64
	if err := e.DB.Model(&models.Post{}).
		Where("id = ? AND author = ?", id, user.Username).
		Count(&count).Error; err != nil {
		log.Printf("Error checking ownership: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check ownership"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isOwner": count > 0})
}
