package httpapi

import (
	"errors"
	"net/http"

	postEntity "postboard/internal/core/post"

	"github.com/gin-gonic/gin"
)

const postsPath = "/posts"

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) ListPosts(c *gin.Context) {
	posts, err := ctl.pc.ListPosts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		renderError(c, http.StatusInternalServerError, "could not load posts")
		return
	}
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title": "All posts",
		"Posts": posts,
	})
}

func (ctl *PostController) NewPostForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new.tmpl", gin.H{"Title": "New post"})
}

// CreatePost accepts missing fields as empty strings.
func (ctl *PostController) CreatePost(c *gin.Context) {
	username := c.PostForm("username")
	content := c.PostForm("content")

	if _, err := ctl.pc.CreatePost(c.Request.Context(), username, content); err != nil {
		_ = c.Error(err)
		renderError(c, http.StatusInternalServerError, "could not create post")
		return
	}
	c.Redirect(http.StatusFound, postsPath)
}

func (ctl *PostController) ShowPost(c *gin.Context) {
	ctl.renderPost(c, "show.tmpl", "Post")
}

func (ctl *PostController) EditPostForm(c *gin.Context) {
	ctl.renderPost(c, "edit.tmpl", "Edit post")
}

// UpdatePost redirects to the list even when the id is unknown; the miss is logged by the service.
func (ctl *PostController) UpdatePost(c *gin.Context) {
	id := c.Param("id")
	content := c.PostForm("content")

	_, err := ctl.pc.UpdatePostContent(c.Request.Context(), id, content)
	if err != nil && !errors.Is(err, postEntity.ErrPostNotFound) {
		_ = c.Error(err)
		renderError(c, http.StatusInternalServerError, "could not update post")
		return
	}
	c.Redirect(http.StatusFound, postsPath)
}

// renderPost renders view with the post named by the :id param, or with no
// post and a 404 status when it does not exist.
func (ctl *PostController) renderPost(c *gin.Context, view, title string) {
	id := c.Param("id")

	p, err := ctl.pc.GetPost(c.Request.Context(), id)
	switch {
	case errors.Is(err, postEntity.ErrPostNotFound):
		c.HTML(http.StatusNotFound, view, gin.H{
			"Title": "Post not found",
			"ID":    id,
			"Post":  nil,
		})
	case err != nil:
		_ = c.Error(err)
		renderError(c, http.StatusInternalServerError, "could not load post")
	default:
		c.HTML(http.StatusOK, view, gin.H{
			"Title": title,
			"ID":    id,
			"Post":  p,
		})
	}
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.tmpl", gin.H{
		"Title":   "Error",
		"Message": message,
	})
	c.Abort()
}
