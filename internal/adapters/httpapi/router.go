package httpapi

import (
	"context"
	"io/fs"
	"net/http"
	"path"
	"strings"

	postPort "postboard/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostUseCase is the inbound port the controllers drive.
type PostUseCase interface {
	ListPosts(ctx context.Context) ([]*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	CreatePost(ctx context.Context, username, content string) (*postPort.PostDTO, error)
	UpdatePostContent(ctx context.Context, id, content string) (*postPort.PostDTO, error)
}

type Options struct {
	Logger *zap.Logger
	// ViewsDir and PublicDir replace the embedded templates and assets when set.
	ViewsDir  string
	PublicDir string
}

// SetupRoutes wires the post routes. The returned handler applies method
// override before gin sees the request.
func SetupRoutes(postUC PostUseCase, opts Options) (http.Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	views, err := loadViews(opts.ViewsDir)
	if err != nil {
		return nil, err
	}
	assets, err := publicFiles(opts.PublicDir)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(RequestLogger(logger), Recovery(logger))
	r.SetHTMLTemplate(views)

	pc := NewPostController(postUC)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, postsPath) })
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.GET("/posts", pc.ListPosts)
	r.GET("/posts/new", pc.NewPostForm)
	r.POST("/posts", pc.CreatePost)
	r.GET("/posts/:id", pc.ShowPost)
	r.PATCH("/posts/:id", pc.UpdatePost)
	r.GET("/posts/:id/edit", pc.EditPostForm)

	r.NoRoute(staticOrNotFound(assets))

	return MethodOverride(r), nil
}

// staticOrNotFound serves files from assets at the site root and renders the
// not-found page for everything else.
func staticOrNotFound(assets fs.FS) gin.HandlerFunc {
	files := http.FS(assets)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			name := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
			if info, err := fs.Stat(assets, name); err == nil && info.Mode().IsRegular() {
				c.FileFromFS(name, files)
				return
			}
		}
		c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{
			"Title": "Not found",
			"Path":  c.Request.URL.Path,
		})
	}
}
