package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// api routes
	PingURL       = "/ping"
	RenderURL     = "/render"
	PostsURL      = "/posts"
	PostURL       = "/:post_id"
	PostRenderURL = "/:post_id/render"
)

// Establishes HTTP router.
func (service *Service) setupRouter(server *http.Server) {
	router := gin.Default()

	router.Use(service.corsMiddleware())

	router.GET(PingURL, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	// the reader is identified when the token is present, guests are welcome
	viewerGroup := router.Group("/").Use(optionalAuthMiddleware(service.tokenMaker))
	viewerGroup.POST(RenderURL, service.renderText)

	// only the authenticated users can write
	authGroup := router.Group("/").Use(authMiddleware(service.tokenMaker))
	authGroup.POST(PostsURL, service.createPost)

	// public routes where post id is checked
	postGroup := router.Group(PostsURL).
		Use(optionalAuthMiddleware(service.tokenMaker)).
		Use(service.postIDMiddleware())
	postGroup.GET(PostURL, service.getPost)
	postGroup.GET(PostRenderURL, service.renderPost)

	server.Handler = router
	service.router = router
}
