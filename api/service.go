package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	db "github.com/Drolfothesgnir/bbpost/db/sqlc"
	"github.com/Drolfothesgnir/bbpost/tmpstore"
	"github.com/Drolfothesgnir/bbpost/token"
	"github.com/Drolfothesgnir/bbpost/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// api errors
	ErrInvalidParams = errors.New("invalid params")
	ErrInvalidPostID = errors.New("invalid post id")
	ErrPostNotFound  = errors.New("post not found")
	ErrRenderFailed  = errors.New("post cannot be rendered")
	ErrInternal      = errors.New("internal server error")
)

type Service struct {
	config     util.Config
	store      db.Store
	tokenMaker token.Maker
	cache      tmpstore.Store
	server     *http.Server
	router     *gin.Engine
}

// Returns new service instance with provided config, store and render cache.
// The cache may be nil, the posts are rendered on every request then.
func NewService(
	config util.Config,
	store db.Store,
	tokenMaker token.Maker,
	cache tmpstore.Store,
) (*Service, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation(renderFormatTag, validRenderFormat); err != nil {
			return nil, err
		}
	}

	service := &Service{
		config:     config,
		store:      store,
		tokenMaker: tokenMaker,
		cache:      cache,
	}

	server := &http.Server{}

	if config.HTTPServerAddress != "" {
		addr, err := config.ListenAddress()
		if err != nil {
			return nil, err
		}
		server.Addr = addr
	}

	// caps how long a client can take to send just the headers (blocks slowloris).
	server.ReadHeaderTimeout = 5 * time.Second
	// caps time to read the full request (incl. body).
	server.ReadTimeout = 10 * time.Second
	// caps time you’ll spend writing the response (no “forever hanging” clients)
	server.WriteTimeout = 15 * time.Second
	// how long to keep idle keep-alive connections open.
	server.IdleTimeout = 60 * time.Second

	service.setupRouter(server)

	service.server = server

	return service, nil
}

// Start runs the HTTP server
func (service *Service) Start() error {
	return service.server.ListenAndServe()
}

func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}
