// Package webapi exposes the brand kit REST surface.
package webapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"brandkit-server-go/internal/domain/auth"
	"brandkit-server-go/internal/domain/brandkit"
	"brandkit-server-go/internal/domain/export"
	"brandkit-server-go/internal/domain/generation"
	"brandkit-server-go/internal/domain/imageresolver"
	"brandkit-server-go/internal/platform/config"
	"brandkit-server-go/internal/platform/errors"
	"brandkit-server-go/internal/platform/logging"
	"brandkit-server-go/internal/platform/objectstore"
	"brandkit-server-go/internal/platform/storage"
)

// Service is the HTTP transport over the brand kit domain services.
type Service struct {
	config    *config.Config
	logger    *logging.Logger
	auth      *auth.Manager
	users     *storage.UserRepository
	kits      *brandkit.Service
	generator *generation.Service
	assembler *export.Assembler
	resolver  *imageresolver.Resolver
	store     *objectstore.Store
}

// Options collects the dependencies the API surface needs.
type Options struct {
	Config    *config.Config
	Logger    *logging.Logger
	Auth      *auth.Manager
	Users     *storage.UserRepository
	Kits      *brandkit.Service
	Generator *generation.Service
	Assembler *export.Assembler
	Resolver  *imageresolver.Resolver
	Store     *objectstore.Store
}

// NewService validates dependencies and builds the transport service.
func NewService(opts Options) (*Service, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.KindConfig, "webapi.new", "config is required")
	}
	if opts.Logger == nil {
		return nil, errors.New(errors.KindConfig, "webapi.new", "logger is required")
	}
	if opts.Auth == nil || opts.Users == nil || opts.Kits == nil {
		return nil, errors.New(errors.KindConfig, "webapi.new", "auth, users and kits services are required")
	}

	return &Service{
		config:    opts.Config,
		logger:    opts.Logger,
		auth:      opts.Auth,
		users:     opts.Users,
		kits:      opts.Kits,
		generator: opts.Generator,
		assembler: opts.Assembler,
		resolver:  opts.Resolver,
		store:     opts.Store,
	}, nil
}

// Register mounts the public and secured API routes.
func (s *Service) Register(ctx context.Context, api, secured *gin.RouterGroup) error {
	api.GET("/health", s.handleHealth)
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	if secured == nil {
		return errors.New(errors.KindTransport, "webapi.register", "secured route group is required")
	}

	secured.POST("/auth/logout", s.handleLogout)
	secured.GET("/auth/me", s.handleMe)

	secured.GET("/kits", s.handleKitList)
	secured.POST("/kits", s.handleKitCreate)
	secured.GET("/kits/:id", s.handleKitGet)
	secured.DELETE("/kits/:id", s.handleKitDelete)
	secured.POST("/kits/:id/advance", s.handleKitAdvance)
	secured.PUT("/kits/:id/palette", s.handleKitSetPalette)
	secured.PUT("/kits/:id/typography", s.handleKitSetTypography)
	secured.POST("/kits/:id/logo/select", s.handleKitSelectLogo)
	secured.POST("/kits/:id/logo/upload", s.handleKitUploadLogo)

	secured.POST("/kits/:id/generate/concepts", s.handleGenerateConcepts)
	secured.POST("/kits/:id/generate/tagline", s.handleGenerateTagline)

	secured.POST("/kits/:id/resolve", s.handleResolveImage)
	secured.POST("/kits/:id/export", s.handleExport)

	secured.GET("/system/status", s.handleSystemStatus)

	s.logger.InfoTag("HTTP", "brand kit API routes registered")
	return nil
}

func (s *Service) handleHealth(c *gin.Context) {
	s.respondSuccess(c, http.StatusOK, nil, "service is running")
}
