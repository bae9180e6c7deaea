package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brandkit-server-go/internal/domain/imageresolver"
)

type resolveRequest struct {
	Source    string `json:"source"`
	Thumbnail bool   `json:"thumbnail"`
	Fallback  string `json:"fallback"`
}

// handleResolveImage resolves an image reference to a displayable URL on
// behalf of the frontend, using the server-side probe and cache.
func (s *Service) handleResolveImage(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	if s.resolver == nil {
		s.respondError(c, http.StatusServiceUnavailable, "image resolution is not configured")
		return
	}

	// Ownership check keeps one user from probing another's asset refs.
	if _, err := s.kits.Get(c.Request.Context(), ownerID, kitID); err != nil {
		s.respondDomainError(c, err)
		return
	}

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid resolve payload")
		return
	}

	result := s.resolver.Display(c.Request.Context(), imageresolver.Request{
		Source:    req.Source,
		Thumbnail: req.Thumbnail,
		Fallback:  req.Fallback,
	})

	s.respondSuccess(c, http.StatusOK, gin.H{
		"state": result.State.String(),
		"url":   result.URL,
	}, "")
}
