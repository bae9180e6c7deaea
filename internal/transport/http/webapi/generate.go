package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brandkit-server-go/internal/domain/brandkit"
	"brandkit-server-go/internal/domain/generation"
)

type generateConceptsRequest struct {
	Count int `json:"count"`
}

func (s *Service) handleGenerateConcepts(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	if s.generator == nil {
		s.respondError(c, http.StatusServiceUnavailable, "generation is not configured")
		return
	}

	var req generateConceptsRequest
	_ = c.ShouldBindJSON(&req)

	kit, err := s.kits.Get(c.Request.Context(), ownerID, kitID)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	result, err := s.generator.GenerateConcepts(c.Request.Context(), generation.ConceptRequest{
		KitID:       kit.ID,
		UserID:      ownerID,
		KitName:     kit.Name,
		Industry:    kit.Industry,
		Description: kit.Description,
		Count:       req.Count,
	})
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	assets := make([]brandkit.Asset, 0, len(result.Concepts))
	for _, concept := range result.Concepts {
		assets = append(assets, brandkit.Asset{
			Kind:   brandkit.AssetLogo,
			Data:   concept.Data,
			Prompt: concept.Prompt,
		})
	}
	kit, err = s.kits.AttachAssets(c.Request.Context(), ownerID, kitID, assets)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	s.respondSuccess(c, http.StatusOK, gin.H{
		"kit":    viewOf(kit),
		"failed": result.Failed,
	}, "concepts generated")
}

func (s *Service) handleGenerateTagline(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	if s.generator == nil {
		s.respondError(c, http.StatusServiceUnavailable, "generation is not configured")
		return
	}

	kit, err := s.kits.Get(c.Request.Context(), ownerID, kitID)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	tagline, err := s.generator.SuggestTagline(c.Request.Context(), kit.Name, kit.Industry, kit.Description)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, gin.H{"tagline": tagline}, "")
}
