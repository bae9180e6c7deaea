package webapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"brandkit-server-go/internal/domain/brandkit"
	"brandkit-server-go/internal/domain/eventbus"
	"brandkit-server-go/internal/domain/export"
)

type exportRequest struct {
	IncludeLogos   *bool `json:"include_logos"`
	IncludeGallery *bool `json:"include_gallery"`
}

func (s *Service) handleExport(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	if s.assembler == nil {
		s.respondError(c, http.StatusServiceUnavailable, "export is not configured")
		return
	}

	opts := export.DefaultOptions()
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		if req.IncludeLogos != nil {
			opts.IncludeLogos = *req.IncludeLogos
		}
		if req.IncludeGallery != nil {
			opts.IncludeGallery = *req.IncludeGallery
		}
	}

	kit, err := s.kits.Get(c.Request.Context(), ownerID, kitID)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	result, err := s.assembler.Assemble(c.Request.Context(), brandkit.ExportModel(kit), opts)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	eventbus.Publish(eventbus.EventExportCompleted, eventbus.ExportEventData{
		KitID:        kit.ID,
		UserID:       ownerID,
		ArchiveBytes: len(result.Archive),
		SkippedCount: len(result.Skipped),
	})

	skipped, _ := json.Marshal(result.Skipped)
	filename := archiveFilename(kit.Name)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Export-Skipped", string(skipped))
	c.Data(http.StatusOK, "application/zip", result.Archive)
}

// archiveFilename derives a safe download name from the kit name.
func archiveFilename(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "brand-kit"
	}
	return slug + "-brand-kit.zip"
}
