package webapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brandkit-server-go/internal/domain/auth"
	"brandkit-server-go/internal/domain/brandkit"
	"brandkit-server-go/internal/domain/image"
)

const maxUploadBytes = 20 << 20

type kitCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
}

type assetView struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Data      string `json:"data,omitempty"`
	URL       string `json:"url,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	Position  int    `json:"position"`
	CreatedAt int64  `json:"created_at"`
}

type kitView struct {
	ID              uint                `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Industry        string              `json:"industry,omitempty"`
	Step            string              `json:"step"`
	Palette         brandkit.Palette    `json:"palette"`
	Typography      brandkit.Typography `json:"typography"`
	Assets          []assetView         `json:"assets"`
	SelectedLogoID  string              `json:"selected_logo_id,omitempty"`
	UploadedLogoRef string              `json:"uploaded_logo_ref,omitempty"`
	CreatedAt       int64               `json:"created_at"`
	UpdatedAt       int64               `json:"updated_at"`
}

func viewOf(kit *brandkit.BrandKit) kitView {
	view := kitView{
		ID:              kit.ID,
		Name:            kit.Name,
		Description:     kit.Description,
		Industry:        kit.Industry,
		Step:            string(kit.Step),
		Palette:         kit.Palette,
		Typography:      kit.Typography,
		SelectedLogoID:  kit.SelectedLogoID,
		UploadedLogoRef: kit.UploadedLogoRef,
		CreatedAt:       kit.CreatedAt.Unix(),
		UpdatedAt:       kit.UpdatedAt.Unix(),
	}
	for _, asset := range kit.Assets {
		view.Assets = append(view.Assets, assetView{
			ID:        asset.ID,
			Kind:      string(asset.Kind),
			Data:      asset.Data,
			URL:       asset.URL,
			Prompt:    asset.Prompt,
			Position:  asset.Position,
			CreatedAt: asset.CreatedAt.Unix(),
		})
	}
	return view
}

// requestIdentity extracts the authenticated user and the kit id path param.
func (s *Service) requestIdentity(c *gin.Context) (ownerID, kitID uint, ok bool) {
	ownerID, authed := auth.UserID(c)
	if !authed {
		s.respondError(c, http.StatusUnauthorized, "not authenticated")
		return 0, 0, false
	}
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid kit id")
		return 0, 0, false
	}
	return ownerID, uint(parsed), true
}

func (s *Service) handleKitList(c *gin.Context) {
	ownerID, ok := auth.UserID(c)
	if !ok {
		s.respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	kits, err := s.kits.List(c.Request.Context(), ownerID)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	views := make([]kitView, 0, len(kits))
	for _, kit := range kits {
		views = append(views, viewOf(kit))
	}
	s.respondSuccess(c, http.StatusOK, views, "")
}

func (s *Service) handleKitCreate(c *gin.Context) {
	ownerID, ok := auth.UserID(c)
	if !ok {
		s.respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	var req kitCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	kit, err := s.kits.CreateDraft(c.Request.Context(), ownerID, req.Name, req.Description, req.Industry)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusCreated, viewOf(kit), "brand kit created")
}

func (s *Service) handleKitGet(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	kit, err := s.kits.Get(c.Request.Context(), ownerID, kitID)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, viewOf(kit), "")
}

func (s *Service) handleKitDelete(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	if err := s.kits.Delete(c.Request.Context(), ownerID, kitID); err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, nil, "brand kit deleted")
}

func (s *Service) handleKitAdvance(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	kit, err := s.kits.Advance(c.Request.Context(), ownerID, kitID)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, viewOf(kit), "step advanced")
}

func (s *Service) handleKitSetPalette(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	var palette brandkit.Palette
	if err := c.ShouldBindJSON(&palette); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid palette payload")
		return
	}
	kit, err := s.kits.SetPalette(c.Request.Context(), ownerID, kitID, palette)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, viewOf(kit), "palette saved")
}

func (s *Service) handleKitSetTypography(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	var typography brandkit.Typography
	if err := c.ShouldBindJSON(&typography); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid typography payload")
		return
	}
	kit, err := s.kits.SetTypography(c.Request.Context(), ownerID, kitID, typography)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, viewOf(kit), "typography saved")
}

func (s *Service) handleKitSelectLogo(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	var req struct {
		AssetID string `json:"asset_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "asset_id is required")
		return
	}
	kit, err := s.kits.SelectLogo(c.Request.Context(), ownerID, kitID, req.AssetID)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, viewOf(kit), "logo selected")
}

func (s *Service) handleKitUploadLogo(c *gin.Context) {
	ownerID, kitID, ok := s.requestIdentity(c)
	if !ok {
		return
	}
	if s.store == nil {
		s.respondError(c, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "file field is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "cannot read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "cannot read upload")
		return
	}
	info, err := image.Validate(data, maxUploadBytes)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "upload is not a supported image")
		return
	}

	filename := fmt.Sprintf("kits/%d/uploads/%s.%s", kitID, uuid.NewString(), image.Extension(info.Format))
	url, err := s.store.Upload(c.Request.Context(), filename, "image/"+info.Format, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	kit, err := s.kits.SetUploadedLogo(c.Request.Context(), ownerID, kitID, url)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, viewOf(kit), "logo uploaded")
}
