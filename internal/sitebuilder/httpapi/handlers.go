package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siteforge/draftsvc/internal/sitebuilder/commit"
	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
	"github.com/siteforge/draftsvc/internal/sitebuilder/draftservice"
)

// Handler holds the collaborators every route needs, in the teacher's
// Handler-struct-plus-repo style (internal/projects/http/handlers.go).
type Handler struct {
	drafts      *draftservice.Service
	coordinator *commit.Coordinator
}

func NewHandler(drafts *draftservice.Service, coordinator *commit.Coordinator) *Handler {
	return &Handler{drafts: drafts, coordinator: coordinator}
}

func (h *Handler) CreateDraft(c *gin.Context) {
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, 400, string(domain.KindInvalidInput), "malformed request body", nil)
		return
	}

	var logo *draftservice.LogoRef
	if req.Logo != nil {
		logo = &draftservice.LogoRef{AssetID: req.Logo.AssetID}
	}

	draft, err := h.drafts.CreateDraft(c.Request.Context(), draftservice.CreateDraftInput{
		BrandName:  req.BrandName,
		Industry:   draftservice.IndustryRef{Code: req.Industry.Code, Label: req.Industry.Label},
		Logo:       logo,
		TTLSeconds: req.TTLSeconds,
		Source:     c.GetHeader("X-Client-Source"),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *Handler) PatchDraft(c *gin.Context) {
	draftID := domain.DraftID(c.Param("draftId"))

	var req patchDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, 400, string(domain.KindInvalidInput), "malformed request body", nil)
		return
	}

	patch := draftservice.PatchDraftInput{
		BrandName: req.BrandName,
	}
	if req.Industry.IsSet() {
		patch.Industry = domain.Optional[draftservice.IndustryRef]{
			Present: true,
			Value:   draftservice.IndustryRef{Code: req.Industry.Value.Code, Label: req.Industry.Value.Label},
		}
	}
	if req.Logo.IsClear() {
		patch.Logo = domain.Optional[*draftservice.LogoRef]{Present: true, Null: true}
	} else if req.Logo.IsSet() {
		patch.Logo = domain.Optional[*draftservice.LogoRef]{
			Present: true,
			Value:   &draftservice.LogoRef{AssetID: req.Logo.Value.AssetID},
		}
	}

	draft, err := h.drafts.UpdateDraft(c.Request.Context(), draftID, patch)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) GetDraft(c *gin.Context) {
	draftID := domain.DraftID(c.Param("draftId"))
	draft, err := h.drafts.GetDraft(c.Request.Context(), draftID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) GetPreview(c *gin.Context) {
	draftID := domain.DraftID(c.Param("draftId"))
	mode := domain.PreviewModeHTML
	if c.Query("type") == "json" {
		mode = domain.PreviewModeJSON
	}

	result, err := h.drafts.GetPreview(c.Request.Context(), draftID, mode)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Writer.Header().Set("ETag", result.ETag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == result.ETag {
		c.Status(http.StatusNotModified)
		return
	}

	if mode == domain.PreviewModeJSON {
		c.JSON(http.StatusOK, result)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.Content))
}

// GetDirectPreview backs `GET /p/{draftId}`: the same HTML preview path,
// served without the JSON envelope (spec §6.1).
func (h *Handler) GetDirectPreview(c *gin.Context) {
	draftID := domain.DraftID(c.Param("draftId"))
	result, err := h.drafts.GetPreview(c.Request.Context(), draftID, domain.PreviewModeHTML)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Writer.Header().Set("ETag", result.ETag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == result.ETag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.Content))
}

func (h *Handler) CommitDraft(c *gin.Context) {
	draftID := domain.DraftID(c.Param("draftId"))

	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Owner.UserID == "" {
		writeError(c, 400, string(domain.KindInvalidInput), "owner.userId is required", nil)
		return
	}

	result, err := h.coordinator.Commit(c.Request.Context(), commit.Request{
		DraftID:        draftID,
		Owner:          domain.Owner{UserID: req.Owner.UserID, TenantID: req.Owner.TenantID},
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}

	status := http.StatusOK
	if result.Status == commit.StatusMigrated {
		status = http.StatusCreated
	}
	c.JSON(status, commitResponse{
		ProjectID: result.ProjectID.String(),
		ConfigID:  result.ConfigID.String(),
		Status:    string(result.Status),
	})
}
