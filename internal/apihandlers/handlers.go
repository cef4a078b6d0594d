package apihandlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/SmartAppUnipi/ArtGuide/internal/app"
	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// RootHandler reports service status and the configured languages.
func (h *APIHandler) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":   "document-adaptation",
		"languages": h.App.Config.Languages,
	})
}

type keywordsRequest struct {
	UTastes []string `json:"uTastes"`
}

// KeywordsHandler expands the user's tastes into retrieval keywords. The
// response echoes the request with a keywordExpansion field added, which is
// the shape the retrieval module consumes.
func (h *APIHandler) KeywordsHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		BadRequest(c, "Input not found")
		return
	}
	var req keywordsRequest
	if err := json.Unmarshal(body, &req); err != nil || req.UTastes == nil {
		BadRequest(c, "Input not found")
		return
	}

	expansion := h.App.Tailor.ExpandKeywords(req.UTastes)

	resp := echoMap(body)
	resp["keywordExpansion"] = expansion
	c.JSON(http.StatusOK, resp)
}

type tailoredTextRequest struct {
	UserProfile    models.UserProfile `json:"userProfile"`
	Results        []models.RawResult `json:"results"`
	UseTransitions *bool              `json:"useTransitions"`
}

// TailoredTextHandler runs the full pipeline for one request and echoes the
// request with the tailoredText field added.
func (h *APIHandler) TailoredTextHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		BadRequest(c, "Input not found")
		return
	}
	var req tailoredTextRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Results == nil {
		BadRequest(c, "Input not found")
		return
	}

	useTransitions := true
	if req.UseTransitions != nil {
		useTransitions = *req.UseTransitions
	}

	text, err := h.App.Tailor.Tailor(c.Request.Context(), req.Results, &req.UserProfile, useTransitions)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrLanguageNotSupported), errors.Is(err, models.ErrInvalidProfile):
			BadRequest(c, err.Error())
		default:
			log.Errorf("tailored_text request failed: %v", err)
			Internal(c, err.Error())
		}
		return
	}

	resp := echoMap(body)
	resp["tailoredText"] = text
	c.JSON(http.StatusOK, resp)
}

// echoMap re-parses the raw request so the response can carry every field
// the caller sent, even ones this service does not model.
func echoMap(body []byte) map[string]interface{} {
	resp := map[string]interface{}{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return map[string]interface{}{}
	}
	return resp
}
