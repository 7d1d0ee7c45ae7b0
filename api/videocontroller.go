package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"widviz/config"
)

// RegisterVideoRoutes registers the summary, quiz and search endpoints.
func RegisterVideoRoutes(r *gin.Engine, h *videoController) {
	g := r.Group("/api")
	g.POST("/summarize_video", h.summarize)
	g.POST("/generate_quiz", h.generateQuiz)
	g.POST("/search_videos", h.searchVideos)
}

type videoController struct {
	study  StudyService
	search VideoSearcher
}

type summarizeRequest struct {
	VideoID string `json:"video_id"`
}

type quizRequest struct {
	Transcript string `json:"transcript"`
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int64  `json:"max_results"`
}

func (h *videoController) summarize(c *gin.Context) {
	var req summarizeRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.VideoID) == "" {
		respondFail(c, http.StatusBadRequest, "Video ID is required.")
		return
	}

	m, err := h.study.Summarize(c.Request.Context(), strings.TrimSpace(req.VideoID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"video_id":   m.VideoID,
		"transcript": m.Transcript,
		"summary":    m.Summary,
		"source":     m.Source,
	})
}

func (h *videoController) generateQuiz(c *gin.Context) {
	var req quizRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		respondFail(c, http.StatusBadRequest, "Transcript is required.")
		return
	}

	questions, err := h.study.Quiz(c.Request.Context(), req.Transcript)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"quiz": questions})
}

func (h *videoController) searchVideos(c *gin.Context) {
	if h.search == nil {
		respondFail(c, http.StatusServiceUnavailable, "Video search is not configured.")
		return
	}
	var req searchRequest
	if !bindJSON(c, &req) {
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		respondFail(c, http.StatusBadRequest, "Query is required.")
		return
	}

	maxResults := req.MaxResults
	switch {
	case maxResults <= 0:
		maxResults = config.DefaultSearchResults
	case maxResults > config.MaxSearchResults:
		maxResults = config.MaxSearchResults
	}

	videos, err := h.search.Search(c.Request.Context(), query, maxResults)
	if err != nil {
		slog.Error("video search failed", "request_id", c.GetString(requestIDKey), "query", query, "error", err)
		respondFail(c, http.StatusBadGateway, "Error searching videos.")
		return
	}
	respondOK(c, gin.H{"videos": videos})
}
