package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"widviz/store"
)

// RegisterNoteRoutes registers notes CRUD.
func RegisterNoteRoutes(r *gin.Engine, h *noteController) {
	g := r.Group("/api/notes")
	g.GET("", h.list)
	g.POST("/add", h.add)
	g.POST("/edit", h.edit)
	g.POST("/delete", h.remove)
}

type noteController struct {
	notes NoteStore
}

type noteRequest struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *noteController) list(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		respondFail(c, http.StatusBadRequest, "Email is required.")
		return
	}
	notes, err := h.notes.ListNotes(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"notes": notes})
}

func (h *noteController) add(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	if blank(req.Email, req.Title) {
		respondFail(c, http.StatusBadRequest, "Email and title are required.")
		return
	}
	id, err := h.notes.AddNote(c.Request.Context(), req.Email, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Note added successfully.", "id": id})
}

func (h *noteController) edit(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID <= 0 || blank(req.Title) {
		respondFail(c, http.StatusBadRequest, "Note ID and title are required.")
		return
	}
	if err := h.notes.EditNote(c.Request.Context(), req.ID, req.Title, req.Content); err != nil {
		notFoundOr(c, err, "Note not found.")
		return
	}
	respondOK(c, gin.H{"message": "Note updated successfully."})
}

func (h *noteController) remove(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID <= 0 {
		respondFail(c, http.StatusBadRequest, "Note ID is required.")
		return
	}
	if err := h.notes.DeleteNote(c.Request.Context(), req.ID); err != nil {
		notFoundOr(c, err, "Note not found.")
		return
	}
	respondOK(c, gin.H{"message": "Note deleted successfully."})
}

func notFoundOr(c *gin.Context, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		respondFail(c, http.StatusNotFound, message)
		return
	}
	respondError(c, err)
}
