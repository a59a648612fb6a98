package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListNotes(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 4)

	notes, err := s.notes.List(c.Request.Context(), c.GetString(userIDKey), page, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(notes),
		"page":  page,
		"data":  notes,
	})
}

func (s *Server) handleGetNote(c *gin.Context) {
	note, err := s.notes.Get(c.Request.Context(), c.GetString(userIDKey), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": note})
}

func (s *Server) handleCreateNote(c *gin.Context) {
	imagePath, err := s.saveImageIfPresent(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	note, err := s.notes.Create(c.Request.Context(), c.GetString(userIDKey), c.PostForm("title"), imagePath)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "note created successfully", "data": note})
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	imagePath, err := s.saveImageIfPresent(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	note, err := s.notes.Update(c.Request.Context(), c.GetString(userIDKey), c.Param("id"), c.PostForm("title"), imagePath)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": note})
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	if err := s.notes.Delete(c.Request.Context(), c.GetString(userIDKey), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// saveImageIfPresent stores the uploaded "image" file if the request carries
// one and returns its relative path, or "" when the field is absent.
func (s *Server) saveImageIfPresent(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return s.uploads.Save(c, file)
}

// intQuery reads a positive integer query parameter, falling back to def on
// anything missing or malformed.
func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}
