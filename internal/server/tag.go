package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	tagdomain "github.com/pantryworks/pantry/internal/tag/domain"
)

func (s *Server) ListTags(c *gin.Context) {
	resp, err := s.tagSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateTag(c *gin.Context) {
	var req tagdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tagSvc.Create(c.Request.Context(), req)
	if err != nil {
		// A duplicate carries the stored row back to the caller.
		var conflict *tagdomain.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error": gin.H{
					"type":    "conflict",
					"message": "tag already exists",
				},
				"tag": conflict.Existing,
			})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
