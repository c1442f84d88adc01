package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListLocations(c *gin.Context) {
	resp, err := s.locationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
