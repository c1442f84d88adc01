package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) LookupBarcode(c *gin.Context) {
	resp, err := s.lookup.Lookup(c.Request.Context(), strings.TrimSpace(c.Param("ean13")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
