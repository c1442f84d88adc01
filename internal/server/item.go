package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	itemdomain "github.com/pantryworks/pantry/internal/item/domain"
)

func (s *Server) ListItemsByLocation(c *gin.Context) {
	resp, err := s.itemSvc.ListByLocation(c.Request.Context(), strings.TrimSpace(c.Param("locationId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateItem(c *gin.Context) {
	var req itemdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.itemSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added successfully",
		"itemId":  resp.ItemID,
	})
}
