package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/service/search"
	"k8s.io/klog/v2"
)

type SearchHandler struct {
	search *search.Service
}

func NewSearchHandler(s *search.Service) *SearchHandler {
	return &SearchHandler{search: s}
}

// Search GET /api/search?q=关键词&type=blog|document
func (h *SearchHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "搜索关键词不能为空"})
		return
	}
	page, pageSize := pageParams(c, 10, 50)

	resp, err := h.search.Search(term, c.Query("type"), isAdmin(c), page, pageSize)
	if err != nil {
		klog.Errorf("搜索失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "搜索失败"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
