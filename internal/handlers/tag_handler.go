package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasker/internal/models"
	"tasker/internal/services"
)

type TagHandler struct {
	service services.TagService
}

func NewTagHandler(service services.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		log.Printf("[tag][create][err] name=%q: %v", req.Name, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[tag][create][ok] id=%d name=%q", tag.ID, tag.Name)
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	tag, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[tag][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tags"})
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := h.service.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		log.Printf("[tag][update][err] id=%d: %v", id, err)
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DELETE /tags/:id — тег отвязывается от задач, задачи остаются.
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[tag][delete][err] id=%d: %v", id, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[tag][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
