package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tasker/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary      Регистрация
// @Tags         Users
// @Accept       json
// @Produce      json
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[user][register][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// форма приводит email к нижнему регистру целиком, как и форма логина
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.service.CreateUser(c.Request.Context(), email, req.Password, req.FullName, services.CreateUserInput{})
	if err != nil {
		log.Printf("[user][register][err] email=%q: %v", req.Email, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[user][register][ok] id=%d email=%q", user.ID, user.Email)
	c.JSON(http.StatusCreated, user)
}

// POST /users — создание с флагами, доступно staff.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
		FullName    string `json:"full_name"`
		IsActive    *bool  `json:"is_active"`
		IsStaff     *bool  `json:"is_staff"`
		IsSuperuser *bool  `json:"is_superuser"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[user][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.service.CreateUser(c.Request.Context(), email, req.Password, req.FullName, services.CreateUserInput{
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		log.Printf("[user][create][err] email=%q: %v", req.Email, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[user][create][ok] id=%d", user.ID)
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	user, err := h.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	users, err := h.service.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		log.Printf("[user][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUserCount(c *gin.Context) {
	count, err := h.service.GetUserCount(c.Request.Context())
	if err != nil {
		log.Printf("[user][count][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var req struct {
		Email    *string `json:"email"`
		FullName *string `json:"full_name"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.service.UpdateUser(c.Request.Context(), user); err != nil {
		log.Printf("[user][update][err] id=%d: %v", id, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[user][update][ok] id=%d", id)
	c.JSON(http.StatusOK, user)
}

// DELETE /users/:id — удаляет пользователя вместе с его задачами.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		log.Printf("[user][delete][err] id=%d: %v", id, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[user][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
