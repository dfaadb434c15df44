package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasker/internal/models"
	"tasker/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type taskRequest struct {
	Title    string            `json:"title" binding:"required"`
	UserID   int64             `json:"user_id"`
	Body     string            `json:"body"`
	EndDate  string            `json:"end_date" binding:"required"` // YYYY-MM-DD
	TaskType models.TaskType   `json:"task_type"`
	Status   models.TaskStatus `json:"status"`
	TagIDs   []int64           `json:"tag_ids"`
}

// @Summary      Создать задачу
// @Description  Путь формы: название должно содержать минимум 2 слова
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	log.Printf("[task][create] call by userID=%d", userID)

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	endDate, err := parseDate(req.EndDate)
	if err != nil {
		log.Printf("[task][create][err] invalid end_date=%q: %v", req.EndDate, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date (YYYY-MM-DD)"})
		return
	}

	owner := req.UserID
	if owner == 0 {
		owner = userID
	}
	if owner == 0 {
		log.Printf("[task][create][err] no owner: user_id absent in body and context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	task := &models.Task{
		Title:    req.Title,
		UserID:   owner,
		Body:     req.Body,
		EndDate:  endDate,
		TaskType: req.TaskType,
		Status:   req.Status,
	}

	created, err := h.service.Submit(c.Request.Context(), task)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		respondDomainError(c, err)
		return
	}

	if len(req.TagIDs) > 0 {
		withTags, err := h.service.SetTags(c.Request.Context(), created.ID, req.TagIDs)
		if err != nil {
			// не оставляем задачу без запрошенных тегов
			log.Printf("[task][create][tags][err] id=%d: %v", created.ID, err)
			if delErr := h.service.Delete(c.Request.Context(), created.ID); delErr != nil {
				log.Printf("[task][create][rollback][err] id=%d: %v", created.ID, delErr)
			}
			respondDomainError(c, err)
			return
		}
		created = withTags
	}

	log.Printf("[task][create][ok] id=%d title=%q", created.ID, created.Title)
	c.JSON(http.StatusCreated, created)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /tasks?user_id=&status=&task_type=&end_date=&tag_id=
func (h *TaskHandler) GetAll(c *gin.Context) {
	var filter models.TaskFilter
	if v, ok := c.GetQuery("user_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.UserID = &id
		} else {
			log.Printf("[task][list][warn] bad user_id=%q: %v", v, err)
		}
	}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("task_type"); ok {
		tt := models.TaskType(v)
		filter.Type = &tt
	}
	if v, ok := c.GetQuery("end_date"); ok {
		d, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date (YYYY-MM-DD)"})
			return
		}
		filter.EndDate = &d
	}
	if v, ok := c.GetQuery("tag_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.TagID = &id
		}
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/today — задачи, у которых сегодня последний день.
func (h *TaskHandler) Today(c *gin.Context) {
	tasks, err := h.service.GetByDate(c.Request.Context(), nil)
	if err != nil {
		log.Printf("[task][today][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/kanban — группировка по статусам new/active/closed.
func (h *TaskHandler) Kanban(c *gin.Context) {
	board, err := h.service.Kanban(c.Request.Context())
	if err != nil {
		log.Printf("[task][kanban][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build kanban"})
		return
	}
	c.JSON(http.StatusOK, board)
}

// PUT /tasks/:id — путь формы редактирования, правило названия действует.
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var req struct {
		Title    *string            `json:"title"`
		UserID   *int64             `json:"user_id"`
		Body     *string            `json:"body"`
		EndDate  *string            `json:"end_date"` // YYYY-MM-DD
		TaskType *models.TaskType   `json:"task_type"`
		Status   *models.TaskStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := *current
	if req.Title != nil {
		update.Title = *req.Title
	}
	if req.UserID != nil {
		update.UserID = *req.UserID
	}
	if req.Body != nil {
		update.Body = *req.Body
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date (YYYY-MM-DD)"})
			return
		}
		update.EndDate = d
	}
	if req.TaskType != nil {
		if !req.TaskType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task type"})
			return
		}
		update.TaskType = *req.TaskType
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		update.Status = *req.Status
	}

	// редактирование идёт через форму — правило названия применяется
	if err := models.ValidateTitle(update.Title); err != nil {
		respondDomainError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &update)
	if err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// POST /tasks/:id/status { "to": "active" }
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body struct {
		To models.TaskStatus `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, body.To)
	if err != nil {
		log.Printf("[task][status][err] id=%d to=%q: %v", id, body.To, err)
		respondDomainError(c, err)
		return
	}
	log.Printf("[task][status][ok] id=%d new=%q", id, body.To)
	c.JSON(http.StatusOK, updated)
}

// PUT /tasks/:id/tags { "tag_ids": [1,2] } — полная замена набора тегов.
func (h *TaskHandler) SetTags(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body struct {
		TagIDs []int64 `json:"tag_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.service.SetTags(c.Request.Context(), id, body.TagIDs)
	if err != nil {
		log.Printf("[task][tags][set][err] id=%d: %v", id, err)
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /tasks/:id/tags/:tag_id
func (h *TaskHandler) AddTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	tagID, err := strconv.ParseInt(c.Param("tag_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag_id"})
		return
	}
	task, err := h.service.AddTag(c.Request.Context(), id, tagID)
	if err != nil {
		log.Printf("[task][tags][add][err] id=%d tag=%d: %v", id, tagID, err)
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id/tags/:tag_id
func (h *TaskHandler) RemoveTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	tagID, err := strconv.ParseInt(c.Param("tag_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag_id"})
		return
	}
	task, err := h.service.RemoveTag(c.Request.Context(), id, tagID)
	if err != nil {
		log.Printf("[task][tags][remove][err] id=%d tag=%d: %v", id, tagID, err)
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id/tags
func (h *TaskHandler) ClearTags(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	task, err := h.service.ClearTags(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][tags][clear][err] id=%d: %v", id, err)
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
