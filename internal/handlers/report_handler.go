package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tasker/internal/models"
	"tasker/internal/pdf"
	"tasker/internal/services"
)

type ReportHandler struct {
	tasks services.TaskService
	gen   pdf.Generator
}

func NewReportHandler(tasks services.TaskService, gen pdf.Generator) *ReportHandler {
	return &ReportHandler{tasks: tasks, gen: gen}
}

// GET /reports/tasks/pdf — отчёт по всем задачам одним PDF.
func (h *ReportHandler) TasksPDF(c *gin.Context) {
	tasks, err := h.tasks.GetAll(c.Request.Context(), models.TaskFilter{})
	if err != nil {
		log.Printf("[report][tasks][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}

	data, err := h.gen.TaskListReport(tasks, time.Now())
	if err != nil {
		log.Printf("[report][tasks][pdf][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="tasks.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
