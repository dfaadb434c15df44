package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tasker/internal/models"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	TaskListReport(tasks []models.Task, generatedAt time.Time) ([]byte, error)
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// TaskListReport renders the current task list as a one-table PDF.
func (g *ReportGenerator) TaskListReport(tasks []models.Task, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task report", false)
	pdf.SetAuthor("Tasker", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Task report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, generatedAt.Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// шапка таблицы
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 8, "Title", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Due", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Tags", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range tasks {
		pdf.CellFormat(70, 7, t.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, t.TaskType.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, t.Status.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, t.EndDate.Format("02.01.2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, t.TagsAsString(), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %d", len(tasks)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
