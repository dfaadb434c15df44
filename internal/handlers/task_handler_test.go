package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tasker/internal/models"
	"tasker/internal/repositories"
	"tasker/internal/services"
)

type handlerFixture struct {
	router *gin.Engine
	userID int64
}

// newHandlerFixture поднимает роуты задач поверх sqlite-базы со стаб-авторизацией.
func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	userSvc := services.NewUserService(repositories.NewUserRepository(db), nil, services.NewAuthService())
	taskSvc := services.NewTaskService(repositories.NewTaskRepository(db), nil)
	h := NewTaskHandler(taskSvc)

	owner, err := userSvc.CreateUser(context.Background(), "owner@example.com", "p1", "Owner", services.CreateUserInput{})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", owner.ID)
		c.Next()
	})
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", h.Create)
		tasks.GET("/", h.GetAll)
		tasks.GET("/today", h.Today)
		tasks.GET("/kanban", h.Kanban)
		tasks.GET("/:id", h.GetByID)
		tasks.PUT("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
		tasks.POST("/:id/status", h.ChangeStatus)
	}
	return &handlerFixture{router: r, userID: owner.ID}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (f *handlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	return doJSON(t, f.router, method, path, body)
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode task from %q: %v", w.Body.String(), err)
	}
	return task
}

func TestCreateTaskEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	today := time.Now().UTC().Format("2006-01-02")

	w := f.do(t, http.MethodPost, "/tasks/", gin.H{
		"title":    "Fix login bug",
		"end_date": today,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	task := decodeTask(t, w)
	if task.ID == 0 {
		t.Error("id not assigned")
	}
	if task.UserID != f.userID {
		t.Errorf("owner: got %d, want authenticated user %d", task.UserID, f.userID)
	}
	if task.TaskType != models.TypeTask || task.Status != models.StatusNew {
		t.Errorf("defaults: got type=%q status=%q", task.TaskType, task.Status)
	}
}

func TestCreateTaskEndpointRejectsShortTitle(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/tasks/", gin.H{
		"title":    "Fix",
		"end_date": "2026-09-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400; body %s", w.Code, w.Body.String())
	}

	// задача не должна была сохраниться
	w = f.do(t, http.MethodGet, "/tasks/", nil)
	var tasks []models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("rejected task persisted: %v", tasks)
	}
}

func TestTodayEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	today := time.Now().UTC().Format("2006-01-02")
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	for _, req := range []gin.H{
		{"title": "горит сегодня", "end_date": today},
		{"title": "горит завтра", "end_date": tomorrow},
	} {
		if w := f.do(t, http.MethodPost, "/tasks/", req); w.Code != http.StatusCreated {
			t.Fatalf("seed task: %d %s", w.Code, w.Body.String())
		}
	}

	w := f.do(t, http.MethodGet, "/tasks/today", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var tasks []models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Title != "горит сегодня" {
		t.Errorf("today: got %v", tasks)
	}
}

func TestKanbanEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	today := time.Now().UTC().Format("2006-01-02")

	if w := f.do(t, http.MethodPost, "/tasks/", gin.H{
		"title": "в работе сейчас", "end_date": today, "status": "active",
	}); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d %s", w.Code, w.Body.String())
	}

	w := f.do(t, http.MethodGet, "/tasks/kanban", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var board map[string][]models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &board); err != nil {
		t.Fatal(err)
	}
	for _, col := range []string{"new", "active", "closed"} {
		if _, ok := board[col]; !ok {
			t.Errorf("missing column %q", col)
		}
	}
	if len(board["active"]) != 1 {
		t.Errorf("active column: got %v", board["active"])
	}
}

func TestChangeStatusEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/tasks/", gin.H{
		"title": "сменить статус", "end_date": "2026-09-01",
	})
	task := decodeTask(t, w)

	w = f.do(t, http.MethodPost, fmt.Sprintf("/tasks/%d/status", task.ID), gin.H{"to": "closed"})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if got := decodeTask(t, w); got.Status != models.StatusClosed {
		t.Errorf("status after change: got %q", got.Status)
	}

	w = f.do(t, http.MethodPost, fmt.Sprintf("/tasks/%d/status", task.ID), gin.H{"to": "done"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown status: got %d, want 400", w.Code)
	}
}

func TestUpdateEndpointValidatesTitle(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/tasks/", gin.H{
		"title": "старое название", "end_date": "2026-09-01",
	})
	task := decodeTask(t, w)

	w = f.do(t, http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), gin.H{"title": "Короткое"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("one-word title on edit: got %d, want 400", w.Code)
	}

	w = f.do(t, http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), gin.H{"title": "новое название"})
	if w.Code != http.StatusOK {
		t.Fatalf("valid edit: got %d, body %s", w.Code, w.Body.String())
	}
	if got := decodeTask(t, w); got.Title != "новое название" {
		t.Errorf("title after edit: got %q", got.Title)
	}
}

// Без аутентификации и без user_id в теле запрос отклоняется до вставки.
func TestCreateTaskRequiresOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := NewTaskHandler(services.NewTaskService(repositories.NewTaskRepository(db), nil))
	r := gin.New()
	r.POST("/tasks/", h.Create)

	w := doJSON(t, r, http.MethodPost, "/tasks/", gin.H{
		"title":    "задача без владельца",
		"end_date": "2026-09-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no owner: got %d, want 400; body %s", w.Code, w.Body.String())
	}
}

// Непривязываемые теги не должны оставлять задачу наполовину созданной.
func TestCreateTaskRollsBackOnBadTags(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/tasks/", gin.H{
		"title":    "с несуществующим тегом",
		"end_date": "2026-09-01",
		"tag_ids":  []int64{9999},
	})
	if w.Code < 400 {
		t.Fatalf("bad tag ids: got %d, want an error; body %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodGet, "/tasks/", nil)
	var tasks []models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("task survived failed tag attach: %v", tasks)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	f := newHandlerFixture(t)

	if w := f.do(t, http.MethodGet, "/tasks/9999", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing task: got %d, want 404", w.Code)
	}
	if w := f.do(t, http.MethodDelete, "/tasks/9999", nil); w.Code != http.StatusNotFound {
		t.Errorf("delete missing task: got %d, want 404", w.Code)
	}
}
