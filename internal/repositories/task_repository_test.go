package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasker/internal/models"
)

func storeUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()
	user := newUser(email, "Test User")
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}
	return user
}

func storeTask(t *testing.T, repo TaskRepository, userID int64, title string, endDate time.Time) *models.Task {
	t.Helper()
	task := &models.Task{
		UserID:    userID,
		Title:     title,
		Body:      "описание",
		EndDate:   models.DateOnly(endDate),
		CreatedAt: time.Now().UTC(),
		TaskType:  models.TypeTask,
		Status:    models.StatusNew,
	}
	if err := repo.Store(context.Background(), task); err != nil {
		t.Fatalf("Store task failed: %v", err)
	}
	return task
}

func TestTaskRepositoryFindByEndDate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := storeUser(t, users, "dates@example.com")

	today := time.Now().UTC()
	tomorrow := today.AddDate(0, 0, 1)

	taskToday := storeTask(t, tasks, owner.ID, "задача на сегодня", today)
	taskTomorrow := storeTask(t, tasks, owner.ID, "задача на завтра", tomorrow)
	taskToday2 := storeTask(t, tasks, owner.ID, "ещё задача на сегодня", today)

	got, err := tasks.FindByEndDate(ctx, today)
	if err != nil {
		t.Fatalf("FindByEndDate failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("today tasks: got %d, want 2", len(got))
	}
	ids := map[int64]bool{}
	for _, task := range got {
		ids[task.ID] = true
	}
	if !ids[taskToday.ID] || !ids[taskToday2.ID] {
		t.Errorf("today tasks missing expected ids: got %v", ids)
	}
	if ids[taskTomorrow.ID] {
		t.Error("today tasks must not contain tomorrow's task")
	}

	got, err = tasks.FindByEndDate(ctx, tomorrow)
	if err != nil {
		t.Fatalf("FindByEndDate(tomorrow) failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != taskTomorrow.ID {
		t.Errorf("tomorrow tasks: got %v", got)
	}
}

func TestTaskRepositoryListingOrder(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := storeUser(t, users, "order@example.com")
	base := time.Now().UTC()

	storeTask(t, tasks, owner.ID, "b later", base.AddDate(0, 0, 2))
	storeTask(t, tasks, owner.ID, "b sooner", base)
	storeTask(t, tasks, owner.ID, "a sooner", base)

	got, err := tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("FindAll: got %d tasks, want 3", len(got))
	}
	// end_date, затем title
	if got[0].Title != "a sooner" || got[1].Title != "b sooner" || got[2].Title != "b later" {
		t.Errorf("order: got %q, %q, %q", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestTaskRepositoryUpdateKeepsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := storeUser(t, users, "upd@example.com")
	task := storeTask(t, tasks, owner.ID, "старый заголовок", time.Now())

	stored, err := tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	createdAt := stored.CreatedAt

	stored.Title = "новый заголовок"
	stored.Status = models.StatusActive
	stored.TaskType = models.TypeBug
	if err := tasks.Update(ctx, stored); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID after update failed: %v", err)
	}
	if got.Title != "новый заголовок" || got.Status != models.StatusActive || got.TaskType != models.TypeBug {
		t.Errorf("after update: %+v", got)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt changed: got %v, want %v", got.CreatedAt, createdAt)
	}
}

func TestTaskRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := storeUser(t, users, "del@example.com")
	task := storeTask(t, tasks, owner.ID, "удаляемая задача", time.Now())

	if err := tasks.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := tasks.FindByID(ctx, task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByID after delete: got %v, want ErrNotFound", err)
	}
	if err := tasks.Delete(ctx, task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestTaskRepositoryTags(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	tags := NewTagRepository(db)
	ctx := context.Background()

	owner := storeUser(t, users, "tags@example.com")
	task := storeTask(t, tasks, owner.ID, "задача с тегами", time.Now())
	other := storeTask(t, tasks, owner.ID, "другая задача", time.Now())

	var tagIDs []int64
	for _, name := range []string{"Важный", "Срочный", "Баг"} {
		tag := &models.Tag{Name: name}
		if err := tags.Create(ctx, tag); err != nil {
			t.Fatalf("Create tag failed: %v", err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	if err := tasks.SetTags(ctx, task.ID, tagIDs); err != nil {
		t.Fatalf("SetTags failed: %v", err)
	}
	// общий тег у второй задачи
	if err := tasks.AddTag(ctx, other.ID, tagIDs[0]); err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}

	got, err := tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if len(got.Tags) != 3 {
		t.Fatalf("tags: got %d, want 3", len(got.Tags))
	}

	// повторное добавление не даёт дубликата
	if err := tasks.AddTag(ctx, task.ID, tagIDs[0]); err != nil {
		t.Fatalf("repeated AddTag failed: %v", err)
	}
	got, _ = tasks.FindByID(ctx, task.ID)
	if len(got.Tags) != 3 {
		t.Errorf("tags after repeated add: got %d, want 3", len(got.Tags))
	}

	// снятие тега затрагивает только эту задачу
	if err := tasks.RemoveTag(ctx, task.ID, tagIDs[0]); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	got, _ = tasks.FindByID(ctx, task.ID)
	if len(got.Tags) != 2 {
		t.Errorf("tags after remove: got %d, want 2", len(got.Tags))
	}
	otherGot, _ := tasks.FindByID(ctx, other.ID)
	if len(otherGot.Tags) != 1 {
		t.Errorf("other task tags: got %d, want 1", len(otherGot.Tags))
	}

	// удаление тега отвязывает его, но не трогает задачи
	if err := tags.Delete(ctx, tagIDs[0]); err != nil {
		t.Fatalf("Delete tag failed: %v", err)
	}
	otherGot, err = tasks.FindByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("FindByID after tag delete failed: %v", err)
	}
	if len(otherGot.Tags) != 0 {
		t.Errorf("other task tags after tag delete: got %d, want 0", len(otherGot.Tags))
	}

	if err := tasks.ClearTags(ctx, task.ID); err != nil {
		t.Fatalf("ClearTags failed: %v", err)
	}
	got, _ = tasks.FindByID(ctx, task.ID)
	if len(got.Tags) != 0 {
		t.Errorf("tags after clear: got %d, want 0", len(got.Tags))
	}
}

func TestTaskRepositoryFilterByTag(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	tags := NewTagRepository(db)
	ctx := context.Background()

	owner := storeUser(t, users, "filter@example.com")
	tagged := storeTask(t, tasks, owner.ID, "с тегом", time.Now())
	storeTask(t, tasks, owner.ID, "без тега", time.Now())

	tag := &models.Tag{Name: "Бэкенд"}
	if err := tags.Create(ctx, tag); err != nil {
		t.Fatalf("Create tag failed: %v", err)
	}
	if err := tasks.AddTag(ctx, tagged.ID, tag.ID); err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}

	got, err := tasks.FindAll(ctx, models.TaskFilter{TagID: &tag.ID})
	if err != nil {
		t.Fatalf("FindAll by tag failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != tagged.ID {
		t.Errorf("filter by tag: got %v", got)
	}
}
