// Package worker implements the fire-and-forget notification queue.
//
// Task creation only enqueues the task title; formatting, logging and
// delivery happen on the worker goroutines. A full queue drops the job
// with a warning — the caller is never blocked or failed.
package worker

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Sink получает итоговое уведомление (например, Telegram-чат). Может быть nil.
type Sink interface {
	SendTaskCreated(title string) error
}

type job struct {
	id     uuid.UUID
	title  string
	result chan string
}

type Notifier struct {
	jobs chan job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewNotifier запускает пул из workers горутин с очередью queueSize.
func NewNotifier(workers, queueSize int, sink Sink) *Notifier {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	n := &Notifier{jobs: make(chan job, queueSize)}
	for i := 0; i < workers; i++ {
		n.wg.Add(1)
		go n.run(sink)
	}
	return n
}

func (n *Notifier) run(sink Sink) {
	defer n.wg.Done()
	for j := range n.jobs {
		msg := fmt.Sprintf("Создана новая задача: %s", j.title)
		log.Printf("[notify][%s] %s", j.id, msg)
		if sink != nil {
			if err := sink.SendTaskCreated(j.title); err != nil {
				// побочный канал: ошибку только логируем
				log.Printf("[notify][%s][sink][err] %v", j.id, err)
			}
		}
		j.result <- msg
		close(j.result)
	}
}

// Enqueue ставит заголовок задачи в очередь и возвращает корреляционный id
// и канал с подтверждением. Канал закрывается после обработки; при
// переполненной или закрытой очереди возвращается уже закрытый канал.
func (n *Notifier) Enqueue(title string) (uuid.UUID, <-chan string) {
	id := uuid.New()
	result := make(chan string, 1)

	// мьютекс на время отправки: Close не должен закрыть канал под нами
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		close(result)
		return id, result
	}

	select {
	case n.jobs <- job{id: id, title: title, result: result}:
	default:
		log.Printf("[notify][%s][drop] queue full, title=%q", id, title)
		close(result)
	}
	return id, result
}

// Close останавливает пул, дождавшись уже принятых заданий.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.jobs)
	n.wg.Wait()
}
