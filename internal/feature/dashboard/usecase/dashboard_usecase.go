// Package usecase はダッシュボード集約とカレンダーイベントのロジックを実装します。
package usecase

import (
	"context"
	"time"

	"taskbite_backend/internal/feature/tasks/domain/entity"
)

// eventDateLayout はカレンダーイベントの日付形式です。
const eventDateLayout = "2006-01-02"

// Event はカレンダーに表示する1件のイベントです。
// ノートは作成日、ToDoは期日の日付で配置されます。
type Event struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
	Type  string `json:"type"`
}

// DayEntries は特定の日付に属するノート本文とToDoタスクの一覧です。
type DayEntries struct {
	Notes []string `json:"notes"`
	Todos []string `json:"todos"`
}

// DashboardData はダッシュボード応答の集約結果です。
type DashboardData struct {
	Notes        []entity.Note         `json:"notes"`
	Todos        []entity.Todo         `json:"todos"`
	CalendarData map[string]DayEntries `json:"calendar_data"`
}

// NoteSource はノートの読み取りレイヤーを抽象化します。
// tasksフィーチャーのリポジトリがこのインターフェースを満たします。
type NoteSource interface {
	FindByUserID(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Note, error)
}

// TodoSource はToDoの読み取りレイヤーを抽象化します。
type TodoSource interface {
	FindByUserID(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Todo, error)
}

// EventRepository はユーザーのカレンダーイベント一覧を返します。
// キャッシュ層（platform/cache）がこのインターフェースをデコレートします。
type EventRepository interface {
	EventsByUser(ctx context.Context, userID uint) ([]Event, error)
}

// eventSource はノートとToDoからイベント一覧を組み立てるEventRepositoryの実装です。
type eventSource struct {
	notes NoteSource
	todos TodoSource
}

// NewEventSource はeventSourceの新しいインスタンスを生成します。
func NewEventSource(notes NoteSource, todos TodoSource) *eventSource {
	return &eventSource{notes: notes, todos: todos}
}

// EventsByUser はユーザーの全ノート・ToDoをイベントに変換して返します。
func (s *eventSource) EventsByUser(ctx context.Context, userID uint) ([]Event, error) {
	notes, err := s.notes.FindByUserID(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	todos, err := s.todos.FindByUserID(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(notes)+len(todos))
	for _, n := range notes {
		day := n.CreatedAt.Format(eventDateLayout)
		events = append(events, Event{Title: n.Content, Start: day, End: day, Type: "note"})
	}
	for _, t := range todos {
		day := t.DueDate.Format(eventDateLayout)
		events = append(events, Event{Title: t.Task, Start: day, End: day, Type: "todo"})
	}
	return events, nil
}

// dashboardUsecase はダッシュボード操作のユースケースを定義します。
type dashboardUsecase struct {
	notes  NoteSource
	todos  TodoSource
	events EventRepository
}

// NewDashboardUsecase はdashboardUsecaseの新しいインスタンスを生成します。
func NewDashboardUsecase(notes NoteSource, todos TodoSource, events EventRepository) *dashboardUsecase {
	return &dashboardUsecase{notes: notes, todos: todos, events: events}
}

// GetDashboard はユーザーのノート・ToDoを取得し、日付別のカレンダー形式にも整理します。
func (u *dashboardUsecase) GetDashboard(ctx context.Context, userID uint) (*DashboardData, error) {
	notes, err := u.notes.FindByUserID(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	todos, err := u.todos.FindByUserID(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}

	calendar := make(map[string]DayEntries)
	for _, n := range notes {
		day := n.CreatedAt.Format(eventDateLayout)
		e := calendar[day]
		e.Notes = append(e.Notes, n.Content)
		calendar[day] = e
	}
	for _, t := range todos {
		day := t.DueDate.Format(eventDateLayout)
		e := calendar[day]
		e.Todos = append(e.Todos, t.Task)
		calendar[day] = e
	}

	if notes == nil {
		notes = []entity.Note{}
	}
	if todos == nil {
		todos = []entity.Todo{}
	}

	return &DashboardData{Notes: notes, Todos: todos, CalendarData: calendar}, nil
}

// GetEvents はユーザーのカレンダーイベント一覧を取得します。
func (u *dashboardUsecase) GetEvents(ctx context.Context, userID uint) ([]Event, error) {
	events, err := u.events.EventsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}
