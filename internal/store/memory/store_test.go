package memory

import (
	"astronaut-schedule/internal/domain"
	"astronaut-schedule/internal/store"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func mustTask(t *testing.T, description, start, end, priority string) domain.Task {
	t.Helper()

	task, err := domain.NewTask(description, start, end, priority)
	if err != nil {
		t.Fatalf("NewTask(%q) err=%v, want nil", description, err)
	}
	return task
}

func descriptions(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Description())
	}
	return out
}

func assertDescriptions(t *testing.T, got []domain.Task, want ...string) {
	t.Helper()

	names := descriptions(got)
	if len(names) != len(want) {
		t.Fatalf("List()=%v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List()=%v, want %v", names, want)
		}
	}
}

func TestScheduleStore_AddKeepsStartOrder(t *testing.T) {
	s := New()

	for _, task := range []domain.Task{
		mustTask(t, "Lunch Break", "12:00", "13:00", "Low"),
		mustTask(t, "Morning Exercise", "07:00", "08:00", "High"),
		mustTask(t, "Team Meeting", "09:00", "10:00", "Medium"),
		mustTask(t, "Dinner", "18:00", "19:00", "Low"),
		mustTask(t, "Breakfast", "08:00", "08:30", "Medium"),
	} {
		if err := s.Add(task); err != nil {
			t.Fatalf("Add(%s) err=%v, want nil", task.Description(), err)
		}
	}

	list := s.List()
	assertDescriptions(t, list, "Morning Exercise", "Breakfast", "Team Meeting", "Lunch Break", "Dinner")
	for i := 1; i < len(list); i++ {
		if list[i-1].Start() >= list[i].Start() {
			t.Fatalf("List() not strictly ascending at %d: %v", i, descriptions(list))
		}
	}
}

func TestScheduleStore_BackToBackDoesNotConflict(t *testing.T) {
	s := New()

	if err := s.Add(mustTask(t, "A", "07:00", "08:00", "Low")); err != nil {
		t.Fatalf("Add(A) err=%v, want nil", err)
	}
	if err := s.Add(mustTask(t, "B", "08:00", "09:00", "Low")); err != nil {
		t.Fatalf("Add(B) err=%v, want nil", err)
	}
	if err := s.Add(mustTask(t, "C", "06:00", "07:00", "Low")); err != nil {
		t.Fatalf("Add(C) err=%v, want nil", err)
	}

	assertDescriptions(t, s.List(), "C", "A", "B")
}

func TestScheduleStore_OverlapConflicts(t *testing.T) {
	s := New()

	a := mustTask(t, "A", "07:00", "08:00", "Low")
	if err := s.Add(a); err != nil {
		t.Fatalf("Add(A) err=%v, want nil", err)
	}

	err := s.Add(mustTask(t, "B", "07:30", "08:30", "High"))
	if err == nil {
		t.Fatalf("Add(B) err=nil, want ErrConflict")
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Add(B) err=%v, want %v", err, domain.ErrConflict)
	}

	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Add(B) err=%T, want *domain.ConflictError", err)
	}
	if ce.Attempted.Description() != "B" || ce.Existing != a {
		t.Fatalf("ConflictError=%+v, want attempted=B existing=A", ce)
	}

	assertDescriptions(t, s.List(), "A")
}

func TestScheduleStore_ConflictReportsFirstInOrder(t *testing.T) {
	s := New()
	_ = s.Add(mustTask(t, "A", "07:00", "08:00", "Low"))
	_ = s.Add(mustTask(t, "B", "08:00", "09:00", "Low"))

	err := s.Add(mustTask(t, "Wide", "07:30", "08:30", "Low"))

	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Add(Wide) err=%v, want *domain.ConflictError", err)
	}
	if ce.Existing.Description() != "A" {
		t.Fatalf("Existing=%s, want A", ce.Existing.Description())
	}
}

func TestScheduleStore_DuplicateDescription(t *testing.T) {
	s := New()
	_ = s.Add(mustTask(t, "Standup", "09:00", "09:15", "Medium"))

	err := s.Add(mustTask(t, "Standup", "15:00", "15:15", "Medium"))
	if err == nil {
		t.Fatalf("Add() err=nil, want validation error")
	}
	if !errors.Is(err, domain.ErrValidation) || !errors.Is(err, domain.ErrDuplicateDescription) {
		t.Fatalf("Add() err=%v, want %v", err, domain.ErrDuplicateDescription)
	}
	if errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Add() err=%v, should not be a conflict", err)
	}

	list := s.List()
	if len(list) != 1 || list[0].Start().String() != "09:00" {
		t.Fatalf("List()=%v, want only the original Standup", list)
	}
}

func TestScheduleStore_AddZeroTask(t *testing.T) {
	s := New()

	err := s.Add(domain.Task{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Add(zero) err=%v, want %v", err, domain.ErrValidation)
	}
	if s.Len() != 0 {
		t.Fatalf("Len()=%d, want 0", s.Len())
	}
}

func TestScheduleStore_Remove_NotFound(t *testing.T) {
	s := New()

	err := s.Remove("X")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Remove() on empty store err=%v, want %v", err, domain.ErrNotFound)
	}

	_ = s.Add(mustTask(t, "A", "07:00", "08:00", "Low"))

	err = s.Remove("a")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Remove() is case-sensitive, err=%v, want %v", err, domain.ErrNotFound)
	}

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Description != "a" {
		t.Fatalf("Remove() err=%v, want NotFoundError{a}", err)
	}
	assertDescriptions(t, s.List(), "A")
}

func TestScheduleStore_AddRemoveRoundTrip(t *testing.T) {
	s := New()
	_ = s.Add(mustTask(t, "A", "07:00", "08:00", "Low"))
	_ = s.Add(mustTask(t, "C", "12:00", "13:00", "Low"))

	before := s.List()

	if err := s.Add(mustTask(t, "B", "09:00", "10:00", "High")); err != nil {
		t.Fatalf("Add(B) err=%v, want nil", err)
	}
	if err := s.Remove("B"); err != nil {
		t.Fatalf("Remove(B) err=%v, want nil", err)
	}

	after := s.List()
	if len(before) != len(after) {
		t.Fatalf("List() len=%d, want %d", len(after), len(before))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("List()[%d]=%v, want %v", i, after[i], before[i])
		}
	}
}

func TestScheduleStore_Get(t *testing.T) {
	s := New()
	a := mustTask(t, "A", "07:00", "08:00", "Low")
	_ = s.Add(a)

	got, err := s.Get("A")
	if err != nil {
		t.Fatalf("Get() err=%v, want nil", err)
	}
	if got != a {
		t.Fatalf("Get()=%v, want %v", got, a)
	}

	if _, err := s.Get("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() err=%v, want %v", err, domain.ErrNotFound)
	}
}

func TestScheduleStore_ListIsACopy(t *testing.T) {
	s := New()
	_ = s.Add(mustTask(t, "A", "07:00", "08:00", "Low"))

	list := s.List()
	list[0] = mustTask(t, "Mutated", "01:00", "02:00", "High")
	_ = append(list, mustTask(t, "Extra", "03:00", "04:00", "High"))

	assertDescriptions(t, s.List(), "A")
}

func TestScheduleStore_ObserversNotifiedInOrder(t *testing.T) {
	var calls []string
	var mu sync.Mutex
	record := func(name string) store.ObserverFunc {
		return func(attempted, existing domain.Task) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, fmt.Sprintf("%s:%s>%s", name, attempted.Description(), existing.Description()))
		}
	}

	s := New(record("first"))
	s.Register(record("second"))
	s.Register(nil)

	_ = s.Add(mustTask(t, "A", "07:00", "08:00", "Low"))
	_ = s.Add(mustTask(t, "B", "08:00", "09:00", "Low"))
	if len(calls) != 0 {
		t.Fatalf("observers called on successful Add: %v", calls)
	}

	_ = s.Add(mustTask(t, "A", "10:00", "11:00", "Low"))
	if len(calls) != 0 {
		t.Fatalf("observers called on duplicate Add: %v", calls)
	}

	_ = s.Add(mustTask(t, "X", "08:30", "09:30", "High"))

	want := []string{"first:X>B", "second:X>B"}
	if len(calls) != len(want) {
		t.Fatalf("calls=%v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls=%v, want %v", calls, want)
		}
	}
}

func TestScheduleStore_ObserverMayReadStore(t *testing.T) {
	s := New()
	seen := -1
	s.Register(store.ObserverFunc(func(domain.Task, domain.Task) {
		seen = len(s.List())
	}))

	_ = s.Add(mustTask(t, "A", "07:00", "08:00", "Low"))
	err := s.Add(mustTask(t, "B", "07:00", "07:30", "Low"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Add(B) err=%v, want %v", err, domain.ErrConflict)
	}
	if seen != 1 {
		t.Fatalf("observer saw %d tasks, want 1", seen)
	}
}

func TestScheduleStore_EndToEnd(t *testing.T) {
	s := New()

	if err := s.Add(mustTask(t, "Morning Exercise", "07:00", "08:00", "High")); err != nil {
		t.Fatalf("Add() err=%v", err)
	}
	if err := s.Add(mustTask(t, "Team Meeting", "09:00", "10:00", "Medium")); err != nil {
		t.Fatalf("Add() err=%v", err)
	}
	assertDescriptions(t, s.List(), "Morning Exercise", "Team Meeting")

	if err := s.Remove("Morning Exercise"); err != nil {
		t.Fatalf("Remove() err=%v", err)
	}
	if err := s.Add(mustTask(t, "Lunch Break", "12:00", "13:00", "Low")); err != nil {
		t.Fatalf("Add() err=%v", err)
	}

	err := s.Add(mustTask(t, "Training Session", "09:30", "10:30", "High"))
	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Add(Training Session) err=%v, want ConflictError", err)
	}
	if ce.Existing.Description() != "Team Meeting" {
		t.Fatalf("Existing=%s, want Team Meeting", ce.Existing.Description())
	}

	assertDescriptions(t, s.List(), "Team Meeting", "Lunch Break")
}

func TestScheduleStore_ConcurrentAdd(t *testing.T) {
	s := New()

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			start := domain.TimeOfDay(i * 5)
			task := mustTask(t, fmt.Sprintf("slot-%d", i), start.String(), (start + 5).String(), "Low")
			if err := s.Add(task); err != nil {
				t.Errorf("Add(slot-%d) err=%v", i, err)
			}
		}(i)
	}

	wg.Wait()

	list := s.List()
	if len(list) != n {
		t.Fatalf("List() len=%d, want %d", len(list), n)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Start() >= list[i].Start() {
			t.Fatalf("List() not ascending at %d", i)
		}
	}
}

func TestScheduleStore_ConcurrentOverlappingAddOnlyOneWins(t *testing.T) {
	s := New()

	const n = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			task := mustTask(t, fmt.Sprintf("t-%d", i), "10:00", "11:00", "Low")
			if err := s.Add(task); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()

	if wins != 1 || s.Len() != 1 {
		t.Fatalf("wins=%d len=%d, want 1 and 1", wins, s.Len())
	}
}
