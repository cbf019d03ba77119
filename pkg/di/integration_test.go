package di

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-selector-cache/pkg/testsupport"
	"github.com/goliatone/go-selector-cache/selector"
)

// Todo represents a test model for integration tests
type Todo struct {
	ID     int
	ListID int
	Title  string
	Done   bool
}

// TodoState is an immutable snapshot: every change produces a new value.
type TodoState struct {
	Todos []Todo
}

func (s *TodoState) withDone(id int) *TodoState {
	next := &TodoState{Todos: append([]Todo(nil), s.Todos...)}
	for i := range next.Todos {
		if next.Todos[i].ID == id {
			next.Todos[i].Done = true
		}
	}
	return next
}

type todoQuery struct {
	State  *TodoState
	ListID int
	Done   bool
}

func newTodoState() *TodoState {
	return &TodoState{Todos: []Todo{
		{ID: 1, ListID: 1, Title: "milk"},
		{ID: 2, ListID: 1, Title: "eggs", Done: true},
		{ID: 3, ListID: 2, Title: "report"},
		{ID: 4, ListID: 2, Title: "review"},
	}}
}

func buildVisibleTodos(t *testing.T, container *Container, counter *testsupport.Counter) *selector.CachedSelector[todoQuery, string, []string] {
	t.Helper()

	s, err := Build(container,
		selector.Create3(
			func(q todoQuery) []Todo { return q.State.Todos },
			func(q todoQuery) int { return q.ListID },
			func(q todoQuery) bool { return q.Done },
			func(todos []Todo, listID int, done bool) []string {
				counter.Inc()
				titles := []string{}
				for _, todo := range todos {
					if todo.ListID == listID && todo.Done == done {
						titles = append(titles, todo.Title)
					}
				}
				return titles
			},
		),
		selector.SerializedResolver(container.KeySerializer(), "visible", func(q todoQuery) []any {
			return []any{q.ListID, q.Done}
		}),
		selector.WithName("visible-todos"),
	)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return s
}

func TestEndToEndSelectorFlow(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	counter := testsupport.NewCounter()
	visible := buildVisibleTodos(t, container, counter)
	state := newTodoState()

	open1 := visible.Select(todoQuery{State: state, ListID: 1})
	open2 := visible.Select(todoQuery{State: state, ListID: 2})
	if fmt.Sprint(open1) != "[milk]" || fmt.Sprint(open2) != "[report review]" {
		t.Fatalf("unexpected results %v %v", open1, open2)
	}

	// alternating between lists hits each key's own instance
	for i := 0; i < 3; i++ {
		visible.Select(todoQuery{State: state, ListID: 1})
		visible.Select(todoQuery{State: state, ListID: 2})
	}
	if counter.Count() != 2 {
		t.Errorf("Expected 2 computations, got %d", counter.Count())
	}

	keys := visible.Keys()
	sort.Strings(keys)
	if fmt.Sprint(keys) != "[visible::1::false visible::2::false]" {
		t.Errorf("unexpected keys %v", keys)
	}

	next := state.withDone(1)
	if got := visible.Select(todoQuery{State: next, ListID: 1}); len(got) != 0 {
		t.Errorf("Expected no open todos on list 1, got %v", got)
	}
	if got := visible.Select(todoQuery{State: next, ListID: 1, Done: true}); fmt.Sprint(got) != "[milk eggs]" {
		t.Errorf("unexpected done todos %v", got)
	}
	if counter.Count() != 4 {
		t.Errorf("Expected 4 computations, got %d", counter.Count())
	}
}

func TestContainerRegistry(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	visible := buildVisibleTodos(t, container, testsupport.NewCounter())

	count, err := Build(container,
		selector.Create1(
			func(q todoQuery) []Todo { return q.State.Todos },
			func(todos []Todo) int { return len(todos) },
		),
		func(q todoQuery) int { return q.ListID },
		selector.WithName("count"),
	)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if container.Len() != 2 {
		t.Fatalf("Expected 2 registered selectors, got %d", container.Len())
	}

	state := newTodoState()
	for _, id := range []int{1, 2} {
		visible.Select(todoQuery{State: state, ListID: id})
		count.Select(todoQuery{State: state, ListID: id})
	}
	visible.Select(todoQuery{State: state, ListID: 1, Done: true})

	stats := container.Stats()
	if len(stats) != 2 {
		t.Fatalf("Expected 2 stats entries, got %d", len(stats))
	}
	if stats[0].Name != "count" || stats[0].Instances != 2 {
		t.Errorf("unexpected stats %+v", stats[0])
	}
	if stats[1].Name != "visible-todos" || stats[1].Instances != 3 || stats[1].ID != visible.ID() {
		t.Errorf("unexpected stats %+v", stats[1])
	}

	if cleared := container.ClearAll(); cleared != 5 {
		t.Errorf("Expected 5 instances cleared, got %d", cleared)
	}
	if visible.Len() != 0 || count.Len() != 0 {
		t.Error("ClearAll() should clear every selector")
	}

	if !container.Unregister(count.ID()) {
		t.Error("Unregister() should report a registered selector")
	}
	if container.Unregister(count.ID()) {
		t.Error("Unregister() should report a missing selector")
	}
	if container.Len() != 1 {
		t.Errorf("Expected 1 registered selector, got %d", container.Len())
	}

	// unregistered selectors keep working on their own
	count.Select(todoQuery{State: state, ListID: 1})
	if container.ClearAll() != 0 || count.Len() != 1 {
		t.Error("ClearAll() should skip unregistered selectors")
	}
}

func TestBuildErrorsAreNotRegistered(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	_, err = Build[todoQuery, int, int](container, selector.Create1(
		func(q todoQuery) int { return q.ListID },
		func(id int) int { return id },
	), nil)
	if err == nil {
		t.Fatal("Build() should fail without a resolver")
	}
	if container.Len() != 0 {
		t.Errorf("Expected no registered selectors, got %d", container.Len())
	}
}

func TestContainerLoggerIsShared(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	container, err := NewContainer(Config{Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}

	visible := buildVisibleTodos(t, container, testsupport.NewCounter())
	visible.Select(todoQuery{State: newTodoState(), ListID: 1})

	if logs.FilterMessage("selector registered").Len() != 1 {
		t.Error("Expected the registration to be logged")
	}
	created := logs.FilterMessage("selector instance created").All()
	if len(created) != 1 {
		t.Fatalf("Expected one creation entry, got %d", len(created))
	}
	if created[0].ContextMap()["key"] != "visible::1::false" {
		t.Errorf("unexpected key field %v", created[0].ContextMap()["key"])
	}
}

func TestOptionsOverrideContainerDefaults(t *testing.T) {
	container, err := NewContainer(Config{Store: selector.DefaultBoundedStoreConfig()})
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}

	s, err := Build(container,
		selector.Create1(func(q todoQuery) int { return q.ListID }, func(id int) int { return id }),
		func(q todoQuery) int { return q.ListID },
		selector.WithConcurrentStore(),
	)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Select(todoQuery{ListID: i % 4})
		}(i)
	}
	wg.Wait()

	if s.Len() != 4 {
		t.Errorf("Expected 4 instances, got %d", s.Len())
	}
}
