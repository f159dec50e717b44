package router

import "testing"

func TestMemorySurfaceHistory(t *testing.T) {
	s := NewMemorySurface(nil, "")
	var seen []string
	s.Subscribe(func(token string) { seen = append(seen, token) })

	s.SetToken("#a")
	s.SetToken("b")
	s.SetToken("b")
	if s.Token() != "b" {
		t.Errorf("Token() = %q, want b", s.Token())
	}
	if len(seen) != 2 {
		t.Errorf("notifications = %v, want [a b]", seen)
	}

	if !s.Back() || s.Token() != "a" {
		t.Errorf("Back() -> %q, want a", s.Token())
	}
	s.SetToken("c")
	if s.Forward() {
		t.Error("SetToken after Back should drop forward history")
	}
	history, pos := s.History()
	if len(history) != 3 || history[2] != "c" || pos != 2 {
		t.Errorf("History() = %v, %d", history, pos)
	}

	for s.Back() {
	}
	if s.Token() != "" {
		t.Errorf("Token() = %q at start of history, want empty", s.Token())
	}
}

func TestMemorySurfaceUnsubscribe(t *testing.T) {
	s := NewMemorySurface(nil, "")
	calls := 0
	unsub := s.Subscribe(func(string) { calls++ })
	unsub()
	unsub()
	s.SetToken("x")
	if calls != 0 || s.Subscribers() != 0 {
		t.Errorf("calls=%d subscribers=%d, want 0 0", calls, s.Subscribers())
	}
}

func TestMemorySurfaceSubscribeReplaces(t *testing.T) {
	s := NewMemorySurface(nil, "")
	first, second := 0, 0
	unsubFirst := s.Subscribe(func(string) { first++ })
	s.Subscribe(func(string) { second++ })

	s.SetToken("x")
	if first != 0 || second != 1 {
		t.Errorf("first=%d second=%d, want 0 1", first, second)
	}
	if n := s.Subscribers(); n != 1 {
		t.Errorf("Subscribers() = %d, want 1", n)
	}

	// a stale unsubscribe leaves the current subscriber alone
	unsubFirst()
	s.SetToken("y")
	if second != 2 {
		t.Errorf("second = %d after stale unsubscribe, want 2", second)
	}
}

func TestSecondDispatcherTakesOverSurface(t *testing.T) {
	s := NewMemorySurface(nil, "")
	hits := map[string]int{}
	a, b := New(s), New(s)
	a.Register("go", func(*Call) { hits["a"]++ })
	b.Register("go", func(*Call) { hits["b"]++ })
	a.Init(nil)
	b.Init(nil)

	token, _ := Encode("go")
	s.SetToken(token)
	if hits["a"] != 0 || hits["b"] != 1 {
		t.Errorf("hits = %v, want only b", hits)
	}
}
