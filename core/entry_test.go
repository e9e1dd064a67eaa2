package core

import (
	"errors"
	"testing"
)

var errTest = errors.New("boom")

func TestEntryPool(t *testing.T) {
	// Get an entry from the pool
	e1 := GetEntry()
	if e1 == nil {
		t.Fatal("GetEntry() returned nil")
	}

	// Verify initial state
	if len(e1.Fields) != 0 {
		t.Errorf("Expected empty fields, got %d", len(e1.Fields))
	}

	// Add some data
	e1.Message = "test"
	e1.Logger = "app"
	e1.Err = errTest
	e1.Fields = append(e1.Fields, Field{Key: "test", Str: "value"})

	// Return to pool
	PutEntry(e1)

	// Get another entry
	e2 := GetEntry()
	if e2 == nil {
		t.Fatal("GetEntry() returned nil after PutEntry()")
	}

	// Verify it's clean
	if e2.Message != "" {
		t.Errorf("Expected empty message after pool reset, got %q", e2.Message)
	}
	if len(e2.Fields) != 0 {
		t.Errorf("Expected empty fields after pool reset, got %d", len(e2.Fields))
	}
	if e2.Err != nil || e2.Logger != "" {
		t.Errorf("Expected cleared logger and error, got %q %v", e2.Logger, e2.Err)
	}
}

func TestGetCaller(t *testing.T) {
	caller := GetCaller(0)
	if !caller.Defined {
		t.Fatal("GetCaller() returned undefined CallerInfo")
	}

	if caller.File == "" {
		t.Error("Expected non-empty file")
	}
	if caller.ShortFile == "" {
		t.Error("Expected non-empty short file")
	}
	if caller.Line == 0 {
		t.Error("Expected non-zero line number")
	}
	if caller.Function != "TestGetCaller" {
		t.Errorf("Expected function TestGetCaller, got %q", caller.Function)
	}
	if caller.Package != "core" {
		t.Errorf("Expected package core, got %q", caller.Package)
	}
}

func TestSplitFuncName(t *testing.T) {
	tests := []struct {
		full, pkg, fn string
	}{
		{"github.com/Philipp01105/logz/router.(*Router).Configure", "router", "(*Router).Configure"},
		{"main.main", "main", "main"},
		{"main.run.func1", "main", "run.func1"},
		{"runtime", "runtime", ""},
	}
	for _, tt := range tests {
		pkg, fn := splitFuncName(tt.full)
		if pkg != tt.pkg || fn != tt.fn {
			t.Errorf("splitFuncName(%q) = %q, %q; want %q, %q", tt.full, pkg, fn, tt.pkg, tt.fn)
		}
	}
}

func TestGetOrigin(t *testing.T) {
	o := GetOrigin()
	if o.Goroutine == 0 {
		t.Error("Expected non-zero goroutine id")
	}
	if o.PID == 0 || o.Process == "" {
		t.Errorf("Expected process identity, got %+v", o)
	}

	done := make(chan uint64)
	go func() { done <- GetOrigin().Goroutine }()
	if other := <-done; other == o.Goroutine {
		t.Errorf("Expected distinct goroutine ids, both %d", other)
	}
}

func BenchmarkGetEntry(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := GetEntry()
		PutEntry(e)
	}
}

func BenchmarkGetEntryWithFields(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := GetEntry()
		e.Message = "test message"
		e.Level = InfoLevel
		e.Fields = append(e.Fields, Field{Key: "key1", Str: "value1"})
		e.Fields = append(e.Fields, Field{Key: "key2", Type: IntType, Int64: 42})
		PutEntry(e)
	}
}
