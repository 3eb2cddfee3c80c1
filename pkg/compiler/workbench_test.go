package compiler

import (
	"bytes"
	"errors"
	"testing"
)

func TestBufferFlags(t *testing.T) {
	b := NewBuffer("")
	var calls [][2]bool
	b.Subscribe(func(hasContent, unsaved bool) {
		calls = append(calls, [2]bool{hasContent, unsaved})
	})
	b.SetText("int x;")
	b.MarkSaved()
	b.SetText("")

	want := [][2]bool{{false, false}, {true, true}, {true, false}, {false, true}}
	if len(calls) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestWorkbenchCompileAndRun(t *testing.T) {
	b := NewBuffer("")
	w := NewWorkbench(b, "", nil)
	w.Attach(b)

	if w.CanCompile() || w.CanRun() {
		t.Fatal("empty buffer should disable compile and run")
	}
	if _, err := w.Compile(); !errors.Is(err, ErrNoContent) {
		t.Errorf("Compile() error = %v, want ErrNoContent", err)
	}
	if _, _, err := w.Run(); !errors.Is(err, ErrNotCompiled) {
		t.Errorf("Run() error = %v, want ErrNotCompiled", err)
	}

	b.SetText("int x = 5; char y = 2;")
	if !w.CanCompile() || !w.HasUnsavedChanges() {
		t.Fatal("edited buffer should enable compile and report unsaved changes")
	}
	if _, err := w.Compile(); err != nil {
		t.Fatal(err)
	}
	if !w.CanRun() {
		t.Fatal("run should be enabled after compile")
	}
	mem, img, err := w.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(mem, []byte{5, 0, 0, 0, 2}) || img.StaticAllocationSize != 5 {
		t.Errorf("memory = % x, size %d", mem, img.StaticAllocationSize)
	}

	b.SetText("float f;")
	if _, err := w.Compile(); err == nil {
		t.Fatal("expected compile error")
	}
	if w.CanRun() {
		t.Error("failed compile should disable run")
	}

	b.SetText("char c = 1;")
	if _, err := w.Compile(); err != nil {
		t.Fatal(err)
	}
	b.SetText("")
	if w.CanRun() || w.CanCompile() {
		t.Error("clearing the buffer should disable compile and run")
	}
}
