package compiler

import (
	"errors"

	"github.com/raymyers/ramcc/pkg/memgen"
)

var (
	// ErrNoContent is returned when compiling an empty source.
	ErrNoContent = errors.New("nothing to compile")
	// ErrNotCompiled is returned when running before a successful compile.
	ErrNotCompiled = errors.New("nothing to run")
)

// SourceProvider supplies the text to compile.
type SourceProvider interface {
	CurrentText() string
}

// Buffer is an in-memory SourceProvider that reports whether it has
// content and whether it differs from its last saved text.
type Buffer struct {
	text      string
	saved     string
	listeners []func(hasContent, unsaved bool)
}

// NewBuffer returns a buffer holding text, considered saved.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text, saved: text}
}

func (b *Buffer) CurrentText() string { return b.text }

func (b *Buffer) HasContent() bool { return b.text != "" }

func (b *Buffer) HasUnsavedChanges() bool { return b.text != b.saved }

// Subscribe registers fn to be called with the current flags now and after
// every change.
func (b *Buffer) Subscribe(fn func(hasContent, unsaved bool)) {
	b.listeners = append(b.listeners, fn)
	fn(b.HasContent(), b.HasUnsavedChanges())
}

// SetText replaces the buffer's text.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.notify()
}

// MarkSaved records the current text as saved.
func (b *Buffer) MarkSaved() {
	b.saved = b.text
	b.notify()
}

func (b *Buffer) notify() {
	for _, fn := range b.listeners {
		fn(b.HasContent(), b.HasUnsavedChanges())
	}
}

// Workbench is the compile/run command surface over a source provider.
// Compile is enabled only while the source has content; Run only after a
// compile succeeded.
type Workbench struct {
	source     SourceProvider
	filename   string
	opts       *Options
	hasContent bool
	unsaved    bool
	last       *Result
}

// NewWorkbench creates a workbench compiling source under filename.
func NewWorkbench(source SourceProvider, filename string, opts *Options) *Workbench {
	return &Workbench{source: source, filename: filename, opts: opts}
}

// Attach subscribes the workbench to a buffer's change notifications.
func (w *Workbench) Attach(b *Buffer) {
	b.Subscribe(w.Notify)
}

// Notify updates the source flags. Emptying the source discards the last
// compile.
func (w *Workbench) Notify(hasContent, unsaved bool) {
	if !hasContent {
		w.last = nil
	}
	w.hasContent = hasContent
	w.unsaved = unsaved
}

func (w *Workbench) CanCompile() bool { return w.hasContent }

func (w *Workbench) CanRun() bool { return w.last != nil }

// HasUnsavedChanges reports the last flag received from the source.
func (w *Workbench) HasUnsavedChanges() bool { return w.unsaved }

// Compile compiles the provider's current text.
func (w *Workbench) Compile() (*Result, error) {
	w.last = nil
	if !w.hasContent {
		return nil, ErrNoContent
	}
	res, err := Compile(w.source.CurrentText(), w.filename, w.opts)
	if err != nil {
		return nil, err
	}
	w.last = res
	return res, nil
}

// Run initializes the last compiled image and returns its statically
// allocated bytes.
func (w *Workbench) Run() ([]byte, *memgen.Image, error) {
	if w.last == nil {
		return nil, nil, ErrNotCompiled
	}
	img := w.last.Image
	mem := Run(img)
	return mem[:img.StaticAllocationSize], img, nil
}
