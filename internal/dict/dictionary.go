// Package dict manages named word dictionaries persisted in a store.Backend.
//
// A Dictionary keeps the words of the selected dictionary in memory, in
// first-insertion order, and mirrors every new word into the backend
// namespace dicts/<name>. Membership and enumeration never touch the backend.
//
// A Dictionary is not safe for concurrent use.
package dict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/wordict/internal/model"
	"github.com/verte-zerg/wordict/internal/store"
	"github.com/verte-zerg/wordict/internal/wordlist"
)

const (
	// DefaultName is selected when no dictionary name is given.
	DefaultName = "default"
	// RootNamespace holds one child namespace per dictionary.
	RootNamespace = "dicts"
	// MaxNameLength is the longest accepted dictionary name, in characters.
	MaxNameLength = 80
	// MaxUploadBytes is the largest file the CLI accepts for upload.
	MaxUploadBytes int64 = 200 * 1024 * 1024

	markerValue = "word"
)

var errInconsistent = errors.New("dictionary state is inconsistent after a failed clear; load it again first")

// Dictionary is the working set of the selected dictionary.
type Dictionary struct {
	backend store.Backend
	node    store.Node
	logger  *slog.Logger

	words []string
	index map[string]struct{}

	inconsistent bool
}

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dictionary) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New returns a Dictionary with the default dictionary selected.
func New(ctx context.Context, backend store.Backend, opts ...Option) (*Dictionary, error) {
	if backend == nil {
		return nil, InvalidArgument("backend is required")
	}
	d := &Dictionary{
		backend: backend,
		logger:  slog.New(slog.DiscardHandler),
		index:   map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.SelectOrCreate(ctx, DefaultName); err != nil {
		return nil, err
	}
	return d, nil
}

// SelectOrCreate makes name the active dictionary, creating it when missing.
// An empty name selects DefaultName. The in-memory words are dropped; call
// Load to populate them.
func (d *Dictionary) SelectOrCreate(ctx context.Context, name string) error {
	if name == "" {
		name = DefaultName
	}
	if err := validateName(name); err != nil {
		return err
	}
	node, err := d.backend.Node(ctx, RootNamespace, name)
	if err != nil {
		return backendError("select dictionary", name, err)
	}
	d.node = node
	d.reset()
	d.inconsistent = false
	d.logger.Debug("dictionary selected", slog.String("dict", name))
	return nil
}

// Name returns the name of the active dictionary.
func (d *Dictionary) Name() string {
	return d.node.Name()
}

// Load replaces the in-memory words with everything stored for the active dictionary.
// On failure no words remain in memory.
func (d *Dictionary) Load(ctx context.Context) error {
	if err := d.load(ctx); err != nil {
		return err
	}
	d.inconsistent = false
	return nil
}

func (d *Dictionary) load(ctx context.Context) error {
	d.reset()
	keys, err := d.node.Keys(ctx)
	if err != nil {
		return backendError("load dictionary", d.Name(), err)
	}
	for _, key := range keys {
		d.add(key)
	}
	d.logger.Debug("dictionary loaded", slog.String("dict", d.Name()), slog.Int("words", len(d.words)))
	return nil
}

// UploadFromFile adds the words of the text file at path to the active
// dictionary and flushes them to the backend. Stored words are loaded first,
// so an upload never removes anything. It returns how many words were new.
//
// Callers should reject oversized files with CheckUploadSize beforehand.
func (d *Dictionary) UploadFromFile(ctx context.Context, path string) (int, error) {
	if d.inconsistent {
		return 0, backendError("upload words", d.Name(), errInconsistent)
	}
	if err := d.load(ctx); err != nil {
		return 0, err
	}

	lines, err := wordlist.ReadLines(path)
	if err != nil {
		return 0, fileError("read upload file", path, err)
	}

	added := 0
	for _, line := range lines {
		for _, word := range wordlist.ExtractWords(line) {
			if word == "" || d.Contains(word) {
				continue
			}
			d.add(word)
			if err := d.node.Put(ctx, word, markerValue); err != nil {
				return added, backendError("store word", d.Name(), err)
			}
			added++
		}
	}
	if err := d.node.Flush(ctx); err != nil {
		return added, backendError("flush dictionary", d.Name(), err)
	}
	d.logger.Debug("upload complete",
		slog.String("dict", d.Name()),
		slog.String("file", path),
		slog.Int("lines", len(lines)),
		slog.Int("added", added),
		slog.Int("words", len(d.words)),
	)
	return added, nil
}

// Contains reports whether word is in the in-memory set.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.index[word]
	return ok
}

// Words returns the in-memory words in insertion order.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.words...)
}

// Len returns the number of in-memory words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Clear removes every word of the active dictionary from memory and from the backend.
// If the backend cannot be cleared, uploads are refused until the dictionary
// is loaded, cleared, or selected again.
func (d *Dictionary) Clear(ctx context.Context) error {
	d.reset()
	if err := d.node.Clear(ctx); err != nil {
		d.inconsistent = true
		return backendError("clear dictionary", d.Name(), err)
	}
	if err := d.node.Flush(ctx); err != nil {
		d.inconsistent = true
		return backendError("flush dictionary", d.Name(), err)
	}
	d.inconsistent = false
	d.logger.Debug("dictionary cleared", slog.String("dict", d.Name()))
	return nil
}

func (d *Dictionary) add(word string) {
	if _, ok := d.index[word]; ok {
		return
	}
	d.index[word] = struct{}{}
	d.words = append(d.words, word)
}

func (d *Dictionary) reset() {
	d.words = nil
	d.index = map[string]struct{}{}
}

// Names lists the dictionaries stored in backend, sorted.
func Names(ctx context.Context, backend store.Backend) ([]string, error) {
	names, err := backend.Children(ctx, RootNamespace)
	if err != nil {
		return nil, backendError("list dictionaries", RootNamespace, err)
	}
	return names, nil
}

// Summaries returns every stored dictionary with its persisted word count.
func Summaries(ctx context.Context, backend store.Backend) ([]model.DictSummary, error) {
	names, err := Names(ctx, backend)
	if err != nil {
		return nil, err
	}
	out := make([]model.DictSummary, 0, len(names))
	for _, name := range names {
		node, err := backend.Node(ctx, RootNamespace, name)
		if err != nil {
			return nil, backendError("open dictionary", name, err)
		}
		keys, err := node.Keys(ctx)
		if err != nil {
			return nil, backendError("load dictionary", name, err)
		}
		out = append(out, model.DictSummary{Name: name, Words: len(keys)})
	}
	return out, nil
}

// CheckUploadSize fails with ErrFileTooLarge when the file at path exceeds limit bytes.
func CheckUploadSize(path string, limit int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fileError("stat upload file", path, err)
	}
	if info.IsDir() {
		return fileError("stat upload file", path, errors.New("is a directory"))
	}
	if info.Size() > limit {
		return &Error{
			Kind: ErrFileTooLarge,
			Op:   "upload words",
			Path: path,
			Err:  fmt.Errorf("upload size limit exceeded (%d bytes)", limit),
		}
	}
	return nil
}

func validateName(name string) error {
	if strings.Contains(name, "/") {
		return InvalidArgument("dictionary name %q must not contain '/'", name)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return InvalidArgument("dictionary name is longer than %d characters", MaxNameLength)
	}
	return nil
}
