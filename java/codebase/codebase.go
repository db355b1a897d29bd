package codebase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/stray/config"
	"github.com/dhamidi/stray/java/diagnose"
	"github.com/dhamidi/stray/java/parser"
)

var ErrNotJava = errors.New("not a Java source file")

var log = commonlog.GetLogger("stray.codebase")

type Codebase struct {
	mu       sync.RWMutex
	rootDir  string
	cfg      *config.Config
	files    map[string]*FileInfo
	progress ProgressFunc
}

// FileInfo is the analyzed state of one source file. It is replaced, never
// modified, when the file changes.
type FileInfo struct {
	Path        string
	Content     []byte
	AST         *parser.Node
	Diagnostics []diagnose.Diagnostic
	Lines       *diagnose.LineIndex
}

// ProgressFunc is called after each file analyzed by a scan.
type ProgressFunc func(done, total int, path string)

type Option func(*Codebase)

func WithConfig(cfg *config.Config) Option {
	return func(c *Codebase) {
		c.cfg = cfg
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(c *Codebase) {
		c.progress = fn
	}
}

func New(rootDir string, opts ...Option) *Codebase {
	c := &Codebase{
		rootDir: rootDir,
		cfg:     config.Default(),
		files:   make(map[string]*FileInfo),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// Discover lists the files below dir that match the configured include
// patterns and none of the exclude patterns. Patterns are matched against
// slash separated paths relative to dir.
func (c *Codebase) Discover(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warningf("skipping %s: %s", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && c.matchAny(c.cfg.Exclude, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if c.matchAny(c.cfg.Include, rel) && !c.matchAny(c.cfg.Exclude, rel) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return paths, nil
}

func (c *Codebase) matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			log.Warningf("bad pattern %q: %s", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// ScanAll analyzes every matching file below the root directory.
func (c *Codebase) ScanAll(ctx context.Context) error {
	return c.ScanPaths(ctx, c.rootDir)
}

// ScanPaths analyzes the given files, and the matching files below the
// given directories, using the configured number of workers. Files that
// cannot be read are logged and skipped; ScanPaths stops early only when
// ctx is done.
func (c *Codebase) ScanPaths(ctx context.Context, paths ...string) error {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := c.Discover(path)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}

	log.Infof("analyzing %d files with %d workers", len(files), c.cfg.WorkerCount())

	var mu sync.Mutex
	done := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.WorkerCount())
	for _, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := c.ScanFile(path); err != nil {
				log.Warningf("skipping %s: %s", path, err)
			}
			if c.progress != nil {
				mu.Lock()
				done++
				c.progress(done, len(files), path)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// ScanFile reads and analyzes a .java file.
func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	if filepath.Ext(path) != ".java" {
		return nil, fmt.Errorf("%s: %w", path, ErrNotJava)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile analyzes content as the new state of path.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	ast := parser.ParseOutlineBytes(content, parser.WithFile(filepath.Base(path)))
	f := &FileInfo{
		Path:        path,
		Content:     content,
		AST:         ast,
		Diagnostics: diagnose.Analyze(ast, content, diagnose.WithIndent(c.cfg.Indent)),
		Lines:       diagnose.NewLineIndex(content),
	}
	log.Debugf("analyzed %s: %d diagnostics", path, len(f.Diagnostics))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	return f
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the analyzed files sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	c.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// DiagnosticCount returns the number of diagnostics over all files.
func (c *Codebase) DiagnosticCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, f := range c.files {
		n += len(f.Diagnostics)
	}
	return n
}
