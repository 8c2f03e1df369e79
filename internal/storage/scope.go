// Package storage provides per-job temporary storage scopes and the
// post-download size check.
package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Scope is an isolated temporary directory owned by exactly one download
// job. Two jobs never share a scope, even for the same user.
type Scope struct {
	dir      string
	released bool
}

// NewScope creates a fresh directory under parent, named after the job ID.
func NewScope(parent, jobID string) (*Scope, error) {
	dir := filepath.Join(parent, "tubefetch-"+jobID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage scope: %w", err)
	}
	return &Scope{dir: dir}, nil
}

// Dir returns the scope's directory path.
func (s *Scope) Dir() string {
	return s.dir
}

// Release removes the scope and everything inside it. Safe to call more
// than once; errors are logged, not returned, because release runs on every
// exit path and has no caller that can recover.
func (s *Scope) Release() {
	if s.released {
		return
	}
	s.released = true
	if err := os.RemoveAll(s.dir); err != nil {
		log.Printf("[STORAGE] Failed to remove scope %s: %v", s.dir, err)
	}
}
