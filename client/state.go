package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// State 디바이스에 저장되는 라이선스 상태
type State struct {
	ActivationToken  string     `json:"activation_token,omitempty"`
	LastValidationAt *time.Time `json:"last_validation_time,omitempty"`
	LicenseExpiresAt *time.Time `json:"license_expires_at,omitempty"`
}

// StateStore 라이선스 상태 저장소
type StateStore interface {
	Load() (State, error)
	Save(State) error
	Clear() error
}

// FileStateStore JSON 파일 기반 상태 저장소 (권한 0600)
type FileStateStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStateStore 파일 저장소 생성
func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

// Path 상태 파일 경로
func (s *FileStateStore) Path() string {
	return s.path
}

// Load 상태 파일 읽기. 파일이 없으면 빈 상태를 반환합니다.
func (s *FileStateStore) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st State
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("failed to parse state file: %w", err)
	}
	return st, nil
}

// Save 임시 파일에 쓴 뒤 rename 으로 교체
func (s *FileStateStore) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".license-state-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set state file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Clear 상태 파일 삭제
func (s *FileStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}

// MemoryStateStore 메모리 상태 저장소 (테스트, 임베딩용)
type MemoryStateStore struct {
	mu    sync.Mutex
	state State
}

func (s *MemoryStateStore) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

func (s *MemoryStateStore) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	return nil
}

func (s *MemoryStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return nil
}
