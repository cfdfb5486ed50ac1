package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"codeatlas/internal/types"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, projectID, stage string, g types.ComponentGraph) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	projectID, stage, err := snapshotKey(projectID, stage)
	if err != nil {
		return err
	}
	content, err := json.Marshal(g)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[projectID+"/"+stage] = content
	return nil
}

func (s *MemoryStore) Get(_ context.Context, projectID, stage string) (types.ComponentGraph, error) {
	if s == nil {
		return types.ComponentGraph{}, fmt.Errorf("store is nil")
	}
	projectID, stage, err := snapshotKey(projectID, stage)
	if err != nil {
		return types.ComponentGraph{}, err
	}
	s.mu.RLock()
	raw, ok := s.data[projectID+"/"+stage]
	s.mu.RUnlock()
	if !ok {
		return types.ComponentGraph{}, ErrNotFound
	}
	var g types.ComponentGraph
	if err := json.Unmarshal(raw, &g); err != nil {
		return types.ComponentGraph{}, err
	}
	return g, nil
}

func (s *MemoryStore) List(_ context.Context, projectID string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("project_id is required")
	}
	prefix := projectID + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			out = append(out, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(out)
	return out, nil
}
