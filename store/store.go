// Package store persists named poses to a JSON file so an operator can
// recall them across sessions.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/rmb11/quadruped"
)

// Store is a durable name->pose mapping. Every mutation is flushed to the
// backing file before it is considered successful, so the in-memory and
// on-disk contents stay consistent. The whole mapping is rewritten on each
// flush; a crash mid-write leaves Load's empty-map fallback as the recovery
// path.
type Store struct {
	path  string
	poses map[string]map[quadruped.ChannelName]float64
}

// New creates a store backed by the given file. Call Load before use.
func New(path string) *Store {
	return &Store{
		path:  path,
		poses: map[string]map[quadruped.ChannelName]float64{},
	}
}

// Load reads the backing file. A missing or corrupt file is never fatal: the
// store starts empty and says so on the log, since the operator is about to
// lose access to previously saved poses.
func (s *Store) Load() error {
	s.poses = map[string]map[quadruped.ChannelName]float64{}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("pose store %s unreadable, starting empty: %v", s.path, err)
		}
		return nil
	}
	if err := json.Unmarshal(b, &s.poses); err != nil {
		log.Printf("pose store %s corrupt, starting empty: %v", s.path, err)
		s.poses = map[string]map[quadruped.ChannelName]float64{}
	}
	return nil
}

// Get returns the stored pose for name.
func (s *Store) Get(name string) (quadruped.Pose, bool) {
	named, ok := s.poses[name]
	if !ok {
		return nil, false
	}
	return quadruped.FromNamed(named), true
}

// Set inserts or overwrites the entry for name and synchronously persists
// the whole mapping before returning.
func (s *Store) Set(name string, pose quadruped.Pose) error {
	if name == "" {
		return fmt.Errorf("pose name must not be empty")
	}
	previous, existed := s.poses[name]
	s.poses[name] = pose.Named()

	if err := s.flush(); err != nil {
		if existed {
			s.poses[name] = previous
		} else {
			delete(s.poses, name)
		}
		return err
	}
	return nil
}

// Names returns the stored pose names, sorted for stable presentation.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.poses))
	for name := range s.poses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) flush() error {
	b, err := json.MarshalIndent(s.poses, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pose store: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0644); err != nil {
		return fmt.Errorf("write pose store: %w", err)
	}
	return nil
}
