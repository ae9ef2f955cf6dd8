package render

import "sync"

// AssetRegistry records client-side assets a rendered page needs
type AssetRegistry interface {
	// Register adds an asset and reports whether it was new
	Register(name string) bool
	Names() []string
}

// AssetSet is an AssetRegistry that keeps registration order
type AssetSet struct {
	mu    sync.Mutex
	names []string
	seen  map[string]struct{}
}

func NewAssetSet() *AssetSet {
	return &AssetSet{seen: map[string]struct{}{}}
}

func (s *AssetSet) Register(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[name]; ok {
		return false
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

func (s *AssetSet) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}
