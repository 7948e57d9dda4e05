// Package sysfs reads block device attributes from a sysfs tree.
package sysfs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sigreer/partplan/internal/cache"
)

// DefaultRoot is where sysfs is mounted on a running system.
const DefaultRoot = "/sys"

// kernelSectorSize is the unit of the sysfs size attribute, regardless of the
// device's logical block size.
const kernelSectorSize = 512

// Store reads attributes under <root>/class/block/<device>/. Attribute
// contents are cached; sysfs attributes are small and reading them is cheap,
// but a plan queries the same devices repeatedly.
type Store struct {
	root  string
	cache *cache.Cache[[]byte]
}

// New creates a store rooted at root. An empty root means DefaultRoot.
func New(root string) *Store {
	if root == "" {
		root = DefaultRoot
	}
	return &Store{
		root:  root,
		cache: cache.New[[]byte](),
	}
}

func (s *Store) attributePath(device, attribute string) string {
	return filepath.Join(s.root, "class", "block", device, attribute)
}

func (s *Store) read(device, attribute string) ([]byte, error) {
	key := device + "/" + attribute
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	data, err := os.ReadFile(s.attributePath(device, attribute))
	if err != nil {
		return nil, err
	}

	ttl := cache.TTLStatic
	if attribute == "size" {
		ttl = cache.TTLGeometry
	}
	s.cache.Set(key, data, ttl)
	return data, nil
}

// OpenAttribute returns the contents of a device attribute as a stream.
func (s *Store) OpenAttribute(device, attribute string) (io.ReadCloser, error) {
	data, err := s.read(device, attribute)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Attribute returns a device attribute with surrounding whitespace removed.
func (s *Store) Attribute(device, attribute string) (string, bool) {
	data, err := s.read(device, attribute)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// Geometry returns the number of logical sectors and the logical sector size
// of a device. ok is false if either attribute is missing or malformed.
func (s *Store) Geometry(device string) (sectors, sectorSize uint64, ok bool) {
	size, found := s.Attribute(device, "size")
	if !found {
		return 0, 0, false
	}
	kernelSectors, err := strconv.ParseUint(size, 10, 64)
	if err != nil {
		return 0, 0, false
	}

	sectorSize = kernelSectorSize
	if lbs, found := s.Attribute(device, "queue/logical_block_size"); found {
		if v, err := strconv.ParseUint(lbs, 10, 64); err == nil && v > 0 {
			sectorSize = v
		}
	}

	return kernelSectors * kernelSectorSize / sectorSize, sectorSize, true
}

// Model returns the vendor and model strings of a device joined by a space,
// or an empty string when neither is exposed.
func (s *Store) Model(device string) string {
	var parts []string
	for _, attr := range []string{"device/vendor", "device/model"} {
		if v, ok := s.Attribute(device, attr); ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
