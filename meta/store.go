package meta

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

var (
	// ErrChecksum means the stored save does not match its digest.
	ErrChecksum = errors.New("meta: save checksum mismatch")
	// ErrNoSave means nothing has been saved yet.
	ErrNoSave = errors.New("meta: no save")
)

// Save is the persisted progression.
type Save struct {
	Currency int            `yaml:"currency"`
	Levels   map[string]int `yaml:"levels"`
}

// Store persists a Save.
type Store interface {
	Load() (Save, error)
	Save(s Save) error
	Delete() error
}

type envelope struct {
	Payload  string `yaml:"payload"`
	Checksum string `yaml:"checksum"`
}

// checksumKey keys the digest so a hand-edited payload is detected.
var checksumKey = []byte("groggy-meta-v1")

func digest(payload []byte) (string, error) {
	h, err := blake2b.New256(checksumKey)
	if err != nil {
		return "", err
	}
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Encode serialises s as YAML wrapped with its keyed BLAKE2b-256 digest.
func Encode(s Save) ([]byte, error) {
	payload, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("meta: marshal save: %w", err)
	}
	sum, err := digest(payload)
	if err != nil {
		return nil, fmt.Errorf("meta: checksum: %w", err)
	}
	out, err := yaml.Marshal(envelope{Payload: string(payload), Checksum: sum})
	if err != nil {
		return nil, fmt.Errorf("meta: marshal envelope: %w", err)
	}
	return out, nil
}

// Decode verifies and unwraps data produced by Encode.
func Decode(data []byte) (Save, error) {
	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return Save{}, fmt.Errorf("meta: unmarshal envelope: %w", err)
	}
	sum, err := digest([]byte(env.Payload))
	if err != nil {
		return Save{}, fmt.Errorf("meta: checksum: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(sum), []byte(env.Checksum)) != 1 {
		return Save{}, ErrChecksum
	}
	var s Save
	if err := yaml.Unmarshal([]byte(env.Payload), &s); err != nil {
		return Save{}, fmt.Errorf("meta: unmarshal save: %w", err)
	}
	return s, nil
}

const (
	saveObject   = "meta"
	saveProperty = "progression"
)

// GdataStore keeps the save in the per-user application data directory.
type GdataStore struct {
	m *gdata.Manager
}

func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("meta: open gdata %s: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

func (s *GdataStore) Load() (Save, error) {
	if !s.m.ObjectPropExists(saveObject, saveProperty) {
		return Save{}, ErrNoSave
	}
	data, err := s.m.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		return Save{}, fmt.Errorf("meta: load save: %w", err)
	}
	return Decode(data)
}

func (s *GdataStore) Save(save Save) error {
	data, err := Encode(save)
	if err != nil {
		return err
	}
	if err := s.m.SaveObjectProp(saveObject, saveProperty, data); err != nil {
		return fmt.Errorf("meta: write save: %w", err)
	}
	return nil
}

func (s *GdataStore) Delete() error {
	if !s.m.ObjectPropExists(saveObject, saveProperty) {
		return nil
	}
	if err := s.m.DeleteObjectProp(saveObject, saveProperty); err != nil {
		return fmt.Errorf("meta: delete save: %w", err)
	}
	return nil
}

// MemoryStore keeps the encoded save in memory. Raw exposes the bytes so
// tests can tamper with them.
type MemoryStore struct {
	mu  sync.Mutex
	Raw []byte
}

func (s *MemoryStore) Load() (Save, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Raw == nil {
		return Save{}, ErrNoSave
	}
	return Decode(s.Raw)
}

func (s *MemoryStore) Save(save Save) error {
	data, err := Encode(save)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.Raw = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	s.Raw = nil
	s.mu.Unlock()
	return nil
}
