package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"studytrack/internal/providers"
	"studytrack/internal/storage/interfaces"
	"studytrack/internal/structures"
	"sync"
	"time"
)

const fileSuffix = ".json.zst"

// FileStore keeps every key in memory and writes changed keys to
// <dataDir>/<key>.json.zst on Flush. Each file is replaced atomically.
type FileStore struct {
	mu         sync.RWMutex
	dir        string
	values     map[string][]byte
	dirty      map[string]struct{}
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*FileStore, error) {
	fs := &FileStore{
		dir:        conf.Persistence.DataDir,
		values:     make(map[string][]byte),
		dirty:      make(map[string]struct{}),
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
	if err := fs.Load(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Load reads every key file of the data directory. Unreadable or corrupt
// files are logged and skipped so their keys read as absent.
func (fs *FileStore) Load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(fs.dir, "*"+fileSuffix))
	if err != nil {
		return err
	}

	for _, file := range files {
		key := strings.TrimSuffix(filepath.Base(file), fileSuffix)
		data, err := os.ReadFile(file)
		if err != nil {
			fs.logger.Errorf(providers.TypeApp, "Failed to read %s: %s", file, err)
			continue
		}
		decompressed, err := fs.compressor.Decompress(data)
		if err != nil {
			fs.logger.Errorf(providers.TypeApp, "Failed to decompress %s: %s", file, err)
			continue
		}
		fs.values[key] = decompressed
	}
	fs.logger.Infof(providers.TypeApp, "Loaded %d keys from %s", len(fs.values), fs.dir)
	return nil
}

func (fs *FileStore) Get(key string) ([]byte, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	val, ok := fs.values[key]
	return val, ok
}

func (fs *FileStore) Set(key string, value []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = value
	fs.dirty[key] = struct{}{}
}

func (fs *FileStore) Keys() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	keys := make([]string, 0, len(fs.values))
	for k := range fs.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dirty reports how many keys are waiting to be flushed.
func (fs *FileStore) Dirty() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.dirty)
}

// Flush writes all changed keys. A key stays dirty when its write fails.
func (fs *FileStore) Flush() error {
	start := time.Now()
	defer func() { fs.metrics.ObservePersistenceDuration(time.Since(start)) }()

	fs.mu.Lock()
	pending := make(map[string][]byte, len(fs.dirty))
	for key := range fs.dirty {
		pending[key] = fs.values[key]
	}
	fs.dirty = make(map[string]struct{})
	fs.mu.Unlock()

	var firstErr error
	for key, value := range pending {
		if err := fs.writeFile(key, value); err != nil {
			fs.logger.Errorf(providers.TypeApp, "Failed to persist %q: %s", key, err)
			fs.mu.Lock()
			if _, changed := fs.dirty[key]; !changed {
				fs.dirty[key] = struct{}{}
			}
			fs.mu.Unlock()
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (fs *FileStore) Close() {
	fs.compressor.Close()
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+fileSuffix)
}

func (fs *FileStore) writeFile(key string, value []byte) error {
	data, err := fs.compressor.Compress(value)
	if err != nil {
		return err
	}

	fileName := fs.path(key)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
