package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"

	"gemini-rag/internal/config"
	"gemini-rag/internal/embedding"
	"gemini-rag/pkg/logger"
)

// Mode tags the initialization strategy that ended up backing the store.
type Mode string

const (
	ModePersistent  Mode = "persistent"
	ModeMemory      Mode = "memory"
	ModeUnavailable Mode = "unavailable"
)

// Resolution tags how the configured collection name was resolved.
type Resolution string

const (
	// ResolutionOpened means the configured collection already existed.
	ResolutionOpened Resolution = "opened"
	// ResolutionCreated means a new empty collection was created.
	ResolutionCreated Resolution = "created"
	// ResolutionSubstituted means the configured name was missing in a
	// read-only deployment and the first existing collection was used.
	ResolutionSubstituted Resolution = "substituted"
	// ResolutionNone means no collection could be resolved.
	ResolutionNone Resolution = "none"
)

// ErrUnavailable is returned by every operation once the gateway failed to
// initialize. There is no reconnection; the state is fixed for the
// process's lifetime.
var ErrUnavailable = errors.New("vector store is unavailable")

// Chunk is a stored unit of text retrieved by similarity search. Chunks
// are written by the out-of-band ingestion process and never mutated here.
type Chunk struct {
	ID         string
	Text       string
	Metadata   map[string]string
	Similarity float32
}

// CollectionInfo is the introspection view of a collection.
type CollectionInfo struct {
	Name     string            `json:"name"`
	Metadata map[string]string `json:"metadata"`
}

// Status captures the tagged outcome of initialization so health
// introspection can surface it verbatim instead of burying it in logs.
type Status struct {
	Mode              Mode
	Resolution        Resolution
	Detail            string
	CollectionName    string
	PersistPath       string
	EmbeddingDegraded bool
}

// Store is the gateway in front of the chromem vector database. It is a
// process-wide singleton: opened once at startup, read-mostly afterwards.
type Store struct {
	db  *chromem.DB
	col *chromem.Collection
	log *logger.Logger

	status Status
}

// Open tries the initialization strategies in order: persistent store at
// the configured path, then an in-memory store. If both fail the gateway
// is marked unavailable and every subsequent query fails fast. Open never
// returns an error; the outcome is recorded in Status.
func Open(cfg config.StoreConfig, embedFn chromem.EmbeddingFunc, log *logger.Logger) *Store {
	s := &Store{
		log: log,
		status: Status{
			Mode:           ModeUnavailable,
			Resolution:     ResolutionNone,
			CollectionName: cfg.CollectionName,
			PersistPath:    cfg.PersistPath,
		},
	}

	if embedFn == nil {
		// No embedding provider configured: fall back to the store's
		// local text-hash similarity. Quality degrades; health reports it.
		embedFn = embedding.ChromemFunc(embedding.NewLocalModel())
		s.status.EmbeddingDegraded = true
	}

	strategies := []struct {
		mode Mode
		open func() (*chromem.DB, error)
	}{
		{ModePersistent, func() (*chromem.DB, error) {
			return chromem.NewPersistentDB(cfg.PersistPath, false)
		}},
		{ModeMemory, func() (*chromem.DB, error) {
			return chromem.NewDB(), nil
		}},
	}

	var lastDetail string
	for _, strategy := range strategies {
		db, err := strategy.open()
		if err != nil {
			lastDetail = fmt.Sprintf("%s store at '%s' failed: %v", strategy.mode, cfg.PersistPath, err)
			log.Warn(lastDetail)
			continue
		}

		col, resolution, detail, err := resolveCollection(db, cfg, embedFn)
		if err != nil {
			if cfg.ReadOnly {
				// A read-only store with no collections is terminal: an
				// empty fallback store could not serve queries either.
				s.status.Detail = detail
				log.Error(detail)
				return s
			}
			// Otherwise the resolution failure belongs to this backing
			// store (e.g. an unwritable persist directory); the next
			// strategy may still succeed.
			lastDetail = detail
			log.Warn(detail)
			continue
		}

		s.db = db
		s.col = col
		s.status.Mode = strategy.mode
		s.status.Resolution = resolution
		s.status.Detail = detail
		s.status.CollectionName = col.Name
		log.Info(detail)
		return s
	}

	s.status.Detail = lastDetail
	log.Error("all vector store initialization strategies failed; gateway marked unavailable")
	return s
}

// resolveCollection applies the collection resolution policy: open the
// configured name if it exists, otherwise create it, or in read-only
// deployments substitute the first existing collection.
func resolveCollection(db *chromem.DB, cfg config.StoreConfig, embedFn chromem.EmbeddingFunc) (*chromem.Collection, Resolution, string, error) {
	existing := db.ListCollections()

	if _, ok := existing[cfg.CollectionName]; ok {
		col := db.GetCollection(cfg.CollectionName, embedFn)
		return col, ResolutionOpened,
			fmt.Sprintf("opened existing collection '%s'", cfg.CollectionName), nil
	}

	if cfg.ReadOnly {
		names := make([]string, 0, len(existing))
		for name := range existing {
			names = append(names, name)
		}
		if len(names) == 0 {
			detail := fmt.Sprintf("collection '%s' not found and read-only store has no collections", cfg.CollectionName)
			return nil, ResolutionNone, detail, errors.New(detail)
		}
		sort.Strings(names)
		col := db.GetCollection(names[0], embedFn)
		return col, ResolutionSubstituted,
			fmt.Sprintf("collection '%s' not found in read-only store; substituted '%s'", cfg.CollectionName, names[0]), nil
	}

	col, err := db.CreateCollection(cfg.CollectionName, nil, embedFn)
	if err != nil {
		detail := fmt.Sprintf("failed to create collection '%s': %v", cfg.CollectionName, err)
		return nil, ResolutionNone, detail, err
	}
	return col, ResolutionCreated,
		fmt.Sprintf("created new collection '%s'", cfg.CollectionName), nil
}

// Available reports whether the gateway initialized successfully.
func (s *Store) Available() bool { return s.col != nil }

// Status returns the tagged initialization outcome.
func (s *Store) Status() Status { return s.status }

// Query returns the top-k chunks most similar to text, in the store's
// ranking order. The raw query text is forwarded as-is; store errors are
// surfaced to the caller, never retried or masked.
func (s *Store) Query(ctx context.Context, text string, k int) ([]Chunk, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	if k <= 0 {
		return nil, fmt.Errorf("result count must be positive, got %d", k)
	}

	count := s.col.Count()
	if count == 0 {
		return []Chunk{}, nil
	}
	if k > count {
		// The store rejects requests for more results than it holds.
		k = count
	}

	results, err := s.col.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(results))
	for i, res := range results {
		chunks[i] = Chunk{
			ID:         res.ID,
			Text:       res.Content,
			Metadata:   res.Metadata,
			Similarity: res.Similarity,
		}
	}
	return chunks, nil
}

// Count returns the number of chunks in the active collection.
func (s *Store) Count() (int, error) {
	if !s.Available() {
		return 0, ErrUnavailable
	}
	return s.col.Count(), nil
}

// Collections lists the collections known to the store, sorted by name.
// An unavailable store yields an empty list rather than an error so the
// introspection endpoint stays usable.
func (s *Store) Collections() []CollectionInfo {
	if s.db == nil {
		return []CollectionInfo{}
	}
	existing := s.db.ListCollections()
	infos := make([]CollectionInfo, 0, len(existing))
	for name := range existing {
		infos = append(infos, CollectionInfo{Name: name})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// AddDocuments writes chunks into the active collection. Query handling
// never calls this; it exists for the out-of-band ingestion tooling and
// for test seeding.
func (s *Store) AddDocuments(ctx context.Context, chunks []Chunk) error {
	if !s.Available() {
		return ErrUnavailable
	}
	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		docs[i] = chromem.Document{
			ID:       id,
			Content:  c.Text,
			Metadata: c.Metadata,
		}
	}
	return s.col.AddDocuments(ctx, docs, 1)
}
