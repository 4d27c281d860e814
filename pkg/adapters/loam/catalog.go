package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/balance/pkg/adapters/memory"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"
)

// Open initializes a read-only Loam repository at dir and loads its puzzles.
func Open(ctx context.Context, dir string) (*memory.Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve puzzles dir: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open puzzles dir %s: %w", absPath, err)
	}
	return Load(ctx, loam.NewTypedRepository[PuzzleMetadata](repo))
}

// Load reads every document in repo as a puzzle and returns them as a catalog,
// ordered by lesson then ID. IDs default to the file name without extension.
func Load(ctx context.Context, repo *loam.TypedRepository[PuzzleMetadata]) (*memory.Catalog, error) {
	docs, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	puzzles := make([]domain.Puzzle, 0, len(docs))
	for _, doc := range docs {
		p, err := decodePuzzle(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, err
		}
		if existing, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("collision detected: puzzle '%s' is defined in both '%s' and '%s'", p.ID, existing, doc.ID)
		}
		seen[p.ID] = doc.ID
		puzzles = append(puzzles, p)
	}

	sort.SliceStable(puzzles, func(i, j int) bool {
		if puzzles[i].Lesson != puzzles[j].Lesson {
			return puzzles[i].Lesson < puzzles[j].Lesson
		}
		return puzzles[i].ID < puzzles[j].ID
	})
	return memory.NewCatalog(puzzles...)
}

func decodePuzzle(docID string, meta PuzzleMetadata, content string) (domain.Puzzle, error) {
	var rec record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err != nil {
		return domain.Puzzle{}, err
	}
	raw := map[string]any{
		"id":     meta.ID,
		"label":  meta.Label,
		"lesson": meta.Lesson,
		"a":      meta.A,
		"b":      meta.B,
		"c":      meta.C,
	}
	if meta.Right != nil {
		raw["right"] = meta.Right
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.Puzzle{}, fmt.Errorf("invalid puzzle metadata in %s: %w", docID, err)
	}

	p := domain.Puzzle{
		ID:     rec.ID,
		Label:  rec.Label,
		Lesson: rec.Lesson,
		A:      rec.A,
		B:      rec.B,
		C:      rec.C,
	}
	if p.ID == "" {
		p.ID = trimExtension(docID)
	}
	if p.Label == "" {
		p.Label = firstLine(content)
	}
	if rec.Right != nil {
		p.Right = &domain.Expression{A: rec.Right.A, B: rec.Right.B}
	}
	if err := p.Validate(); err != nil {
		return domain.Puzzle{}, fmt.Errorf("invalid puzzle in %s: %w", docID, err)
	}
	return p, nil
}

func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			return line
		}
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
