package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

const maxSuggestions = 3

// Repository indexes compiled contracts from a Foundry out/ or Hardhat
// artifacts/ directory. The index is built once per process.
type Repository struct {
	projectRoot  string
	artifactsDir string
	log          *slog.Logger

	mu        sync.RWMutex
	indexed   bool
	contracts map[string]*models.ContractDescription   // key: "source:Name"
	byName    map[string][]*models.ContractDescription // key: Name
}

// NewRepository creates a new contract repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot:  cfg.ProjectRoot,
		artifactsDir: cfg.Deploy.ArtifactsDir,
		log:          log.With("component", "ContractRepository"),
	}
}

// Index walks the build output and records every deployable contract
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.contracts = make(map[string]*models.ContractDescription)
	r.byName = make(map[string][]*models.ContractDescription)

	if _, err := os.Stat(r.artifactsDir); os.IsNotExist(err) {
		return fmt.Errorf("build output directory %s not found, compile the contracts first", r.artifactsDir)
	}

	err := filepath.WalkDir(r.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		r.processArtifact(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", r.artifactsDir, err)
	}

	r.indexed = true
	r.log.Debug("indexed build output", "dir", r.artifactsDir, "contracts", len(r.contracts))
	return nil
}

// processArtifact adds a single artifact file; files that are not deployable
// contracts are skipped.
func (r *Repository) processArtifact(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.log.Debug("skipping unreadable artifact", "path", path, "error", err)
		return
	}

	var artifact models.BuildArtifact
	if err := json.Unmarshal(data, &artifact); err != nil || len(artifact.ABI) == 0 {
		return
	}

	relPath, err := filepath.Rel(r.projectRoot, path)
	if err != nil {
		relPath = path
	}

	description, err := models.NewContractDescription(relPath, &artifact)
	if err != nil {
		r.log.Debug("skipping artifact", "path", relPath, "reason", err)
		return
	}

	key := description.SourcePath + ":" + description.Name
	if _, exists := r.contracts[key]; exists {
		return
	}
	r.contracts[key] = description
	r.byName[description.Name] = append(r.byName[description.Name], description)
}

// GetContract looks up a contract by name or by "source:Name"
func (r *Repository) GetContract(ctx context.Context, name string) (*models.ContractDescription, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if description, ok := r.contracts[name]; ok {
		return description, nil
	}

	matches := r.byName[name]
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, &domain.UnknownContractError{Name: name, Suggestions: r.suggest(name)}
	default:
		keys := lo.Map(matches, func(d *models.ContractDescription, _ int) string {
			return d.SourcePath + ":" + d.Name
		})
		sort.Strings(keys)
		return nil, fmt.Errorf("contract name %q is ambiguous, use one of: %s", name, strings.Join(keys, ", "))
	}
}

// ListContracts returns all deployable contracts sorted by name
func (r *Repository) ListContracts(ctx context.Context) ([]*models.ContractDescription, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptions := lo.Values(r.contracts)
	sort.Slice(descriptions, func(i, j int) bool {
		if descriptions[i].Name != descriptions[j].Name {
			return descriptions[i].Name < descriptions[j].Name
		}
		return descriptions[i].SourcePath < descriptions[j].SourcePath
	})
	return descriptions, nil
}

// suggest returns the closest contract names by fuzzy match
func (r *Repository) suggest(name string) []string {
	names := lo.Keys(r.byName)
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		// Fall back to case-insensitive containment for typos fuzzy cannot bridge
		lower := strings.ToLower(name)
		return lo.Slice(lo.Filter(names, func(n string, _ int) bool {
			ln := strings.ToLower(n)
			return strings.Contains(ln, lower) || strings.Contains(lower, ln)
		}), 0, maxSuggestions)
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

// Ensure the adapter implements the interface
var _ usecase.ContractRepository = (*Repository)(nil)
