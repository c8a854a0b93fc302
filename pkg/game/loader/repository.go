package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"limeal.fr/launchygo-resolver/pkg/connectors"
	"limeal.fr/launchygo-resolver/pkg/utils"
)

var ErrArtifactUnavailable = errors.New("artifact unavailable in every repository")

// Repositories is the download fallback chain for loader libraries: the
// declared repository, then the vanilla libraries mirror, then the additional
// repositories, in that order and without duplicates.
type Repositories struct {
	Vanilla    string
	Additional []string

	logger     hclog.Logger
	connectors map[string]connectors.Connector
	failed     []string
}

func NewRepositories(vanilla string, additional []string, logger hclog.Logger) *Repositories {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Repositories{
		Vanilla:    vanilla,
		Additional: additional,
		logger:     logger,
		connectors: make(map[string]connectors.Connector),
	}
}

func normalizeRepository(uri string) string {
	return strings.TrimSuffix(strings.TrimSpace(uri), "/")
}

// Chain returns the ordered repositories tried for an artifact declared in declared.
func (r *Repositories) Chain(declared string) []string {
	chain := []string{}
	seen := map[string]bool{}
	for _, repo := range append([]string{declared, r.Vanilla}, r.Additional...) {
		key := normalizeRepository(repo)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		chain = append(chain, repo)
	}
	return chain
}

func (r *Repositories) connector(repo string) (connectors.Connector, error) {
	key := normalizeRepository(repo)
	if c, ok := r.connectors[key]; ok {
		return c, nil
	}
	c, err := connectors.Open(repo)
	if err != nil {
		return nil, err
	}
	r.connectors[key] = c
	return c, nil
}

// Fetch downloads relPath to dest from the first repository of the chain
// that serves it. Repositories are tried one after another, never in parallel.
func (r *Repositories) Fetch(declared string, relPath string, dest string) (string, error) {
	for _, repo := range r.Chain(declared) {
		c, err := r.connector(repo)
		if err != nil {
			r.logger.Debug("repository unavailable", "repository", repo, "error", err)
			continue
		}
		if err := c.DownloadFile(relPath, dest); err != nil {
			if utils.IsNotFound(err) {
				r.logger.Debug("not found in repository", "repository", repo, "path", relPath)
			} else {
				r.logger.Info("download attempt failed", "repository", repo, "path", relPath, "error", err)
			}
			continue
		}
		r.logger.Debug("downloaded", "repository", repo, "path", relPath)
		return repo, nil
	}
	return "", fmt.Errorf("%w: %s", ErrArtifactUnavailable, relPath)
}

// FetchLibrary makes coord available as dir/<file name>. A file already on
// disk is kept as is. When the chain is exhausted the library is skipped
// with a warning and remembered in Failed.
func (r *Repositories) FetchLibrary(coord Coordinate, declared string, dir string) (string, bool) {
	dest := filepath.Join(dir, coord.FileName())
	if utils.FileExists(dest) {
		return dest, true
	}

	if _, err := r.Fetch(declared, coord.Path(), dest); err != nil {
		r.logger.Warn("failed to download library, skipping", "library", coord.String(), "error", err)
		r.failed = append(r.failed, coord.String())
		return "", false
	}
	return dest, true
}

func (r *Repositories) Failed() []string {
	return append([]string(nil), r.failed...)
}

func (r *Repositories) Close() error {
	var errs []error
	for key, c := range r.connectors {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.connectors, key)
	}
	return errors.Join(errs...)
}
