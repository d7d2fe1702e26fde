// Package provision hashes admin credentials in bulk while keeping the number
// of simultaneous scrypt working sets bounded.
package provision

import (
	"context"
	"log/slog"

	"github.com/fhilgers/scryptcred/internal/credential"
	"github.com/fhilgers/scryptcred/internal/kdf"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type Request struct {
	Username   string `json:"username"`
	Passphrase []byte `json:"-"`
}

type Result struct {
	Username   string `json:"username"`
	Credential string `json:"password"`
}

type Provisioner struct {
	Params      kdf.Params
	Concurrency int
	MaxMemory   uint64
	Logger      *slog.Logger

	// hash is swapped out in tests.
	hash func(passphrase []byte, params kdf.Params) (string, error)
}

// Limit is the number of derivations allowed to run at once: the configured
// concurrency, lowered so that all working sets fit into MaxMemory.
func (p Provisioner) Limit() int {
	limit := p.Concurrency
	if limit < 1 {
		limit = 1
	}

	if mem := p.Params.Memory(); p.MaxMemory > 0 && mem > 0 {
		if fit := p.MaxMemory / mem; fit < uint64(limit) {
			limit = int(fit)
		}
	}

	if limit < 1 {
		limit = 1
	}

	return limit
}

// HashAll returns one result per request, in request order. When ctx ends,
// derivations already running are abandoned rather than interrupted: their
// goroutines finish in the background and the results are dropped.
func (p Provisioner) HashAll(ctx context.Context, reqs []Request) ([]Result, error) {
	if err := p.Params.Validate(); err != nil {
		return nil, err
	}
	if p.MaxMemory > 0 && p.Params.Memory() > p.MaxMemory {
		return nil, errors.WithStack(&kdf.ResourceExhaustionError{Required: p.Params.Memory(), Limit: p.MaxMemory})
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hash := p.hash
	if hash == nil {
		hash = credential.Hash
	}

	limit := p.Limit()
	logger.Debug("provisioning credentials", slog.Int("count", len(reqs)), slog.Int("limit", limit))

	results := make([]Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		i, req := i, req

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s, err := hashContext(ctx, hash, req.Passphrase, p.Params)
			if err != nil {
				logger.Error("failed to hash credential", slog.String("username", req.Username), slog.Any("error", err))
				return errors.Wrapf(err, "provision: %s", req.Username)
			}

			results[i] = Result{Username: req.Username, Credential: s}
			logger.Debug("hashed credential", slog.String("username", req.Username))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

type hashed struct {
	s   string
	err error
}

func hashContext(ctx context.Context, hash func([]byte, kdf.Params) (string, error), passphrase []byte, params kdf.Params) (string, error) {
	done := make(chan hashed, 1)

	go func() {
		s, err := hash(passphrase, params)
		done <- hashed{s, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case h := <-done:
		return h.s, h.err
	}
}
