package service

import (
	"context"
	"fmt"

	"vendormart/internal/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	// maxSlugSuffix bounds the numeric suffixes tried after the base slug
	// collides. The first collision yields <base>-2, the last <base>-51.
	maxSlugSuffix = 51

	// randomSlugAttempts bounds the random suffixes tried once the numeric
	// range is exhausted.
	randomSlugAttempts = 3
)

// SlugChecker is the read side needed by slug generation
type SlugChecker interface {
	SlugExists(ctx context.Context, kind repository.SlugKind, slug string) (bool, error)
}

// GenerateUniqueSlug normalizes name into a URL-safe slug and makes it
// unique within the given kind. Collisions are resolved with numeric
// suffixes first, then random ones.
func GenerateUniqueSlug(ctx context.Context, checker SlugChecker, kind repository.SlugKind, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", fmt.Errorf("%w: name %q produces an empty slug", ErrInvalidInput, name)
	}

	exists, err := checker.SlugExists(ctx, kind, base)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if !exists {
		return base, nil
	}

	for suffix := 2; suffix <= maxSlugSuffix; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		exists, err := checker.SlugExists(ctx, kind, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	for i := 0; i < randomSlugAttempts; i++ {
		candidate := fmt.Sprintf("%s-%s", base, uuid.New().String()[:8])
		exists, err := checker.SlugExists(ctx, kind, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique slug for %q", name)
}
