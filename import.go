package folio

import (
	"context"
	"errors"
	"fmt"
)

// ImportResult counts what an import changed.
type ImportResult struct {
	Saved   int
	Pruned  int
	Skipped []string
}

// Import copies every post in from into the SQLite store. Posts that fail to
// load are skipped and reported rather than aborting the run. With prune set,
// store entries that no longer exist in from are deleted.
func Import(ctx context.Context, from *FileSource, to *Store, prune bool) (ImportResult, error) {
	var res ImportResult
	slugs, err := from.ListSlugs(ctx)
	if err != nil {
		return res, err
	}
	// Every slug still in the content directory survives a prune, including
	// entries that fail to load this run.
	keep := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		keep[slug] = struct{}{}
	}
	var errs []error
	for _, slug := range slugs {
		post, err := from.GetPost(ctx, slug)
		if err != nil {
			res.Skipped = append(res.Skipped, slug)
			errs = append(errs, err)
			continue
		}
		body, err := from.ReadBody(slug)
		if err != nil {
			res.Skipped = append(res.Skipped, slug)
			errs = append(errs, err)
			continue
		}
		if err := to.SavePost(ctx, post, body); err != nil {
			return res, fmt.Errorf("save %q: %w", slug, err)
		}
		res.Saved++
	}

	if prune {
		existing, err := to.ListSlugs(ctx)
		if err != nil {
			return res, err
		}
		for _, slug := range existing {
			if _, ok := keep[slug]; ok {
				continue
			}
			if err := to.DeletePost(ctx, slug); err != nil {
				return res, fmt.Errorf("prune %q: %w", slug, err)
			}
			res.Pruned++
		}
	}
	return res, errors.Join(errs...)
}
