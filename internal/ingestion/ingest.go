// Package ingestion deduplicates raw postings and resolves them against a taxonomy.
package ingestion

import (
	"context"

	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// Result is the outcome of ingesting one batch.
type Result struct {
	Postings   []types.ResolvedPosting
	Received   int
	Duplicates int
}

// Ingestor resolves postings with a fixed taxonomy snapshot.
type Ingestor struct {
	tax *taxonomy.Taxonomy
}

// New returns an Ingestor bound to tax.
func New(tax *taxonomy.Taxonomy) *Ingestor {
	return &Ingestor{tax: tax}
}

// Ingest deduplicates postings and resolves titles and skills.
// The first occurrence of a duplicate wins and later ones are dropped.
// Output keeps input order, so identical batches produce identical results.
func (in *Ingestor) Ingest(postings []types.RawPosting) Result {
	b := in.newBatch()
	for i := range postings {
		b.add(&postings[i])
	}
	return b.result()
}

// Stream consumes postings until ch is closed, resolving each on arrival.
// If ctx is cancelled first the partial batch is discarded and ctx.Err() returned.
func (in *Ingestor) Stream(ctx context.Context, ch <-chan types.RawPosting) (Result, error) {
	b := in.newBatch()
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case p, ok := <-ch:
			if !ok {
				return b.result(), nil
			}
			b.add(&p)
		}
	}
}

type dedupKey struct {
	source types.Source
	value  string
}

type batch struct {
	tax      *taxonomy.Taxonomy
	ids      map[dedupKey]struct{}
	titles   map[dedupKey]struct{}
	out      []types.ResolvedPosting
	received int
	dropped  int
}

func (in *Ingestor) newBatch() *batch {
	return &batch{
		tax:    in.tax,
		ids:    make(map[dedupKey]struct{}),
		titles: make(map[dedupKey]struct{}),
		out:    []types.ResolvedPosting{},
	}
}

func (b *batch) add(p *types.RawPosting) {
	b.received++

	// Postings built in code skip JSON decoding, so fold unknown sources here too
	source := types.ParseSource(string(p.Source))

	var idKey, titleKey *dedupKey
	if p.ID != "" {
		idKey = &dedupKey{source: source, value: p.ID}
		if _, seen := b.ids[*idKey]; seen {
			b.dropped++
			return
		}
	}
	if norm := taxonomy.Normalize(p.Title); norm != "" {
		titleKey = &dedupKey{source: source, value: norm}
		if _, seen := b.titles[*titleKey]; seen {
			b.dropped++
			return
		}
	}
	if idKey != nil {
		b.ids[*idKey] = struct{}{}
	}
	if titleKey != nil {
		b.titles[*titleKey] = struct{}{}
	}

	b.out = append(b.out, b.resolve(p, source))
}

func (b *batch) resolve(p *types.RawPosting, source types.Source) types.ResolvedPosting {
	rp := types.ResolvedPosting{
		ID:              p.ID,
		Source:          source,
		Title:           p.Title,
		CanonicalSkills: []string{},
		ObservedAt:      p.ObservedAt,
	}
	if canonical, ok := b.tax.ResolveTitle(p.Title); ok {
		rp.CanonicalTitle = canonical
	}

	seen := make(map[string]struct{}, len(p.RawSkills))
	for _, raw := range p.RawSkills {
		skill, ok := b.tax.ResolveSkill(raw)
		if !ok {
			continue
		}
		key := taxonomy.Normalize(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rp.CanonicalSkills = append(rp.CanonicalSkills, skill)
	}
	return rp
}

func (b *batch) result() Result {
	return Result{
		Postings:   b.out,
		Received:   b.received,
		Duplicates: b.dropped,
	}
}
