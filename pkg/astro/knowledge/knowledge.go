// Package knowledge is the single external API surface of the pipeline
// (spec.md §6): it wires the Document Processor, Rule Extractor, LLM
// Corrector, and Knowledge Store together so a caller never has to
// orchestrate the stages itself.
package knowledge

import (
	"context"
	"fmt"
	"log"
	"time"

	"jyotishkb/pkg/astro/corrector"
	"jyotishkb/pkg/astro/document"
	"jyotishkb/pkg/astro/extractor"
	"jyotishkb/pkg/astro/model"
	"jyotishkb/pkg/astro/registry"
	"jyotishkb/pkg/astro/storage"
	"jyotishkb/pkg/astro/store"
	"jyotishkb/pkg/monitoring"
)

// Service is the top-level facade: one instance per running process,
// backed by a single Store.
type Service struct {
	store     *store.Store
	registry  *registry.Registry
	documents *document.Service
	extractor *extractor.Service
	corrector *corrector.Service
	archiver  storage.Archiver
	metrics   *monitoring.Collector
}

// New wires the four pipeline stages around a shared Store. corr may
// be nil when correction is not configured; CorrectPending then returns
// an empty report rather than erroring.
func New(st *store.Store, docs *document.Service, ext *extractor.Service, corr *corrector.Service) *Service {
	return &Service{
		store:     st,
		registry:  registry.New(st),
		documents: docs,
		extractor: ext,
		corrector: corr,
		metrics:   monitoring.NewCollector(),
	}
}

// SetArchiver attaches an optional Archiver that IngestBook uses to keep
// a content-addressed copy of each source's raw PDF bytes
// (SPEC_FULL.md §11). Archiving failures are logged, not propagated:
// the archive is a convenience, never part of the ingest invariants.
func (s *Service) SetArchiver(a storage.Archiver) { s.archiver = a }

// Metrics exposes the process-lifetime counters this service has
// accumulated (SPEC_FULL.md §11).
func (s *Service) Metrics() monitoring.Snapshot { return s.metrics.Snapshot() }

// IngestReport summarizes one IngestBook call across all three stages it
// drives: document processing, extraction, and storage.
type IngestReport struct {
	document.Report
	RulesExtracted int
	RulesStored    int
	RulesDuplicate int
	RulesRejected  int
}

// RegisterSource registers a source book, enforcing authority-level
// immutability.
func (s *Service) RegisterSource(ctx context.Context, title, author string, level model.AuthorityLevel) (model.SourceBook, error) {
	return s.registry.Register(ctx, title, author, level)
}

// IngestBook runs a PDF through the full pipeline: extraction, cleaning,
// segmentation, relevance filtering, rule extraction, and storage. The
// source must already be registered.
func (s *Service) IngestBook(ctx context.Context, sourceTitle string, content []byte) (IngestReport, error) {
	source, err := s.registry.Get(ctx, sourceTitle)
	if err != nil {
		return IngestReport{}, err
	}

	if s.archiver != nil {
		if _, err := s.archiver.Put(ctx, sourceTitle, content); err != nil {
			log.Printf("[KNOWLEDGE] archive %q: %v (continuing, archive is non-authoritative)", sourceTitle, err)
		}
	}

	sentences, docReport, err := s.documents.ProcessBytes(ctx, sourceTitle, content)
	if err != nil {
		return IngestReport{}, model.NewIngestError(sourceTitle, "document processing failed", err)
	}

	rules := s.extractor.Extract(sourceTitle, source, sentences)

	report := IngestReport{Report: docReport, RulesExtracted: len(rules)}
	var confidenceSum float64
	for _, r := range rules {
		_, outcome, err := s.store.StoreRule(ctx, r)
		if err != nil {
			report.RulesRejected++
			continue
		}
		switch outcome {
		case store.StoreOutcomeStored:
			report.RulesStored++
			confidenceSum += r.Confidence
		case store.StoreOutcomeDuplicate:
			report.RulesDuplicate++
		default:
			report.RulesRejected++
		}
	}

	stats := model.ExtractionStats{
		SourceTitle:    sourceTitle,
		SentencesTotal: docReport.SentencesTotal,
		SentencesAstro: docReport.SentencesAstro,
		RulesExtracted: len(rules),
		Method:         "pattern_battery",
		Timestamp:      time.Now().UTC(),
	}
	if report.RulesStored > 0 {
		stats.AverageConfidence = confidenceSum / float64(report.RulesStored)
	}
	if err := s.store.SaveExtractionStats(ctx, stats); err != nil {
		return report, fmt.Errorf("knowledge: save extraction stats: %w", err)
	}

	s.metrics.RecordIngest(docReport.SentencesTotal, docReport.SentencesAstro, report.RulesStored)
	return report, nil
}

// IngestBookFile is the path-taking variant of IngestBook for callers
// that have the PDF on disk rather than in memory.
func (s *Service) IngestBookFile(ctx context.Context, sourceTitle, path string) (IngestReport, error) {
	content, err := document.ReadPDFFile(path)
	if err != nil {
		return IngestReport{}, model.NewIngestError(sourceTitle, "read source file", err)
	}
	return s.IngestBook(ctx, sourceTitle, content)
}

// StoreRule stores a single rule directly, bypassing extraction (used
// when a caller already has a Rule value, e.g. from an import or a
// manual correction workflow).
func (s *Service) StoreRule(ctx context.Context, r model.Rule) (model.Rule, store.StoreOutcome, error) {
	return s.store.StoreRule(ctx, r)
}

// GetRule looks up a rule by id.
func (s *Service) GetRule(ctx context.Context, id string) (model.Rule, error) {
	return s.store.GetRule(ctx, id)
}

// Search runs a multi-criteria query over stored rules.
func (s *Service) Search(ctx context.Context, filters store.SearchFilters) ([]model.Rule, error) {
	return s.store.Search(ctx, filters)
}

// FieldOptions reports the distinct values available for enumerable
// filter fields (SPEC_FULL.md §12).
func (s *Service) FieldOptions(ctx context.Context) (map[string][]string, error) {
	return s.store.FieldOptions(ctx)
}

// Stats reports the extraction history for a source.
func (s *Service) Stats(ctx context.Context, sourceTitle string) ([]model.ExtractionStats, error) {
	return s.store.ExtractionStatsForSource(ctx, sourceTitle)
}

// Export produces a portable bundle of the filtered rules and their
// sources.
func (s *Service) Export(ctx context.Context, filters store.SearchFilters) (store.Bundle, error) {
	return s.store.Export(ctx, filters)
}

// ImportBundle merges a previously exported bundle into the store.
func (s *Service) ImportBundle(ctx context.Context, bundle store.Bundle, strategy store.MergeStrategy) (store.ImportReport, error) {
	return s.store.Import(ctx, bundle, strategy)
}

// CorrectPending runs the LLM Corrector over every rule matching
// filters, persisting accepted corrections and rejection audit entries
// back to the store. Rules already up to date (LastCorrectedDigest
// matches OriginalText) are skipped without contacting the provider.
func (s *Service) CorrectPending(ctx context.Context, filters store.SearchFilters) (corrector.Report, error) {
	if s.corrector == nil {
		return corrector.Report{}, nil
	}

	rules, err := s.store.Search(ctx, filters)
	if err != nil {
		return corrector.Report{}, err
	}

	corrected, report := s.corrector.Correct(ctx, rules)

	byID := make(map[string]model.Rule, len(corrected))
	for _, r := range corrected {
		byID[r.ID] = r
	}

	for _, outcome := range report.Outcomes {
		r, ok := byID[outcome.RuleID]
		if !ok {
			continue
		}
		if outcome.Accepted {
			if err := s.store.ApplyCorrection(ctx, r.ID, r.CorrectedText, *outcome.Correction, r.LastCorrectedDigest); err != nil {
				return report, fmt.Errorf("knowledge: apply correction for %q: %w", r.ID, err)
			}
			continue
		}
		if err := s.store.RecordRejection(ctx, r.ID, outcome.Rejection.Reason, outcome.Rejection.Detail, r.LastCorrectedDigest); err != nil {
			return report, fmt.Errorf("knowledge: record rejection for %q: %w", r.ID, err)
		}
	}

	s.metrics.RecordCorrection(report.Accepted, report.Rejected)
	return report, nil
}
