package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/newslens/newslens/app/sources"
	"github.com/newslens/newslens/app/summary"
	"github.com/newslens/newslens/app/textutil"
)

// ArticleFetcher obtains an article from a URL. Implementations are
// expected to bound the fetch with the request context and return a
// scraper error the API layer can map to a status code.
type ArticleFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Article, error)
}

// Summarizer condenses article text to at most maxSentences sentences.
type Summarizer interface {
	Summarize(text string, maxSentences int) (summary.Result, error)
}

// Pipeline orchestrates one analysis request: registry lookup, feature
// extraction, concurrent classification, summarization, and label
// derivation. Pipelines are stateless per request; a single instance
// serves all requests concurrently.
type Pipeline struct {
	registry    *sources.Registry
	extractor   *Extractor
	credibility *CredibilityModel
	bias        *BiasModel
	fetcher     ArticleFetcher
	summarizer  Summarizer
	version     string
}

// NewPipeline wires the pipeline from loaded models and collaborators.
func NewPipeline(models *Models, registry *sources.Registry, fetcher ArticleFetcher, summarizer Summarizer) *Pipeline {
	return &Pipeline{
		registry:    registry,
		extractor:   NewExtractor(models.Vocabulary),
		credibility: models.Credibility,
		bias:        models.Bias,
		fetcher:     fetcher,
		summarizer:  summarizer,
		version:     models.Version,
	}
}

// AnalyzeURL scrapes the URL and runs the full pipeline on the result.
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (*Result, error) {
	slog.Debug("Analysis state changed", "state", StateReceived, "url", rawURL)

	article, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		slog.Debug("Analysis state changed", "state", StateFailed, "url", rawURL, "error", err)
		return nil, err
	}
	slog.Debug("Analysis state changed", "state", StateScraped, "url", rawURL, "domain", article.Domain)

	return p.run(ctx, article)
}

// AnalyzeText runs the pipeline directly on user-supplied text. The
// optional source hint attributes the text to a domain so registry data
// can inform the result; without it the neutral default rating applies.
func (p *Pipeline) AnalyzeText(ctx context.Context, text string, sourceHint string) (*Result, error) {
	article := &Article{
		Domain: sources.NormalizeDomain(sourceHint),
		Text:   text,
	}
	slog.Debug("Analysis state changed", "state", StateReceived, "domain", article.Domain)
	slog.Debug("Analysis state changed", "state", StateScraped, "domain", article.Domain)

	return p.run(ctx, article)
}

func (p *Pipeline) run(ctx context.Context, article *Article) (*Result, error) {
	started := time.Now()
	rating, _ := p.registry.Lookup(article.Domain)

	var flags ResultFlags
	features, err := p.extractor.Run(article.Text)
	if err != nil {
		var insufficient *InsufficientContentError
		if !errors.As(err, &insufficient) {
			slog.Debug("Analysis state changed", "state", StateFailed, "domain", article.Domain, "error", err)
			return nil, err
		}
		flags.DegradedExtraction = true
		slog.Debug("Feature extraction degraded to source rating",
			"domain", article.Domain, "words", insufficient.WordCount, "minimum", insufficient.Minimum)
	}
	slog.Debug("Analysis state changed", "state", StateFeatureExtracted,
		"domain", article.Domain, "degraded", flags.DegradedExtraction)

	if err := ctx.Err(); err != nil {
		slog.Debug("Analysis state changed", "state", StateFailed, "domain", article.Domain, "error", err)
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	var (
		score      float64
		biasResult BiasResult
	)
	if flags.DegradedExtraction {
		score = float64(rating.Score)
		biasResult = BiasResult{Bias: ParseBias(rating.Bias), Confidence: 0}
	} else {
		// The two classifiers share no state beyond the read-only models,
		// so they run as independent goroutines joined before labeling.
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			score = p.credibility.Run(features, rating.Score)
		}()
		go func() {
			defer wg.Done()
			biasResult = p.bias.Run(features)
		}()
		wg.Wait()
	}
	slog.Debug("Analysis state changed", "state", StateClassified,
		"domain", article.Domain, "score", score, "bias", biasResult.Bias)

	if err := ctx.Err(); err != nil {
		slog.Debug("Analysis state changed", "state", StateFailed, "domain", article.Domain, "error", err)
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	summaryText := ""
	summaryMethod := "none"
	summaryResult, err := p.summarizer.Summarize(article.Text, summary.DefaultMaxSentences)
	if err != nil {
		flags.SummaryFailed = true
		slog.Debug("Summarization failed", "domain", article.Domain, "error", err)
	} else {
		summaryText = summaryResult.Text
		summaryMethod = summaryResult.Method
	}
	slog.Debug("Analysis state changed", "state", StateSummarized,
		"domain", article.Domain, "method", summaryMethod)

	var stats textutil.TextStats
	if features != nil {
		stats = features.Stats
	} else {
		stats = textutil.ComputeStats(article.Text)
	}

	labels := DeriveLabels(score, biasResult, rating, stats, flags)
	slog.Debug("Analysis state changed", "state", StateLabeled,
		"domain", article.Domain, "labels", labels)

	result := p.assemble(article, score, biasResult, summaryText, summaryMethod, labels, stats, flags)
	slog.Debug("Analysis state changed", "state", StateCompleted,
		"domain", article.Domain, "score", score, "bias", string(biasResult.Bias),
		"duration", time.Since(started))

	return result, nil
}

func (p *Pipeline) assemble(article *Article, score float64, biasResult BiasResult, summaryText, summaryMethod string, labels []string, stats textutil.TextStats, flags ResultFlags) *Result {
	source := article.Domain
	if source == "" {
		source = "unknown"
	}

	analysisMethod := MethodFull
	if flags.DegradedExtraction {
		analysisMethod = MethodSourceOnly
	}

	authors := article.Authors
	if authors == nil {
		authors = []string{}
	}

	return &Result{
		Source:           source,
		CredibilityScore: score,
		Bias:             string(biasResult.Bias),
		Summary:          summaryText,
		Labels:           labels,
		Metadata: Metadata{
			BiasConfidence: biasResult.Confidence,
			SummaryMethod:  summaryMethod,
			AnalysisMethod: analysisMethod,
			Title:          article.Title,
			Authors:        authors,
			PublishedAt:    article.PublishedAt,
			WordCount:      stats.WordCount,
			SentenceCount:  stats.SentenceCount,
			ModelVersion:   p.version,
		},
	}
}
