// Package indexer crawls the documentation tree on the cloud drive and builds
// the flat JSON index the search engine runs over.
package indexer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/disk"
	"github.com/iotsystems/hdlbot/internal/extract"
	"github.com/iotsystems/hdlbot/internal/models"
	"github.com/iotsystems/hdlbot/internal/search"
)

// snippetRunes caps the extracted text stored per document. Full-text storage
// would bloat the index without improving name-oriented search.
const snippetRunes = 2000

// Builder crawls folders depth first and produces document records.
type Builder struct {
	disk        *disk.Client
	norm        *search.Normalizer
	logger      *zap.Logger
	extractText bool
}

// NewBuilder creates a Builder. When extractText is set, each PDF is
// downloaded and a text snippet stored alongside its name.
func NewBuilder(client *disk.Client, norm *search.Normalizer, extractText bool, logger *zap.Logger) *Builder {
	return &Builder{
		disk:        client,
		norm:        norm,
		logger:      logger,
		extractText: extractText,
	}
}

// Build walks the tree under baseFolder and returns one record per PDF file.
// Listing errors on subfolders are logged and skipped so one broken folder
// does not lose the whole crawl; an error on the root folder is fatal.
func (b *Builder) Build(ctx context.Context, baseFolder string) ([]models.DocumentRecord, error) {
	rootItems, err := b.disk.ListFolder(ctx, baseFolder)
	if err != nil {
		return nil, err
	}

	var records []models.DocumentRecord
	visited := map[string]bool{baseFolder: true}

	stack := [][]disk.Resource{rootItems}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, item := range items {
			if item.IsDir() {
				if visited[item.Path] {
					continue
				}
				visited[item.Path] = true
				children, err := b.disk.ListFolder(ctx, item.Path)
				if err != nil {
					b.logger.Warn("skipping folder",
						zap.String("path", item.Path),
						zap.Error(err))
					continue
				}
				stack = append(stack, children)
				continue
			}
			if !strings.HasSuffix(strings.ToLower(item.Name), ".pdf") {
				continue
			}
			records = append(records, b.record(ctx, item))
		}
	}

	b.logger.Info("crawl finished",
		zap.String("base_folder", baseFolder),
		zap.Int("documents", len(records)))
	return records, nil
}

func (b *Builder) record(ctx context.Context, item disk.Resource) models.DocumentRecord {
	name := item.Name
	stem := strings.TrimSuffix(name, ".pdf")
	stem = strings.TrimSuffix(stem, ".PDF")

	rec := models.DocumentRecord{
		Name:     name,
		Path:     item.Path,
		NormName: b.norm.Normalize(stem),
	}

	if b.extractText {
		content, err := b.disk.Download(ctx, item.Path)
		if err != nil {
			b.logger.Warn("download failed, indexing name only",
				zap.String("path", item.Path),
				zap.Error(err))
			return rec
		}
		text, err := extract.PDFText(content, snippetRunes)
		if err != nil {
			b.logger.Warn("text extraction failed, indexing name only",
				zap.String("path", item.Path),
				zap.Error(err))
			return rec
		}
		rec.Text = text
	}
	return rec
}
