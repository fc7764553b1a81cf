// Package seed loads the demo flower shop catalog and knowledge base.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
)

// ErrAlreadySeeded is returned when the demo catalog is already present.
var ErrAlreadySeeded = errors.New("demo catalog already loaded")

// Store is the subset of storage the loader writes through.
type Store interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	CreateProduct(ctx context.Context, product *model.Product) error
	SaveKnowledge(ctx context.Context, entry *model.FlowerKnowledge) error
	FindProductsByName(ctx context.Context, name string, limit int) ([]model.Product, error)
}

var _ Store = (service.Storage)(nil)

// Summary counts what a run inserted.
type Summary struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Knowledge  int `json:"knowledge"`
}

// Total returns the number of inserted rows.
func (s Summary) Total() int {
	return s.Categories + s.Products + s.Knowledge
}

// Loader inserts the demo data, reporting progress to a writer.
type Loader struct {
	store Store
	out   io.Writer
}

// NewLoader creates a loader. A nil writer disables the progress bar.
func NewLoader(store Store, out io.Writer) *Loader {
	return &Loader{store: store, out: out}
}

// Run inserts categories, products and knowledge entries. It refuses to run
// twice against the same database.
func (l *Loader) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	seeded, err := l.alreadySeeded(ctx)
	if err != nil {
		return summary, err
	}
	if seeded {
		return summary, ErrAlreadySeeded
	}

	bar := l.newProgressBar(itemCount())
	defer l.finish(bar)

	for _, dc := range demoCatalog {
		category := dc.category
		if err := l.store.CreateCategory(ctx, &category); err != nil {
			return summary, fmt.Errorf("create category %q: %w", category.Name, err)
		}
		summary.Categories++
		l.step(bar)

		for _, dp := range dc.products {
			product := &model.Product{
				Name:          dp.name,
				Slug:          dp.slug,
				Description:   dp.description,
				CategoryID:    category.ID,
				Price:         dp.price,
				StockQuantity: dp.stock,
				IsActive:      true,
			}
			if err := l.store.CreateProduct(ctx, product); err != nil {
				return summary, fmt.Errorf("create product %q: %w", dp.name, err)
			}
			summary.Products++
			l.step(bar)
		}
	}

	for _, entry := range demoKnowledge {
		entry := entry
		if err := l.store.SaveKnowledge(ctx, &entry); err != nil {
			return summary, fmt.Errorf("save knowledge %q: %w", entry.FlowerName, err)
		}
		summary.Knowledge++
		l.step(bar)
	}

	common.LogInfo(ctx, "Demo data loaded", common.Fields{
		"categories": summary.Categories,
		"products":   summary.Products,
		"knowledge":  summary.Knowledge,
	})
	return summary, nil
}

// alreadySeeded looks for the first demo product by exact name.
func (l *Loader) alreadySeeded(ctx context.Context) (bool, error) {
	first := demoCatalog[0].products[0].name
	found, err := l.store.FindProductsByName(ctx, first, 10)
	if err != nil {
		return false, fmt.Errorf("check existing catalog: %w", err)
	}
	for _, p := range found {
		if strings.EqualFold(p.Name, first) {
			return true, nil
		}
	}
	return false, nil
}

func itemCount() int {
	n := len(demoKnowledge)
	for _, dc := range demoCatalog {
		n += 1 + len(dc.products)
	}
	return n
}

func (l *Loader) newProgressBar(total int) *progressbar.ProgressBar {
	if l.out == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(l.out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[magenta][bold]Loading demo catalog...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[magenta]=[reset]",
			SaucerHead:    "[magenta]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (l *Loader) step(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	if err := bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

func (l *Loader) finish(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	if err := bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	if _, err := fmt.Fprintln(l.out); err != nil {
		slog.Warn("Failed to write newline", "error", err)
	}
}
