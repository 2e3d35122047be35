package controller

import (
	"context"
	"sync"

	"cmsadmin/api"
	"cmsadmin/constants"
	"cmsadmin/logger"
)

// Stats is the dashboard overview. Nil fields mean the corresponding fetch
// failed; the dashboard renders them as absent rather than failing the
// whole page.
type Stats struct {
	Articles      *int
	ArticleDrafts *int
	Publications  *int

	Boutique           *int
	BoutiqueOutOfStock *int

	Categories *int
}

// CategoryLister is the slice of api.Categories the dashboard needs.
type CategoryLister interface {
	List(ctx context.Context, contentType string) ([]api.Category, error)
}

// StatsSources collects the read-only endpoints the dashboard aggregates.
type StatsSources struct {
	Articles     Lister[api.ContentItem]
	Publications Lister[api.ContentItem]
	Boutique     Lister[api.BoutiqueItem]
	Categories   CategoryLister
}

// LoadStats fetches all dashboard figures concurrently. The article draft
// count is a second list call filtered by status rather than a field of the
// first response; the backend exposes no aggregating endpoint, so the
// two-call shape stands.
func LoadStats(ctx context.Context, src StatsSources) Stats {
	var (
		stats Stats
		mu    sync.Mutex
		wg    sync.WaitGroup
	)

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				logger.Get().Warn().Err(err).Str("stat", name).Msg("Dashboard figure unavailable")
			}
		}()
	}

	run("articles", func() error {
		page, err := src.Articles.List(ctx, api.ListParams{Page: 1, PerPage: 1})
		if err != nil {
			return err
		}
		mu.Lock()
		stats.Articles = &page.Total
		mu.Unlock()
		return nil
	})

	run("article_drafts", func() error {
		page, err := src.Articles.List(ctx, api.ListParams{Page: 1, PerPage: 1, Status: constants.StatusDraft})
		if err != nil {
			return err
		}
		mu.Lock()
		stats.ArticleDrafts = &page.Total
		mu.Unlock()
		return nil
	})

	run("publications", func() error {
		page, err := src.Publications.List(ctx, api.ListParams{Page: 1, PerPage: 1})
		if err != nil {
			return err
		}
		mu.Lock()
		stats.Publications = &page.Total
		mu.Unlock()
		return nil
	})

	run("boutique", func() error {
		page, err := src.Boutique.List(ctx, api.ListParams{Page: 1, PerPage: constants.DashboardStockSample})
		if err != nil {
			return err
		}
		outOfStock := 0
		for _, item := range page.Items {
			if !item.InStock {
				outOfStock++
			}
		}
		mu.Lock()
		stats.Boutique = &page.Total
		stats.BoutiqueOutOfStock = &outOfStock
		mu.Unlock()
		return nil
	})

	run("categories", func() error {
		cats, err := src.Categories.List(ctx, "")
		if err != nil {
			return err
		}
		count := len(cats)
		mu.Lock()
		stats.Categories = &count
		mu.Unlock()
		return nil
	})

	wg.Wait()
	return stats
}
