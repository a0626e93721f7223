package usecase

import (
	"context"
	"fmt"

	"github.com/libreria/sales-service/internal/catalog"
	"github.com/libreria/sales-service/internal/catalog/dto"
	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/pkg/logger"
	"github.com/libreria/sales-service/pkg/search"
	"go.uber.org/zap"
)

const booksIndex = "books"

type catalogUseCase struct {
	repo   catalog.Repository
	es     *search.Client
	logger logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, es *search.Client, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		es:     es,
		logger: log,
	}
}

func (uc *catalogUseCase) ListBooks(ctx context.Context, query string) ([]dto.BookListing, error) {
	if query != "" && uc.es != nil {
		listings, err := uc.searchElastic(ctx, query)
		if err == nil {
			return listings, nil
		}
		// If ES fails, fall through to the database.
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	listings, err := uc.repo.FindAvailable(ctx, query)
	if err != nil {
		return nil, err
	}

	// Keep the search index warm from the listing we just served.
	go uc.syncToElastic(context.Background(), listings)

	return listings, nil
}

func (uc *catalogUseCase) GetBook(ctx context.Context, id string) (*dto.BookListing, error) {
	listing, err := uc.repo.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, model.ErrBookNotFound
	}
	return listing, nil
}

// searchElastic matches free text in ES, then joins the hits back against
// the database so availability filtering always reflects the ledger, never
// a stale document.
func (uc *catalogUseCase) searchElastic(ctx context.Context, query string) ([]dto.BookListing, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", query),
				"fields": []string{"title^3", "author^2", "publisher_name", "synopsis"},
			},
		},
		"size": 100,
	}

	res, err := uc.es.Search(ctx, booksIndex, q)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}

	// The join-back orders by title, same as the SQL path.
	return uc.repo.FindAvailableByIDs(ctx, ids)
}

func (uc *catalogUseCase) syncToElastic(ctx context.Context, listings []dto.BookListing) {
	if uc.es == nil || len(listings) == 0 {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"title": { "type": "text" },
				"author": { "type": "text" },
				"publisher_name": { "type": "text" },
				"synopsis": { "type": "text" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, booksIndex, mapping)

	for _, l := range listings {
		doc := dto.BookDocument{
			ID:            l.ID,
			Title:         l.Title,
			Author:        l.Author,
			PublisherName: l.PublisherName,
		}
		if l.Synopsis != nil {
			doc.Synopsis = *l.Synopsis
		}
		if err := uc.es.Index(ctx, booksIndex, l.ID, doc); err != nil {
			uc.logger.Error("failed to index book", zap.String("book_id", l.ID), zap.Error(err))
		}
	}
}
