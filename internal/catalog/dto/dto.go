package dto

import "github.com/libreria/sales-service/internal/model"

// BookListing is a catalog row: the book joined with its publisher name and
// the aggregated ledger availability.
type BookListing struct {
	model.Book
	PublisherName string `db:"publisher_name" json:"publisher_name"`
	Available     int    `db:"available" json:"available"`
}

// BookDocument is the shape indexed into Elasticsearch for free-text search.
// Availability is not indexed; the database stays the source of truth for
// what is sellable.
type BookDocument struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublisherName string `json:"publisher_name"`
	Synopsis      string `json:"synopsis"`
}
