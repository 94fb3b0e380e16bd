package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"
)

// SearchIndex is the full-text view over job postings. Badger stays
// the source of truth; the index holds ids and searchable fields only
// and is rebuilt from the store on start.
type SearchIndex struct {
	writer *bluge.Writer
	logger *slog.Logger
}

func NewSearchIndex(dir string, logger *slog.Logger) (*SearchIndex, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	return &SearchIndex{writer: writer, logger: logger}, nil
}

func (s *SearchIndex) Close() error {
	return s.writer.Close()
}

// Index upserts one posting.
func (s *SearchIndex) Index(id, title, company, description, location string) error {
	doc := bluge.NewDocument(id).
		AddField(bluge.NewTextField("title", title).StoreValue()).
		AddField(bluge.NewTextField("company", company)).
		AddField(bluge.NewTextField("description", description)).
		AddField(bluge.NewTextField("location", location))

	if err := s.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("indexing job %s: %w", id, err)
	}
	return nil
}

func (s *SearchIndex) Remove(id string) error {
	return s.writer.Delete(bluge.Identifier(id))
}

// Search returns posting ids matching the query in any indexed field,
// best match first.
func (s *SearchIndex) Search(ctx context.Context, query string, limit int) ([]string, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("opening index reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.logger.Error("closing index reader", slog.Any("error", err))
		}
	}()

	boolean := bluge.NewBooleanQuery()
	for _, field := range []string{"title", "company", "description", "location"} {
		boolean.AddShould(bluge.NewMatchQuery(query).SetField(field))
	}

	dmi, err := reader.Search(ctx, bluge.NewTopNSearch(limit, boolean))
	if err != nil {
		return nil, fmt.Errorf("searching jobs: %w", err)
	}

	var ids []string
	for {
		match, err := dmi.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}
