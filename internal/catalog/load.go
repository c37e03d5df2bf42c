package catalog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/ringside/internal/card"
	"github.com/arcanaland/ringside/internal/tsv"
)

// Loader reads TSV card exports into a Database.
type Loader struct {
	mapper *card.Mapper
	logger *zap.Logger
}

// NewLoader returns a Loader. A nil mapper uses the default aliases and a nil
// logger discards output.
func NewLoader(mapper *card.Mapper, logger *zap.Logger) *Loader {
	if mapper == nil {
		mapper = card.NewMapper(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{mapper: mapper, logger: logger}
}

// Parse turns one source blob into cards in row order.
func (l *Loader) Parse(raw []byte, source string) ([]*card.Card, error) {
	table, err := tsv.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	cards, dropped := l.mapper.MapTable(table, source)
	l.logger.Debug("Parsed card source",
		zap.String("source", source),
		zap.Int("bytes", len(raw)),
		zap.Int("rows", len(table.Rows)),
		zap.Int("cards", len(cards)),
		zap.Int("dropped", dropped))
	return cards, nil
}

// LoadFiles reads and parses every path concurrently, then builds the
// database with cards in path order, so a title defined in a later file
// shadows the same title in an earlier one. Any failure aborts the load and
// no database is returned.
func (l *Loader) LoadFiles(ctx context.Context, paths ...string) (*Database, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no card files configured", tsv.ErrMalformedInput)
	}

	parsed := make([][]*card.Card, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read card file: %w", err)
			}
			cards, err := l.Parse(raw, path)
			if err != nil {
				return err
			}
			parsed[i] = cards
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []*card.Card
	for _, cards := range parsed {
		all = append(all, cards...)
	}

	db := New(all)
	for _, c := range db.Collisions() {
		l.logger.Warn("Duplicate card title, later row wins",
			zap.String("title", c.Winner.Title),
			zap.String("lost", fmt.Sprintf("%s:%d", c.Lost.SourceFile, c.Lost.Line)),
			zap.String("winner", fmt.Sprintf("%s:%d", c.Winner.SourceFile, c.Winner.Line)))
	}
	l.logger.Info("Card database loaded",
		zap.Int("files", len(paths)),
		zap.Int("cards", db.Len()),
		zap.Int("collisions", len(db.Collisions())))

	return db, nil
}
