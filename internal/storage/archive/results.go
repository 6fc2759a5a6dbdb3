package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/newthinker/stratix/internal/backtest"
)

// Results archives completed backtest results through a Storage backend.
// Results are stored as JSON under backtests/<symbol>/<id>.json.
type Results struct {
	storage Storage
}

// NewResults wraps a storage backend for backtest result archival.
func NewResults(storage Storage) *Results {
	return &Results{storage: storage}
}

func resultPath(symbol, id string) string {
	return path.Join("backtests", strings.ToUpper(symbol), id+".json")
}

// Save archives a backtest result under the given ID.
func (r *Results) Save(ctx context.Context, id string, result *backtest.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return r.storage.Put(ctx, resultPath(result.Symbol, id), data)
}

// Load retrieves an archived backtest result.
func (r *Results) Load(ctx context.Context, symbol, id string) (*backtest.Result, error) {
	data, err := r.storage.Get(ctx, resultPath(symbol, id))
	if err != nil {
		return nil, err
	}
	var result backtest.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	return &result, nil
}

// List returns the IDs of archived results for a symbol.
func (r *Results) List(ctx context.Context, symbol string) ([]string, error) {
	paths, err := r.storage.List(ctx, path.Join("backtests", strings.ToUpper(symbol)))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		base := path.Base(p)
		ids = append(ids, strings.TrimSuffix(base, ".json"))
	}
	return ids, nil
}

// Delete removes an archived backtest result.
func (r *Results) Delete(ctx context.Context, symbol, id string) error {
	return r.storage.Remove(ctx, resultPath(symbol, id))
}
