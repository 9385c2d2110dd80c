package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"foodctl/internal/model"
)

// searchParams are queried in parallel; the backend matches a single field per query.
var searchParams = []string{"name", "food_name"}

// Search finds records whose name or food_name matches query. Both queries run
// concurrently. Results are merged by id in first-seen order, a later copy of the same id
// replacing the earlier one. A query that fails is ignored unless every query fails, in
// which case a *SearchError is returned.
func (c *Client) Search(ctx context.Context, query string) ([]model.FoodRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.List(ctx)
	}

	results := make([][]model.FoodRecord, len(searchParams))
	errs := make([]error, len(searchParams))

	var g errgroup.Group
	for i, param := range searchParams {
		g.Go(func() error {
			path := foodPath + "?" + url.Values{param: {query}}.Encode()
			var items []model.FoodRecord
			if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
				errs[i] = err
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(searchParams) {
		return nil, &SearchError{Errs: errs}
	}
	if failed > 0 {
		c.logger.Debug("partial search failure", "query", query, "errors", errs)
	}

	return mergeByID(results...), nil
}

func mergeByID(lists ...[]model.FoodRecord) []model.FoodRecord {
	index := map[string]int{}
	merged := []model.FoodRecord{}
	for _, list := range lists {
		for _, item := range list {
			if i, ok := index[item.ID]; ok {
				merged[i] = item
				continue
			}
			index[item.ID] = len(merged)
			merged = append(merged, item)
		}
	}
	return merged
}
