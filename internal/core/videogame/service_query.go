// Copyright (c) 2026 Ludex. All rights reserved.

package videogame

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ludex-app/ludex/internal/platform/validate"
	"github.com/ludex-app/ludex/pkg/pointer"
)

// sortable is the closed set of fields the sorted listing accepts. Anything
// outside it is rejected before reaching the store.
var sortable = map[string]bool{
	FieldTitle:      true,
	FieldYear:       true,
	FieldDevelopers: true,
	FieldPlatforms:  true,
	FieldGenres:     true,
}

// defaultSort orders the plain catalog listing.
var defaultSort = Sort{Field: FieldTitle}

// List returns the full catalog in the default title order. The listing is
// served from the cache when a fresh copy exists.
func (service *Service) List(ctx context.Context) ([]*Videogame, error) {
	if service.cache != nil {
		if games, ok := service.cache.GetList(ctx); ok {
			return games, nil
		}
	}

	games, err := service.repo.List(ctx, defaultSort)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.SetList(ctx, games)
	}
	return games, nil
}

// SortedList returns the catalog ordered by one of the sortable fields.
// Direction is "asc" or "desc"; empty means ascending.
func (service *Service) SortedList(ctx context.Context, field, direction string) ([]*Videogame, error) {
	field = strings.TrimSpace(field)
	direction = strings.ToLower(strings.TrimSpace(direction))

	validator := &validate.Validator{}
	validator.Custom("sortBy", !sortable[field], "Invalid sort field")
	validator.Custom("order", direction != "" && direction != "asc" && direction != "desc",
		"Invalid sort order. Expected asc or desc.")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.List(ctx, Sort{Field: field, Descending: direction == "desc"})
}

// SearchParams carries the raw query-string search inputs.
type SearchParams struct {
	Title     string
	Developer string
	Platform  string
	Genre     string
	Year      string
}

// Search finds records matching the supplied parameters. At least one
// recognized parameter must be present; Year must parse as a number.
// Unknown parameters were already discarded during query parsing, so a
// request carrying only unknown keys fails the presence check.
func (service *Service) Search(ctx context.Context, params SearchParams) ([]*Videogame, error) {
	filter := SearchFilter{
		Title:     strings.TrimSpace(params.Title),
		Developer: strings.TrimSpace(params.Developer),
		Platform:  strings.TrimSpace(params.Platform),
		Genre:     strings.TrimSpace(params.Genre),
	}

	validator := &validate.Validator{}

	if rawYear := strings.TrimSpace(params.Year); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			validator.Custom(FieldYear, true, "Invalid data type in Year. Expected number.")
		} else {
			filter.Year = pointer.To(year)
		}
	}

	validator.Custom("search", filter.IsEmpty() && !validator.HasErrors(),
		"At least one valid search parameter is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	games, err := service.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("videogames_searched",
		slog.Int("matches", len(games)),
	)
	return games, nil
}

// Get returns one record by its identifier.
func (service *Service) Get(ctx context.Context, id string) (*Videogame, error) {
	game, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return game, nil
}
