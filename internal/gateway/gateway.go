// Package gateway implements the user-bookings aggregation: it fans out to
// the bookings and movies services, joins their results, and maps downstream
// failures to caller-facing errors. It is stateless per request; nothing is
// cached across calls.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cinebook/cinebook/internal/audit"
	"github.com/cinebook/cinebook/internal/catalog"
	"github.com/cinebook/cinebook/internal/client"
	"github.com/cinebook/cinebook/internal/httperr"
	"github.com/cinebook/cinebook/internal/model"
)

// DefaultMaxFanOut bounds concurrent movie lookups per request.
const DefaultMaxFanOut = 8

// MovieFetcher resolves movie IDs against the movies service.
type MovieFetcher interface {
	Movie(ctx context.Context, id string) (*model.Movie, error)
}

// BookingFetcher fetches a user's raw booking map from the bookings service.
type BookingFetcher interface {
	UserBookings(ctx context.Context, username string) (model.BookingDays, error)
}

// Service orchestrates the aggregate user-bookings request.
type Service struct {
	users     *catalog.Store[model.User]
	bookings  BookingFetcher
	movies    MovieFetcher
	audit     audit.Recorder
	logger    *slog.Logger
	maxFanOut int
}

// New returns a gateway Service over the given user catalog and downstream
// clients.
func New(users *catalog.Store[model.User], bookings BookingFetcher, movies MovieFetcher, recorder audit.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = audit.NewNoop()
	}
	return &Service{
		users:     users,
		bookings:  bookings,
		movies:    movies,
		audit:     recorder,
		logger:    logger.With("component", "gateway"),
		maxFanOut: DefaultMaxFanOut,
	}
}

// UserBookings returns the user's bookings grouped by date, each transaction
// enriched with its movie record. The join is all-or-nothing: any downstream
// failure aborts the whole aggregation and no partial result is returned.
func (s *Service) UserBookings(ctx context.Context, username string) (map[string][]model.EnrichedBooking, error) {
	if !s.users.Has(username) {
		s.recordFailure(ctx, username)
		return nil, httperr.NotFound("user '%s' not found", username)
	}

	days, err := s.bookings.UserBookings(ctx, username)
	if err != nil {
		s.recordFailure(ctx, username)
		switch {
		case errors.Is(err, client.ErrNoBookings):
			return nil, httperr.NotFound("no bookings were found for %s", username)
		case errors.Is(err, client.ErrUnavailable):
			return nil, httperr.Unavailable("the bookings service is unavailable")
		default:
			return nil, fmt.Errorf("fetch bookings for %s: %w", username, err)
		}
	}

	movies, err := s.resolveMovies(ctx, days)
	if err != nil {
		s.recordFailure(ctx, username)
		if errors.Is(err, client.ErrUnavailable) {
			return nil, httperr.Unavailable("the movie service is unavailable")
		}
		// A movie ID that does not resolve is a downstream-consistency
		// failure, not a client error.
		return nil, fmt.Errorf("resolve movies for %s: %w", username, err)
	}

	result := make(map[string][]model.EnrichedBooking, len(days))
	for date, transactions := range days {
		enriched := make([]model.EnrichedBooking, len(transactions))
		for i, txn := range transactions {
			movie := movies[txn.MovieID]
			enriched[i] = model.EnrichedBooking{
				Title:         movie.Title,
				Rating:        movie.Rating,
				URI:           movie.URI,
				TransactionID: txn.TransactionID,
				TotalAmount:   txn.TotalAmount,
				CardLastFour:  txn.CardLastFour,
				PaymentStatus: txn.PaymentStatus,
			}
		}
		result[date] = enriched
	}

	transactionIDs := collectTransactionIDs(days)
	s.audit.Record(ctx, audit.Entry{
		Action:           "user.bookings.retrieved",
		Resource:         "user_bookings",
		UserID:           username,
		TransactionCount: len(transactionIDs),
		TransactionIDs:   transactionIDs,
		Result:           audit.ResultSuccess,
	})

	return result, nil
}

// resolveMovies fetches every distinct movie referenced by the booking map.
// Lookups are independent and run concurrently; movie IDs are deduplicated
// within the request so each is fetched once.
func (s *Service) resolveMovies(ctx context.Context, days model.BookingDays) (map[string]*model.Movie, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, transactions := range days {
		for _, txn := range transactions {
			if !seen[txn.MovieID] {
				seen[txn.MovieID] = true
				ids = append(ids, txn.MovieID)
			}
		}
	}

	resolved := make([]*model.Movie, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxFanOut)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			movie, err := s.movies.Movie(ctx, id)
			if err != nil {
				return err
			}
			resolved[i] = movie
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	movies := make(map[string]*model.Movie, len(ids))
	for i, id := range ids {
		movies[id] = resolved[i]
	}
	return movies, nil
}

// recordFailure emits a failure audit entry for an aborted aggregation.
// No success record is ever written for a failed join.
func (s *Service) recordFailure(ctx context.Context, username string) {
	s.audit.Record(ctx, audit.Entry{
		Action:   "user.bookings.retrieved",
		Resource: "user_bookings",
		UserID:   username,
		Result:   audit.ResultFailure,
	})
}

// collectTransactionIDs flattens transaction IDs in date order for the
// audit record.
func collectTransactionIDs(days model.BookingDays) []string {
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var ids []string
	for _, date := range dates {
		for _, txn := range days[date] {
			ids = append(ids, txn.TransactionID)
		}
	}
	return ids
}
