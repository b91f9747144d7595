package usecase

import (
	"context"
	"errors"
	"strings"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

// wrap passes AppErrors through unchanged and hides everything else behind a 500.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(err)
}

// notFoundAs maps domain.ErrNotFound to a 404 carrying msg.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return wrap(err)
}

// paginate runs a list and its count with the same filter.
func paginate[T any](
	ctx context.Context,
	page domain.PageRequest,
	list func(context.Context) ([]T, error),
	count func(context.Context) (int64, error),
) ([]T, domain.Pagination, error) {
	items, err := list(ctx)
	if err != nil {
		return nil, domain.Pagination{}, wrap(err)
	}
	total, err := count(ctx)
	if err != nil {
		return nil, domain.Pagination{}, wrap(err)
	}
	return items, domain.NewPagination(page, total), nil
}

// setString trims and assigns a required text field when the patch carries one.
func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// setNullable assigns an optional text field; an empty value clears it.
func setNullable(dst **string, src *string) {
	if src == nil {
		return
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		*dst = nil
		return
	}
	*dst = &v
}

// trimNullable normalizes optional text on create.
func trimNullable(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func setValue[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setPointer replaces an optional value when the patch carries one.
func setPointer[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
