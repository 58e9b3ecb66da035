package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies the failure of a store operation, so the callers can map it
// to their own responses without inspecting the database errors.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDeleted
	KindPermission
	KindRelation
	KindConflict
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindDeleted:
		return "deleted"
	case KindPermission:
		return "permission denied"
	case KindRelation:
		return "relation violated"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid input"
	}
	return "internal"
}

// entities
const (
	entPost       = "post"
	entAttachment = "attachment"
)

// postgres error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// OpError is returned by every exported store method.
type OpError struct {
	// Op is the name of the failed operation, e.g. "get-post".
	Op   string
	Kind Kind

	Entity   string
	EntityID int64

	// RelatedEntity is set when the operation failed because of another entity,
	// e.g. the attachment refers to a missing post.
	RelatedEntity   string
	RelatedEntityID int64

	// FailingField is the column or constraint which rejected the input.
	FailingField string

	Err error
}

func (e *OpError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s %s", e.Op, e.Entity, e.Kind)

	if e.EntityID != 0 {
		fmt.Fprintf(&b, " (id=%d)", e.EntityID)
	}

	if e.RelatedEntity != "" {
		fmt.Fprintf(&b, " related to %s", e.RelatedEntity)
		if e.RelatedEntityID != 0 {
			fmt.Fprintf(&b, " (id=%d)", e.RelatedEntityID)
		}
	}

	if e.FailingField != "" {
		fmt.Fprintf(&b, " field=%s", e.FailingField)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsKind reports whether the err is an OpError of the kind.
func IsKind(err error, kind Kind) bool {
	var opErr *OpError
	return errors.As(err, &opErr) && opErr.Kind == kind
}

func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound) || IsKind(err, KindDeleted)
}

type opOption func(*OpError)

func withEntityID(id int64) opOption {
	return func(e *OpError) {
		e.EntityID = id
	}
}

func withRelated(entity string, id int64) opOption {
	return func(e *OpError) {
		e.RelatedEntity = entity
		e.RelatedEntityID = id
	}
}

func withField(field string) opOption {
	return func(e *OpError) {
		e.FailingField = field
	}
}

func newOpError(op string, kind Kind, entity string, err error, opts ...opOption) *OpError {
	e := &OpError{
		Op:     op,
		Kind:   kind,
		Entity: entity,
		Err:    err,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func notFoundError(op, entity string, id int64) *OpError {
	return newOpError(
		op,
		KindNotFound,
		entity,
		fmt.Errorf("%s with id %d not found", entity, id),
		withEntityID(id),
	)
}

// opDetails is the context of the operation used to describe a database error.
type opDetails struct {
	entity   string
	entityID int64
	postID   int64
}

// sqlError classifies the error returned by the database.
func sqlError(op string, d opDetails, err error) *OpError {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundError(op, d.entity, d.entityID)
	}

	opts := []opOption{withEntityID(d.entityID)}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return newOpError(op, KindInternal, d.entity, err, opts...)
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return newOpError(op, KindConflict, d.entity, err, append(opts, withField(pgErr.ConstraintName))...)

	case pgForeignKeyViolation:
		return newOpError(op, KindRelation, d.entity, err, append(opts, withRelated(entPost, d.postID))...)

	case pgCheckViolation:
		return newOpError(op, KindInvalid, d.entity, err, append(opts, withField(pgErr.ConstraintName))...)

	case pgNotNullViolation:
		return newOpError(op, KindInvalid, d.entity, err, append(opts, withField(pgErr.ColumnName))...)
	}

	return newOpError(op, KindInternal, d.entity, err, opts...)
}
