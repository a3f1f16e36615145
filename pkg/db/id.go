package db

import (
	"cmp"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
)

// Kind marks which table an ID belongs to.
type Kind interface {
	DocumentKind | DictKind | WordDefKind
}

// DocumentKind tags ids of rows in the document table.
type DocumentKind struct{}

// DictKind tags ids of rows in the dict table.
type DictKind struct{}

// WordDefKind tags ids of rows in the word_def table.
type WordDefKind struct{}

// ID is a rowid tagged with the kind of row it identifies. IDs of different
// kinds are different types, so a DictID cannot be passed where a DocumentID
// is expected. The tag occupies no space.
type ID[K Kind] struct {
	_ [0]K
	v uint64
}

type (
	DocumentID = ID[DocumentKind]
	DictID     = ID[DictKind]
	WordDefID  = ID[WordDefKind]
)

// NewID wraps a raw rowid.
func NewID[K Kind](raw uint64) ID[K] {
	return ID[K]{v: raw}
}

// Retag converts an id to another kind. Use only when the raw value is known
// to identify a row of the target kind.
func Retag[To, From Kind](id ID[From]) ID[To] {
	return ID[To]{v: id.v}
}

// Uint64 returns the raw rowid.
func (id ID[K]) Uint64() uint64 { return id.v }

// IsZero reports whether the id is unset. SQLite never hands out rowid 0.
func (id ID[K]) IsZero() bool { return id.v == 0 }

// Compare orders ids by their raw value.
func (id ID[K]) Compare(other ID[K]) int { return cmp.Compare(id.v, other.v) }

func (id ID[K]) Less(other ID[K]) bool { return id.v < other.v }

func (id ID[K]) String() string { return strconv.FormatUint(id.v, 10) }

// Value implements driver.Valuer.
func (id ID[K]) Value() (driver.Value, error) {
	if id.v > math.MaxInt64 {
		return nil, fmt.Errorf("id %d overflows int64", id.v)
	}
	return int64(id.v), nil
}

// Scan implements sql.Scanner.
func (id *ID[K]) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		if v < 0 {
			return fmt.Errorf("scan id: negative rowid %d", v)
		}
		id.v = uint64(v)
		return nil
	case nil:
		return fmt.Errorf("scan id: NULL rowid")
	default:
		return fmt.Errorf("scan id: unsupported type %T", src)
	}
}
