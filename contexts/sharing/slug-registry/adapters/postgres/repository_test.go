package postgresadapter

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"beastypage/contexts/sharing/slug-registry/domain/entities"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsSlugViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "slug constraint", err: &pgconn.PgError{Code: "23505", ConstraintName: shareSlugConstraint}, want: true},
		{name: "wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "other constraint", err: &pgconn.PgError{Code: "23505", ConstraintName: "share_records_pkey"}, want: false},
		{name: "other code", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}
	for _, tc := range cases {
		if got := isSlugViolation(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestShareModelMapping(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("x", 3600))
	row := shareModelFromEntity(entities.ShareRecord{
		ID:        " id-1 ",
		Slug:      " Slug123 ",
		Payload:   []byte(`{"k":"v"}`),
		CreatedAt: created,
	})
	if row.ID != "id-1" || row.Slug != "Slug123" {
		t.Fatalf("expected trimmed identifiers, got %+v", row)
	}
	if row.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %s", row.CreatedAt.Location())
	}

	record := row.toEntity()
	if !record.CreatedAt.Equal(created) || string(record.Payload) != `{"k":"v"}` {
		t.Fatalf("unexpected entity %+v", record)
	}
	if (shareModel{}).TableName() != "share_records" {
		t.Fatal("unexpected table name")
	}
}
