package repository

import (
	"reflect"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildListWhere_NoFilters(t *testing.T) {
	where, args := buildListWhere(ListFilter{})

	if where != "WHERE 1=1" {
		t.Fatalf("expected bare where clause, got %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildListWhere_AllFilters(t *testing.T) {
	filter := ListFilter{
		Category:  "Electronics",
		Brand:     "Sony",
		MinPrice:  floatPtr(10),
		MaxPrice:  floatPtr(200),
		MinRating: floatPtr(4),
	}

	where, args := buildListWhere(filter)

	expected := "WHERE 1=1" +
		" AND p.primary_category = $1" +
		" AND p.brand_name = $2" +
		" AND p.price >= $3" +
		" AND p.price <= $4" +
		" AND p.rating_average >= $5"
	if where != expected {
		t.Fatalf("unexpected where clause:\n got %q\nwant %q", where, expected)
	}

	wantArgs := []interface{}{"Electronics", "Sony", 10.0, 200.0, 4.0}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args: got %v want %v", args, wantArgs)
	}
}

func TestBuildListWhere_PartialFilters(t *testing.T) {
	// Placeholder numbering must stay contiguous when earlier filters are absent.
	where, args := buildListWhere(ListFilter{Brand: "Sony", MinRating: floatPtr(3.5)})

	expected := "WHERE 1=1 AND p.brand_name = $1 AND p.rating_average >= $2"
	if where != expected {
		t.Fatalf("unexpected where clause: got %q want %q", where, expected)
	}
	if len(args) != 2 || args[0] != "Sony" || args[1] != 3.5 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListWhere_Deterministic(t *testing.T) {
	filter := ListFilter{Category: "Home", MinPrice: floatPtr(5)}

	where1, args1 := buildListWhere(filter)
	where2, args2 := buildListWhere(filter)

	if where1 != where2 || !reflect.DeepEqual(args1, args2) {
		t.Fatalf("query building is not deterministic: %q vs %q", where1, where2)
	}
}

func TestNormalizePaging_Defaults(t *testing.T) {
	page, limit, offset := normalizePaging(ListFilter{})

	if page != 1 || limit != 50 || offset != 0 {
		t.Fatalf("expected defaults 1/50/0, got %d/%d/%d", page, limit, offset)
	}
}

func TestNormalizePaging_Offset(t *testing.T) {
	page, limit, offset := normalizePaging(ListFilter{Page: 3, Limit: 10})

	if page != 3 || limit != 10 || offset != 20 {
		t.Fatalf("expected 3/10/20, got %d/%d/%d", page, limit, offset)
	}
}

func TestNormalizePaging_NonPositiveValues(t *testing.T) {
	page, limit, offset := normalizePaging(ListFilter{Page: -2, Limit: 0})

	if page != 1 || limit != 50 || offset != 0 {
		t.Fatalf("expected defaults for non-positive input, got %d/%d/%d", page, limit, offset)
	}
}
