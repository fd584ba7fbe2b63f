package cart

import (
	"context"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	lines := []CartLine{
		{SKU: "LWA-001", Name: "Armature", ImageURL: "/images/products/lwa-001.webp", Quantity: 3, AddedAt: "2025-01-15T10:00:00Z"},
		{SKU: "BRK-220", Name: "Brake Shoe", ImageURL: "/images/products/brk-220.webp", Description: "composite", Quantity: 1, AddedAt: "2025-01-15T11:00:00Z"},
	}

	data, err := EncodeLines(lines)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeLines(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(decoded) != len(lines) {
		t.Fatalf("expected %d lines, got %d", len(lines), len(decoded))
	}
	for i := range lines {
		if decoded[i] != lines[i] {
			t.Fatalf("line %d mismatch: %+v != %+v", i, decoded[i], lines[i])
		}
	}
}

func TestRoundTripThroughStoreReproducesState(t *testing.T) {
	store := testStore(nil)
	ctx := context.Background()
	store.AddToQuote(ctx, ProductInput{SKU: "LWA-001", Name: "Armature"})
	store.AddToQuote(ctx, ProductInput{SKU: "LWA-001", Name: "Armature"})
	store.AddToQuote(ctx, ProductInput{SKU: "BRK-220", Name: "Brake Shoe"})

	data, err := EncodeLines(store.Snapshot().Lines)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	lines, err := DecodeLines(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rehydrated := NewStore(StoreOptions{Lines: lines})

	if rehydrated.GetQuantity("LWA-001") != 2 || rehydrated.GetQuantity("BRK-220") != 1 {
		t.Fatalf("round trip lost quantities: %+v", rehydrated.Snapshot().Lines)
	}
}

func TestDecodeMigratesLegacyLineWithoutQuantity(t *testing.T) {
	legacy := []byte(`[{"sku":"LWA-001","name":"Armature","imageUrl":"/images/products/lwa-001.webp","addedAt":"2024-06-01T00:00:00Z"}]`)

	lines, err := DecodeLines(legacy)
	if err != nil {
		t.Fatalf("decode legacy: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 1 {
		t.Fatalf("legacy line must default to quantity 1, got %d", lines[0].Quantity)
	}
}

func TestDecodeDropsInvalidLines(t *testing.T) {
	payload := []byte(`[
		{"sku":"LWA-001","quantity":2,"addedAt":"x"},
		{"sku":"LWA-001","quantity":9,"addedAt":"x"},
		{"sku":"","quantity":1},
		{"sku":"BAD-1","quantity":0},
		{"sku":"BAD-2","quantity":-3}
	]`)

	lines, err := DecodeLines(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected only the first valid line, got %d", len(lines))
	}
	if lines[0].SKU != "LWA-001" || lines[0].Quantity != 2 {
		t.Fatalf("unexpected surviving line: %+v", lines[0])
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	lines, err := DecodeLines(nil)
	if err != nil {
		t.Fatalf("decode nil: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
}
