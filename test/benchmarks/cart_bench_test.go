package benchmarks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	redis_a "github.com/ahmadnk31/5g-leuven/internal/adapters/redis_adapter"
	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
)

func benchLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func benchLineItem(i int) domain.LineItem {
	return domain.LineItem{
		VariantID: uuid.New(),
		Quantity:  1 + i%4,
		Snapshot: domain.VariantSnapshot{
			VariantName: fmt.Sprintf("Variant %d", i),
			SKU:         fmt.Sprintf("SKU-%04d", i),
			ProductID:   uuid.New(),
			ProductName: "Bench Product",
			UnitPrice:   decimal.NewFromInt(int64(100 + i)),
		},
		AddedAt: time.Now(),
	}
}

func benchCart(lines int) *domain.Cart {
	cart := domain.NewCart()
	for i := 0; i < lines; i++ {
		cart.Add(benchLineItem(i))
	}
	return cart
}

func BenchmarkCartOperations(b *testing.B) {
	b.Run("Add", func(b *testing.B) {
		items := make([]domain.LineItem, 100)
		for i := range items {
			items[i] = benchLineItem(i)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			cart := domain.NewCart()
			for j := range items {
				cart.Add(items[j])
			}
		}
	})

	b.Run("AddMergesSameVariant", func(b *testing.B) {
		item := benchLineItem(0)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			cart := domain.NewCart()
			for j := 0; j < 100; j++ {
				cart.Add(item)
			}
		}
	})

	b.Run("Subtotal", func(b *testing.B) {
		cart := benchCart(50)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = cart.Subtotal()
		}
	})

	b.Run("SetQuantity", func(b *testing.B) {
		cart := benchCart(50)
		items := cart.Items()

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			cart.SetQuantity(items[i%len(items)].VariantID, 1+i%9)
		}
	})
}

func BenchmarkProjection(b *testing.B) {
	cart := benchCart(50)
	items := cart.Items()

	stockByVariant := make(map[uuid.UUID][]domain.StockRow, len(items))
	for i := range items {
		stockByVariant[items[i].VariantID] = []domain.StockRow{
			{VariantID: items[i].VariantID, Location: "leuven", Quantity: i % 6},
			{VariantID: items[i].VariantID, Location: "warehouse", Quantity: (i + 3) % 4},
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range items {
			_ = domain.ProjectLineItem(items[j], stockByVariant[items[j].VariantID])
		}
	}
}

func BenchmarkEnvelopeCodec(b *testing.B) {
	envelope := domain.NewCartEnvelope(benchCart(50))
	data, err := envelope.Marshal()
	if err != nil {
		b.Fatal(err)
	}

	b.Run("Marshal", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = envelope.Marshal()
		}
	})

	b.Run("Unmarshal", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = domain.UnmarshalCartEnvelope(data)
		}
	})
}

func BenchmarkCartStorage(b *testing.B) {
	mr := miniredis.RunT(b)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	storage := redis_a.NewCartStorage(client, time.Hour, benchLogger())
	ctx := context.Background()
	cartID := uuid.New()
	envelope := domain.NewCartEnvelope(benchCart(20))

	b.Run("Save", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := storage.Save(ctx, cartID, envelope); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Load", func(b *testing.B) {
		if err := storage.Save(ctx, cartID, envelope); err != nil {
			b.Fatal(err)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := storage.Load(ctx, cartID); err != nil {
				b.Fatal(err)
			}
		}
	})
}
