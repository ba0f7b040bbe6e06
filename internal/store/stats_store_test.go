package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"casino/internal/models"
)

func TestStatsStoreGetFound(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE user_id = $1 AND game_id = $2") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != "user-1" || args[1] != "game-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.GameStats) = models.GameStats{UserID: "user-1", GameID: "game-1", CurrentStreak: 3}
			return nil
		},
	}
	store := NewStatsStore(stubDB{})
	row, found, err := store.Get(ctx, getter, "user-1", "game-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || row.CurrentStreak != 3 {
		t.Fatalf("unexpected result: found=%v row=%#v", found, row)
	}
}

func TestStatsStoreGetMissingRowIsNotAnError(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, _ any, _ string, _ ...any) error {
			return sql.ErrNoRows
		},
	}
	store := NewStatsStore(stubDB{})
	_, found, err := store.Get(ctx, getter, "user-1", "game-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for missing row")
	}
}

func TestStatsStoreInsert(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO game_statistics") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 9 {
				t.Fatalf("expected 9 args, got %d", len(args))
			}
			if args[0] != "user-1" || args[7] != int64(1) || args[8] != int64(1) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewStatsStore(stubDB{})
	err := store.Insert(ctx, execer, models.GameStats{
		UserID: "user-1", GameID: "game-1", TotalPlays: 1, TotalWagered: 1000,
		TotalWon: 1500, BiggestWin: 1500, CurrentStreak: 1, LongestStreak: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatsStoreUpdate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "UPDATE game_statistics") || !strings.Contains(query, "last_played = NOW()") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 9 {
				t.Fatalf("expected 9 args, got %d", len(args))
			}
			if args[5] != int64(-2) || args[7] != "user-1" || args[8] != "game-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewStatsStore(stubDB{})
	err := store.Update(ctx, execer, models.GameStats{
		UserID: "user-1", GameID: "game-1", TotalPlays: 5, TotalWagered: 5000,
		TotalWon: 1500, TotalLost: 2000, BiggestWin: 1500, CurrentStreak: -2, LongestStreak: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatsStoreListByUser(t *testing.T) {
	ctx := context.Background()
	store := NewStatsStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "ORDER BY gs.last_played DESC") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "user-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]models.GameStats) = []models.GameStats{{GameID: "game-1"}}
			return nil
		},
	})
	rows, err := store.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].GameID != "game-1" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
