package persist

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

type stubExecutor struct {
	mu             sync.Mutex
	insertArgs     []any
	incrementArgs  []any
	incrementUsed  int
	atCeiling      bool
	incrementCalls int
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.Contains(query, "insert into generations") {
		s.insertArgs = append([]any{}, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.Contains(query, "insert into usage_counters") {
		s.incrementCalls++
		s.incrementArgs = append([]any{}, args...)
		if s.atCeiling {
			return stubRow{err: pgx.ErrNoRows}
		}
		s.incrementUsed += args[1].(int)
		used := s.incrementUsed
		return stubRow{scan: func(dest ...any) error {
			*(dest[0].(*int)) = used
			return nil
		}}
	}
	return stubRow{err: pgx.ErrNoRows}
}

type stubRow struct {
	scan func(dest ...any) error
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return r.scan(dest...)
}

func drain(t *testing.T, r *Recorder) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Close(ctx); err != nil {
		t.Fatalf("close recorder: %v", err)
	}
}

func sampleDeck(n int) domain.Deck {
	deck := domain.Deck{Title: "Photosynthesis"}
	for i := 0; i < n; i++ {
		deck.Flashcards = append(deck.Flashcards, domain.Flashcard{Question: "q", Answer: "a"})
	}
	return deck
}

func TestRecorderPersistsGenerationAndUsage(t *testing.T) {
	sql := &stubExecutor{}
	rec := NewRecorder(sql, zerolog.Nop(), 4)

	ok := rec.Enqueue(Record{
		UserID:         "u1",
		Notes:          "leaves absorb light",
		Mode:           domain.ModeAuto,
		Style:          "balanced",
		RequestedCount: 5,
		Deck:           sampleDeck(2),
		Locale:         "en",
		Country:        "ID",
		FreePlan:       true,
		CardLimit:      100,
	})
	if !ok {
		t.Fatal("enqueue refused")
	}
	drain(t, rec)

	if len(sql.insertArgs) != 9 {
		t.Fatalf("insert args = %d, want 9", len(sql.insertArgs))
	}
	if sql.insertArgs[0] != "u1" || sql.insertArgs[2] != "auto" || sql.insertArgs[5] != "Photosynthesis" {
		t.Fatalf("insert args = %v", sql.insertArgs)
	}
	if sql.incrementCalls != 1 {
		t.Fatalf("increment calls = %d, want 1", sql.incrementCalls)
	}
	if sql.incrementArgs[1] != 2 || sql.incrementArgs[2] != 100 {
		t.Fatalf("increment args = %v", sql.incrementArgs)
	}
}

func TestRecorderDerivesTitleFromNotes(t *testing.T) {
	sql := &stubExecutor{}
	rec := NewRecorder(sql, zerolog.Nop(), 4)

	deck := sampleDeck(1)
	deck.Title = ""
	rec.Enqueue(Record{UserID: "u1", Notes: "mitochondria are the powerhouse", Deck: deck})
	drain(t, rec)

	if got := sql.insertArgs[5]; got != "mitochondria are the powerhouse" {
		t.Fatalf("title = %v", got)
	}
}

func TestRecorderSkipsUsageForPremium(t *testing.T) {
	sql := &stubExecutor{}
	rec := NewRecorder(sql, zerolog.Nop(), 4)

	rec.Enqueue(Record{UserID: "u1", Deck: sampleDeck(3), FreePlan: false, CardLimit: 100})
	drain(t, rec)

	if sql.incrementCalls != 0 {
		t.Fatalf("increment calls = %d, want 0", sql.incrementCalls)
	}
	if len(sql.insertArgs) == 0 {
		t.Fatal("generation insert missing")
	}
}

func TestRecorderSkipsUsageForEmptyDeck(t *testing.T) {
	sql := &stubExecutor{}
	rec := NewRecorder(sql, zerolog.Nop(), 4)

	rec.Enqueue(Record{UserID: "u1", Deck: domain.Deck{Title: "x"}, FreePlan: true, CardLimit: 100})
	drain(t, rec)

	if sql.incrementCalls != 0 {
		t.Fatalf("increment calls = %d, want 0", sql.incrementCalls)
	}
}

func TestRecorderToleratesCeiling(t *testing.T) {
	sql := &stubExecutor{atCeiling: true}
	rec := NewRecorder(sql, zerolog.Nop(), 4)

	rec.Enqueue(Record{UserID: "u1", Deck: sampleDeck(4), FreePlan: true, CardLimit: 100})
	drain(t, rec)

	if sql.incrementCalls != 1 {
		t.Fatalf("increment calls = %d, want 1", sql.incrementCalls)
	}
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	sql := &stubExecutor{}
	r := &Recorder{
		sql:    sql,
		logger: zerolog.Nop(),
		queue:  make(chan Record, 1),
		done:   make(chan struct{}),
	}
	// No worker: the first enqueue fills the queue, the second must drop.
	if !r.Enqueue(Record{UserID: "u1"}) {
		t.Fatal("first enqueue refused")
	}
	if r.Enqueue(Record{UserID: "u2"}) {
		t.Fatal("second enqueue accepted on a full queue")
	}
	go r.run()
	drain(t, r)
}

func TestRecorderEnqueueAfterCloseDrops(t *testing.T) {
	sql := &stubExecutor{}
	rec := NewRecorder(sql, zerolog.Nop(), 4)
	drain(t, rec)

	if rec.Enqueue(Record{UserID: "u1", Deck: sampleDeck(1)}) {
		t.Fatal("enqueue accepted after close")
	}
	if len(sql.insertArgs) != 0 {
		t.Fatalf("insert ran after close: %v", sql.insertArgs)
	}
}

func TestRecorderCloseTwice(t *testing.T) {
	rec := NewRecorder(&stubExecutor{}, zerolog.Nop(), 4)
	drain(t, rec)
	if err := rec.Close(context.Background()); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
