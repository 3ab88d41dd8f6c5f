package ask

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	games       []domain.GameRow
	stats       []domain.PlayerStatRow
	average     *domain.SeasonAverage
	champ       *domain.TeamRecord
	err         error
	similarity  bool
	recency     bool
	byPlayer    bool
	wins        bool
	statsCalled bool
	avgCalled   bool

	lastLimit      int
	lastDescending bool
	lastYear       *int
	lastDate       string
	lastGameIDs    []int64
	lastPlayerID   int64
}

func (m *mockStore) GamesBySimilarity(_ context.Context, _ []float32, year *int, date string, limit int) ([]domain.GameRow, error) {
	m.similarity = true
	m.lastYear, m.lastDate, m.lastLimit = year, date, limit
	return m.games, m.err
}

func (m *mockStore) GamesByRecency(_ context.Context, year *int, date string, limit int) ([]domain.GameRow, error) {
	m.recency = true
	m.lastYear, m.lastDate, m.lastLimit = year, date, limit
	return m.games, m.err
}

func (m *mockStore) GamesByPlayer(_ context.Context, playerID int64, year *int, descending bool, limit int) ([]domain.GameRow, error) {
	m.byPlayer = true
	m.lastPlayerID, m.lastYear, m.lastDescending, m.lastLimit = playerID, year, descending, limit
	return m.games, m.err
}

func (m *mockStore) TopTeamByWins(_ context.Context, year *int) (*domain.TeamRecord, error) {
	m.wins = true
	m.lastYear = year
	return m.champ, m.err
}

func (m *mockStore) GamesWonByTeam(_ context.Context, _ int64, year *int, limit int) ([]domain.GameRow, error) {
	m.lastYear, m.lastLimit = year, limit
	return m.games, m.err
}

func (m *mockStore) PlayerStatsForGames(_ context.Context, gameIDs []int64, playerID int64, _ bool, _ int) ([]domain.PlayerStatRow, error) {
	m.statsCalled = true
	m.lastGameIDs = gameIDs
	m.lastPlayerID = playerID
	return m.stats, nil
}

func (m *mockStore) SeasonAverage(_ context.Context, _ int64, _ *int) (*domain.SeasonAverage, error) {
	m.avgCalled = true
	return m.average, nil
}

type mockEmbedder struct {
	called bool
	err    error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type mockGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (domain.GenerationResult, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return domain.GenerationResult{}, m.err
	}
	return domain.GenerationResult{Text: m.reply}, nil
}

func testPlayers() []domain.Player {
	return []domain.Player{
		{ID: 1, FirstName: "LeBron", LastName: "James"},
		{ID: 2, FirstName: "Nikola", LastName: "Jokić"},
	}
}

func testGames() []domain.GameRow {
	return []domain.GameRow{
		{ID: 101, Timestamp: "2024-03-01T19:00:00", HomeTeam: "Denver Nuggets",
			AwayTeam: "Los Angeles Lakers", HomePoints: 114, AwayPoints: 106,
			Winner: "Denver Nuggets"},
		{ID: 102, Timestamp: "2024-03-03T20:00:00", HomeTeam: "Los Angeles Lakers",
			AwayTeam: "Utah Jazz", HomePoints: 120, AwayPoints: 99,
			Winner: "Los Angeles Lakers"},
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.November, 14, 12, 0, 0, 0, time.UTC)
	}
}

func newService(store *mockStore, embed *mockEmbedder, gen *mockGenerator) *Service {
	return New(store, embed, gen, testPlayers(), zap.NewNop()).WithClock(fixedClock())
}

// --- Tests ---

func TestAsk_SemanticDefault(t *testing.T) {
	store := &mockStore{games: testGames()}
	embed := &mockEmbedder{}
	gen := &mockGenerator{reply: "The Nuggets won 114-106."}
	svc := newService(store, embed, gen)

	q := domain.Question{
		ID:   1,
		Text: "Who won when the Nuggets hosted the Lakers?",
		Return: domain.ReturnSchema{
			"winner": "str", "score": "str", "evidence": "list",
		},
	}

	result, err := svc.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !embed.called {
		t.Error("semantic strategy must embed the question")
	}
	if !store.similarity {
		t.Error("expected GamesBySimilarity")
	}
	if result["winner"] != "Nuggets" {
		t.Errorf("winner = %v, want Nuggets", result["winner"])
	}
	if result["score"] != "114-106" {
		t.Errorf("score = %v, want 114-106", result["score"])
	}
	refs, ok := result[domain.EvidenceField].([]domain.EvidenceRef)
	if !ok || len(refs) == 0 {
		t.Fatalf("expected evidence refs, got %v", result[domain.EvidenceField])
	}
	if store.statsCalled {
		t.Error("game-only schema must not fetch box scores")
	}
}

func TestAsk_EntityScopedSkipsEmbedding(t *testing.T) {
	store := &mockStore{
		games: testGames(),
		stats: []domain.PlayerStatRow{
			{GameID: 101, PlayerID: 1, PlayerName: "LeBron James",
				Points: 28, Rebounds: 8, Assists: 9, TeamName: "Los Angeles Lakers",
				Opponent: "Denver Nuggets", Timestamp: "2024-03-01T19:00:00"},
		},
	}
	embed := &mockEmbedder{}
	gen := &mockGenerator{reply: "LeBron James had 28 points, 8 rebounds and 9 assists."}
	svc := newService(store, embed, gen)

	q := domain.Question{
		Text: "How did LeBron James do against Denver?",
		Return: domain.ReturnSchema{
			"player_name": "str", "points": "int", "rebounds": "int",
			"assists": "int", "evidence": "list",
		},
	}

	result, err := svc.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embed.called {
		t.Error("entity-scoped strategy must bypass the embedding call")
	}
	if !store.byPlayer {
		t.Error("expected GamesByPlayer")
	}
	if store.lastPlayerID != 1 {
		t.Errorf("stats scoped to player %d, want 1", store.lastPlayerID)
	}
	if got := result["player_name"]; got != "LeBron James" {
		t.Errorf("player_name = %v", got)
	}
	if result["points"] != 28 || result["rebounds"] != 8 || result["assists"] != 9 {
		t.Errorf("stat extraction wrong: %+v", result)
	}
	if len(store.lastGameIDs) != 2 {
		t.Errorf("dependent fetch must reuse the primary game-id set, got %v", store.lastGameIDs)
	}
}

func TestAsk_ChampionshipBypassesSimilarityAndAddsDisclaimer(t *testing.T) {
	store := &mockStore{
		games: testGames(),
		champ: &domain.TeamRecord{TeamID: 3, TeamName: "Denver Nuggets", Wins: 57},
	}
	embed := &mockEmbedder{}
	gen := &mockGenerator{reply: "Denver had the best record."}
	svc := newService(store, embed, gen)

	q := domain.Question{
		Text:   "Who won the championship in 2024?",
		Return: domain.ReturnSchema{"winner": "str", "evidence": "list"},
	}

	if _, err := svc.Ask(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embed.called || store.similarity {
		t.Error("championship plan must never use semantic similarity")
	}
	if !store.wins {
		t.Error("expected TopTeamByWins")
	}
	if store.lastYear == nil || *store.lastYear != 2024 {
		t.Errorf("year filter = %v, want 2024", store.lastYear)
	}
	if !strings.Contains(gen.lastPrompt, "=== IMPORTANT: DATA LIMITATION ===") {
		t.Error("championship context must carry the regular-season disclaimer")
	}
	if !strings.Contains(gen.lastPrompt, "REGULAR SEASON") {
		t.Error("disclaimer must state the data limitation")
	}
}

func TestAsk_RecencyOverridesSimilarity(t *testing.T) {
	store := &mockStore{games: testGames()}
	embed := &mockEmbedder{}
	gen := &mockGenerator{reply: "The latest game was in March."}
	svc := newService(store, embed, gen)

	q := domain.Question{
		Text:   "What was the most recent game?",
		Return: domain.ReturnSchema{"winner": "str", "evidence": "list"},
	}

	if _, err := svc.Ask(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embed.called {
		t.Error("recency is a hard override of similarity ranking")
	}
	if !store.recency {
		t.Error("expected GamesByRecency")
	}
	if store.lastLimit != 3 {
		t.Errorf("recency window = %d, want 3", store.lastLimit)
	}
}

// Round trip: averages question for a resolved player with a year keyword.
func TestAsk_AveragesLastYear(t *testing.T) {
	store := &mockStore{
		games: testGames(),
		stats: []domain.PlayerStatRow{
			{GameID: 101, PlayerID: 1, PlayerName: "LeBron James",
				Points: 25, Rebounds: 7, Assists: 8},
		},
		average: &domain.SeasonAverage{
			PlayerName: "LeBron James", GamesPlayed: 70,
			Points: 25.7, Rebounds: 7.3, Assists: 8.2,
		},
	}
	gen := &mockGenerator{reply: "LeBron James averaged 25 points, 7 rebounds and 8 assists."}
	svc := newService(store, &mockEmbedder{}, gen)

	q := domain.Question{
		Text: "What were LeBron James's averages last year?",
		Return: domain.ReturnSchema{
			"player_name": "str", "points": "int", "rebounds": "int",
			"assists": "int", "evidence": "list",
		},
	}

	result, err := svc.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastYear == nil || *store.lastYear != 2024 {
		t.Fatalf("year filter = %v, want 2024 (clock year 2025)", store.lastYear)
	}
	if !store.avgCalled {
		t.Error("average flag with an entity must fetch the season aggregate")
	}
	if !strings.Contains(gen.lastPrompt, "=== SEASON AVERAGES ===") {
		t.Error("season-average block missing from the context")
	}
	if result["points"] != 25 || result["rebounds"] != 7 || result["assists"] != 8 {
		t.Errorf("stat fields wrong: %+v", result)
	}
	if result["player_name"] != "LeBron James" {
		t.Errorf("player_name = %v", result["player_name"])
	}
}

func TestAsk_EmptyRetrievalDegradesToZeroValues(t *testing.T) {
	store := &mockStore{} // no games anywhere
	gen := &mockGenerator{reply: "I could not find anything."}
	svc := newService(store, &mockEmbedder{}, gen)

	q := domain.Question{
		Text: "What were LeBron James's averages last year?",
		Return: domain.ReturnSchema{
			"player_name": "str", "points": "int", "rebounds": "int",
			"assists": "int", "evidence": "list",
		},
	}

	result, err := svc.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("empty retrieval must not fail: %v", err)
	}
	if store.avgCalled {
		t.Error("no games found, season aggregate must be skipped")
	}
	if result["points"] != 0 || result["rebounds"] != 0 || result["assists"] != 0 {
		t.Errorf("expected zero values, got %+v", result)
	}
	if result["player_name"] != "" {
		t.Errorf("player_name = %v, want empty", result["player_name"])
	}
	refs := result[domain.EvidenceField].([]domain.EvidenceRef)
	if len(refs) != 0 {
		t.Errorf("no rows, no evidence, got %+v", refs)
	}
}

func TestAsk_GenerationFailureAborts(t *testing.T) {
	store := &mockStore{games: testGames()}
	gen := &mockGenerator{err: domain.ErrGenerationProviderError}
	svc := newService(store, &mockEmbedder{}, gen)

	q := domain.Question{Text: "Who won?", Return: domain.ReturnSchema{"winner": "str"}}

	if _, err := svc.Ask(context.Background(), q); !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Fatalf("expected generation provider error, got %v", err)
	}
}

func TestAsk_EmbeddingFailureAborts(t *testing.T) {
	store := &mockStore{games: testGames()}
	embed := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	svc := newService(store, embed, &mockGenerator{reply: "x"})

	q := domain.Question{Text: "Who won?", Return: domain.ReturnSchema{"winner": "str"}}

	if _, err := svc.Ask(context.Background(), q); !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected embedding provider error, got %v", err)
	}
}

func TestAsk_StoreFailureAborts(t *testing.T) {
	store := &mockStore{err: domain.ErrStoreUnavailable}
	svc := newService(store, &mockEmbedder{}, &mockGenerator{reply: "x"})

	q := domain.Question{Text: "Who won?", Return: domain.ReturnSchema{"winner": "str"}}

	if _, err := svc.Ask(context.Background(), q); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestChat(t *testing.T) {
	store := &mockStore{
		games: testGames(),
		stats: []domain.PlayerStatRow{
			{GameID: 101, PlayerID: 2, PlayerName: "Nikola Jokić", Points: 31},
		},
	}
	gen := &mockGenerator{reply: "Jokić was dominant."}
	svc := newService(store, &mockEmbedder{}, gen)

	got, err := svc.Chat(context.Background(), "How did Jokić play?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Error("answer id must be set")
	}
	if got.Text != "Jokić was dominant." {
		t.Errorf("answer text = %q", got.Text)
	}
	if !store.statsCalled {
		t.Error("free-form questions always fetch box scores when games exist")
	}
	if len(got.Evidence) == 0 {
		t.Error("expected evidence refs")
	}
}

func TestChat_EmptyQuestion(t *testing.T) {
	svc := newService(&mockStore{}, &mockEmbedder{}, &mockGenerator{})

	if _, err := svc.Chat(context.Background(), "   "); !errors.Is(err, domain.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}
