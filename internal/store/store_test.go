package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/gamification"
	"health_edu_backend/internal/model"
	"health_edu_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var t0 = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProfile(t *testing.T, repos *Repositories) *model.Profile {
	t.Helper()
	p := &model.Profile{DisplayName: "Grace", Email: "grace@example.com", PasswordHash: "x"}
	if err := repos.Profile.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

// quiz runs one attempt through the engine and persists it the way the
// quiz service does.
func quiz(t *testing.T, s ProgressStore, moduleID string, score, total int) []model.Badge {
	t.Helper()
	return quizAt(t, s, moduleID, score, total, t0)
}

func quizAt(t *testing.T, s ProgressStore, moduleID string, score, total int, at time.Time) []model.Badge {
	t.Helper()
	ctx := context.Background()
	user, err := s.LoadUser(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	result := gamification.NewQuizResult(score, total)
	badges := gamification.ApplyQuiz(user, moduleID, result, at)
	if err := s.SaveUser(ctx, user, Delta{Points: result.PointsEarned, ModuleID: moduleID, Result: &result, NewBadges: badges}); err != nil {
		t.Fatalf("save: %v", err)
	}
	return badges
}

func TestMemoryKVTTL(t *testing.T) {
	kv := NewMemoryKV()
	now := t0
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	if v, err := kv.Get(ctx, "missing"); v != nil || err != nil {
		t.Fatalf("missing key: %v %v", v, err)
	}
	_ = kv.Set(ctx, "k", []byte("v"), time.Minute)
	_ = kv.Set(ctx, "forever", []byte("v"), 0)

	if ok, _ := kv.Exists(ctx, "k"); !ok {
		t.Fatalf("key should exist")
	}
	now = now.Add(time.Minute)
	if ok, _ := kv.Exists(ctx, "k"); ok {
		t.Fatalf("key should have expired")
	}
	if ok, _ := kv.Exists(ctx, "forever"); !ok {
		t.Fatalf("key without ttl expired")
	}
	_ = kv.Del(ctx, "forever")
	if ok, _ := kv.Exists(ctx, "forever"); ok {
		t.Fatalf("deleted key still present")
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := NewLocalStore(kv, "device-1")

	user, err := s.LoadUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != model.DemoUserID || user.Name != model.DemoUserName {
		t.Fatalf("expected demo user, got %#v", user)
	}

	badges := quiz(t, s, catalog.ModuleNutrition, 2, 3)
	if len(badges) != 2 {
		t.Fatalf("badges = %d, want 2", len(badges))
	}

	if raw, _ := kv.Get(ctx, "health-education-user:device-1"); raw == nil {
		t.Fatalf("user not stored under the namespaced key")
	}

	user, err = s.LoadUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if user.Points != 20 || !user.HasBadge(catalog.BadgeNutritionExpert) || !user.HasCompleted(catalog.ModuleNutrition) {
		t.Fatalf("reloaded user lost progress: %#v", user)
	}

	// Other devices are isolated.
	other, _ := NewLocalStore(kv, "device-2").LoadUser(ctx)
	if other.Points != 0 {
		t.Fatalf("progress leaked across scopes")
	}

	if err := s.ResetUser(ctx); err != nil {
		t.Fatal(err)
	}
	user, _ = s.LoadUser(ctx)
	if !user.IsEmpty() || user.ID != model.DemoUserID {
		t.Fatalf("reset left %#v", user)
	}
}

func TestLocalStoreChallenges(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(NewMemoryKV(), "device-1")

	list, err := s.LoadChallenges(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v %v", list, err)
	}

	uc := &model.UserChallenge{
		ID:              "uc-1",
		ChallengeID:     "hydration-tracker",
		InteractionType: model.InteractionCounter,
		StartedAt:       t0,
		Progress:        model.CounterProgress{Count: 3, Target: 8},
	}
	if err := s.SaveChallenge(ctx, []*model.UserChallenge{uc}, uc, true); err != nil {
		t.Fatal(err)
	}
	list, err = s.LoadChallenges(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d", len(list))
	}
	if cp, ok := list[0].Progress.(model.CounterProgress); !ok || cp.Count != 3 || cp.Target != 8 {
		t.Fatalf("progress lost its type: %#v", list[0].Progress)
	}
}

func TestRemoteStore(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(openTestDB(t))
	p := seedProfile(t, repos)
	s := NewRemoteStore(repos, p.ID)

	quiz(t, s, catalog.ModuleNutrition, 1, 3)
	quiz(t, s, catalog.ModuleNutrition, 3, 3)
	quiz(t, s, catalog.ModulePhysicalActivity, 1, 2)

	user, err := s.LoadUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if user.Name != "Grace" || user.Email != "grace@example.com" {
		t.Fatalf("identity not loaded: %#v", user)
	}
	if user.Points != 50 {
		t.Fatalf("points = %d, want 50", user.Points)
	}
	if len(user.CompletedModules) != 1 || user.CompletedModules[0] != catalog.ModuleNutrition {
		t.Fatalf("completed = %v", user.CompletedModules)
	}
	mp := user.ModuleProgress[catalog.ModuleNutrition]
	if mp.Attempts != 2 || mp.Score != 3 || !mp.Completed {
		t.Fatalf("nutrition progress = %#v", mp)
	}
	if len(user.Badges) != 3 {
		t.Fatalf("badges = %v", user.Badges)
	}

	if err := s.ResetUser(ctx); err != nil {
		t.Fatal(err)
	}
	user, _ = s.LoadUser(ctx)
	if !user.IsEmpty() {
		t.Fatalf("reset left %#v", user)
	}

	// Badges can be earned again after a reset.
	if got := quiz(t, s, catalog.ModuleNutrition, 2, 3); len(got) != 2 {
		t.Fatalf("badges after reset = %v", got)
	}
}

func TestRemoteStoreChallenges(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(openTestDB(t))
	p := seedProfile(t, repos)
	s := NewRemoteStore(repos, p.ID)

	uc := &model.UserChallenge{
		ID:              "6f1c2d3e-0000-4000-8000-000000000001",
		ChallengeID:     "balanced-plate",
		InteractionType: model.InteractionChecklist,
		StartedAt:       t0,
		Progress:        model.ChecklistProgress{Items: []string{"a", "b"}, Completed: []string{}},
	}
	if err := s.SaveChallenge(ctx, nil, uc, true); err != nil {
		t.Fatal(err)
	}
	done := t0.Add(time.Hour)
	uc.Progress = model.ChecklistProgress{Items: []string{"a", "b"}, Completed: []string{"a", "b"}}
	uc.IsCompleted = true
	uc.CompletedAt = &done
	uc.PointsEarned = 30
	if err := s.SaveChallenge(ctx, nil, uc, false); err != nil {
		t.Fatal(err)
	}

	list, err := s.LoadChallenges(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].IsCompleted || list[0].PointsEarned != 30 {
		t.Fatalf("unexpected list %#v", list)
	}
	if cl := list[0].Progress.(model.ChecklistProgress); len(cl.Completed) != 2 {
		t.Fatalf("checklist = %#v", cl)
	}

	var rec model.ChallengeRecord
	repos.DB.First(&rec, "id = ?", uc.ID)
	if rec.ChallengeType != string(catalog.CategoryNutrition) {
		t.Fatalf("category = %q", rec.ChallengeType)
	}
}

type brokenStore struct{}

var errDown = errors.New("connection refused")

func (brokenStore) Mode() Mode { return ModeRemote }
func (brokenStore) LoadUser(context.Context) (*model.User, error) {
	return nil, errDown
}
func (brokenStore) SaveUser(context.Context, *model.User, Delta) error { return errDown }
func (brokenStore) ResetUser(context.Context) error                    { return errDown }
func (brokenStore) LoadChallenges(context.Context) ([]*model.UserChallenge, error) {
	return nil, errDown
}
func (brokenStore) SaveChallenge(context.Context, []*model.UserChallenge, *model.UserChallenge, bool) error {
	return errDown
}

func TestFallbackStoreUsesLocalOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	local := NewLocalStore(NewMemoryKV(), "user-7")
	s := NewFallbackStore(brokenStore{}, local)

	if s.Mode() != ModeRemote {
		t.Fatalf("mode = %s", s.Mode())
	}

	user, err := s.LoadUser(ctx)
	var fe *FallbackError
	if !errors.As(err, &fe) || fe.Op != "load_user" || !errors.Is(err, errDown) {
		t.Fatalf("expected FallbackError, got %v", err)
	}
	if user == nil {
		t.Fatalf("fallback returned no user")
	}

	user.Points = 40
	if err := s.SaveUser(ctx, user, Delta{Points: 40}); !errors.As(err, &fe) {
		t.Fatalf("expected FallbackError, got %v", err)
	}
	stored, _ := local.LoadUser(ctx)
	if stored.Points != 40 {
		t.Fatalf("local fallback did not persist")
	}

	if _, err := s.LoadChallenges(ctx); !errors.As(err, &fe) {
		t.Fatalf("expected FallbackError, got %v", err)
	}
	if err := s.ResetUser(ctx); !errors.As(err, &fe) {
		t.Fatalf("expected FallbackError, got %v", err)
	}
}

func TestFallbackStorePassesThrough(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	p := seedProfile(t, repos)
	s := NewFallbackStore(NewRemoteStore(repos, p.ID), NewLocalStore(NewMemoryKV(), "x"))
	if _, err := s.LoadUser(context.Background()); err != nil {
		t.Fatalf("healthy remote returned %v", err)
	}
}

func TestProviderSelectsBySession(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	p := NewProvider(NewMemoryKV(), repos)

	if s := p.For(nil, ""); s.Mode() != ModeLocal {
		t.Fatalf("anonymous request got %s store", s.Mode())
	}
	if s := p.For(&model.Session{UserID: 3}, "device"); s.Mode() != ModeRemote {
		t.Fatalf("session request got %s store", s.Mode())
	}
	if _, ok := p.For(&model.Session{UserID: 3}, "").(*FallbackStore); !ok {
		t.Fatalf("remote store is not wrapped in a fallback")
	}
	if p.Local("").scope != DemoScope {
		t.Fatalf("empty device id should use the demo scope")
	}
}

func TestRemoteStoreImportUser(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(openTestDB(t))
	p := seedProfile(t, repos)

	local := NewLocalStore(NewMemoryKV(), "device-1")
	quiz(t, local, catalog.ModuleSugarSalt, 2, 2)
	quiz(t, local, catalog.ModuleNutrition, 2, 3)
	quiz(t, local, catalog.ModuleObesity, 0, 3)
	demo, _ := local.LoadUser(ctx)

	started := &model.UserChallenge{
		ID:              "3f0c2b6e-0000-4000-8000-000000000001",
		ChallengeID:     "stairs-challenge",
		InteractionType: model.InteractionCounter,
		StartedAt:       t0,
		Progress:        model.CounterProgress{Count: 1, Target: 3},
	}

	remote := NewRemoteStore(repos, p.ID)
	n, err := remote.ImportUser(ctx, demo, []*model.UserChallenge{started})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("imported challenges = %d, want 1", n)
	}
	// a repeated import skips instances the account already holds
	if n, err := remote.ImportUser(ctx, model.DefaultUser(), []*model.UserChallenge{started}); err != nil || n != 0 {
		t.Fatalf("second import = %d, %v", n, err)
	}
	list, err := remote.LoadChallenges(ctx)
	if err != nil || len(list) != 1 || list[0].ID != started.ID {
		t.Fatalf("challenges after import = %v, %v", list, err)
	}
	got, err := remote.LoadUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Points != demo.Points {
		t.Fatalf("points = %d, want %d", got.Points, demo.Points)
	}
	if len(got.CompletedModules) != 2 || got.CompletedModules[0] != catalog.ModuleSugarSalt || got.CompletedModules[1] != catalog.ModuleNutrition {
		t.Fatalf("completed order = %v", got.CompletedModules)
	}
	if len(got.ModuleProgress) != 3 || len(got.Badges) != len(demo.Badges) {
		t.Fatalf("import incomplete: %#v", got)
	}
	if got.Name != "Grace" {
		t.Fatalf("import overwrote identity")
	}
}

func TestRemoteStoreCompletionOrder(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(openTestDB(t))
	p := seedProfile(t, repos)
	remote := NewRemoteStore(repos, p.ID)

	// nutrition gets its row first but is passed last
	quizAt(t, remote, catalog.ModuleNutrition, 0, 3, t0)
	quizAt(t, remote, catalog.ModuleSugarSalt, 3, 3, t0.Add(time.Hour))
	quizAt(t, remote, catalog.ModuleNutrition, 3, 3, t0.Add(2*time.Hour))
	// a later pass does not move the first completion
	quizAt(t, remote, catalog.ModuleSugarSalt, 3, 3, t0.Add(3*time.Hour))

	got, err := remote.LoadUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{catalog.ModuleSugarSalt, catalog.ModuleNutrition}
	if len(got.CompletedModules) != 2 || got.CompletedModules[0] != want[0] || got.CompletedModules[1] != want[1] {
		t.Fatalf("completed order = %v, want %v", got.CompletedModules, want)
	}
}

func TestFallbackStoreKeepsSessionIdentity(t *testing.T) {
	local := NewLocalStore(NewMemoryKV(), "user-7")
	s := NewFallbackStore(brokenStore{}, local).WithSession(&model.Session{UserID: 7, Email: "grace@example.com"})

	user, err := s.LoadUser(context.Background())
	var fe *FallbackError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FallbackError, got %v", err)
	}
	if user.ID != "7" || user.Email != "grace@example.com" || user.Name != "grace" {
		t.Fatalf("fallback identity = %q %q %q", user.ID, user.Email, user.Name)
	}
}
