package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/challenge"
	"health_edu_backend/internal/config"
	"health_edu_backend/internal/gamification"
	"health_edu_backend/internal/model"
	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"
	"health_edu_backend/pkg/database"
	"health_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

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

type fixture struct {
	kv       *store.MemoryKV
	repos    *store.Repositories
	provider *store.Provider
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := store.NewMemoryKV()
	repos := store.NewRepositories(openTestDB(t))
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", ExpireTime: time.Hour}}
	auth := NewAuthService(repos.Profile, kv, cfg)
	return &fixture{kv: kv, repos: repos, provider: store.NewProvider(kv, repos), auth: auth}
}

func (f *fixture) session(t *testing.T, email string) *model.Session {
	t.Helper()
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, RegisterInput{Email: email, Password: "correct-horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	res, err := f.auth.Login(ctx, email, "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	s, err := f.auth.CurrentSession(ctx, res.Token)
	if err != nil || s == nil {
		t.Fatalf("session: %v", err)
	}
	return s
}

func newQuizService() *QuizService {
	s := NewQuizService()
	s.Now = func() time.Time { return fixedNow }
	return s
}

func newChallengeService() *ChallengeService {
	s := NewChallengeService(challenge.NewRuntime(time.UTC), challenge.NewTimerRegistry(time.Millisecond))
	s.Now = func() time.Time { return fixedNow }
	return s
}

type failingArchiver struct{}

func (failingArchiver) Archive(context.Context, *ResetSnapshot) (string, error) {
	return "", errors.New("bucket missing")
}

type memoryArchiver struct {
	snapshots map[string]*ResetSnapshot
}

func (a *memoryArchiver) Archive(_ context.Context, s *ResetSnapshot) (string, error) {
	key := snapshotKey(s)
	a.snapshots[key] = s
	return key, nil
}

// downKV is a store.KV whose backend never answers.
type downKV struct{}

var errKVDown = errors.New("redis: connection refused")

func (downKV) Get(context.Context, string) ([]byte, error) { return nil, errKVDown }
func (downKV) Set(context.Context, string, []byte, time.Duration) error { return errKVDown }
func (downKV) Del(context.Context, string) error { return errKVDown }
func (downKV) Exists(context.Context, string) (bool, error) { return false, errKVDown }

func hasDestructive(notices []model.Notice) bool {
	for _, n := range notices {
		if n.Variant == model.NoticeDestructive {
			return true
		}
	}
	return false
}

func hasNotice(notices []model.Notice, title string) bool {
	for _, n := range notices {
		if n.Title == title {
			return true
		}
	}
	return false
}

func TestCompleteQuizDemo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.provider.For(nil, "device-1")

	out, err := newQuizService().CompleteQuiz(ctx, st, catalog.ModuleNutrition, model.QuizResult{Score: 2, TotalQuestions: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Result.Passed || out.Result.PointsEarned != 20 {
		t.Fatalf("result = %#v", out.Result)
	}
	if len(out.NewBadges) != 2 || out.NewBadges[1].ID != catalog.BadgeNutritionExpert {
		t.Fatalf("badges = %#v", out.NewBadges)
	}
	if !hasNotice(out.Notices, "Module Completed! 🎉") {
		t.Fatalf("notices = %#v", out.Notices)
	}

	user, _ := st.LoadUser(ctx)
	if user.Points != 20 || len(user.Badges) != 2 {
		t.Fatalf("not persisted: %#v", user)
	}
}

func TestCompleteQuizUnknownModuleIsNoop(t *testing.T) {
	f := newFixture(t)
	st := f.provider.For(nil, "")
	out, err := newQuizService().CompleteQuiz(context.Background(), st, "astronomy", model.QuizResult{Score: 3, TotalQuestions: 3})
	if out != nil || err != nil {
		t.Fatalf("expected no-op, got %v %v", out, err)
	}
	user, _ := st.LoadUser(context.Background())
	if !user.IsEmpty() {
		t.Fatalf("unknown module changed state")
	}
}

func TestSubmitQuizGradesAnswers(t *testing.T) {
	f := newFixture(t)
	st := f.provider.For(nil, "")
	module, _ := catalog.ModuleByID(catalog.ModuleObesity)
	answers := map[string]int{}
	for _, q := range module.Questions {
		answers[q.ID] = q.CorrectAnswer
	}
	out, err := newQuizService().SubmitQuiz(context.Background(), st, module.ID, answers)
	if err != nil {
		t.Fatal(err)
	}
	if out.Result.Score != len(module.Questions) {
		t.Fatalf("score = %d", out.Result.Score)
	}
	found := false
	for _, b := range out.NewBadges {
		if b.ID == catalog.BadgePerfectScore {
			found = true
		}
	}
	if !found {
		t.Fatalf("perfect score not awarded: %v", out.NewBadges)
	}
}

func TestCompleteQuizRemoteFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.session(t, "fallback@example.com")

	// Break the remote store by dropping a table it writes to.
	if err := f.repos.DB.Migrator().DropTable(&model.UserBadge{}); err != nil {
		t.Fatal(err)
	}

	st := f.provider.For(session, "")
	out, err := newQuizService().CompleteQuiz(ctx, st, catalog.ModuleNutrition, model.QuizResult{Score: 3, TotalQuestions: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !hasNotice(out.Notices, "Saved on this device") {
		t.Fatalf("expected fallback notice, got %#v", out.Notices)
	}
	if len(out.NewBadges) != 3 || out.Result.PointsEarned != 30 {
		t.Fatalf("outcome changed by the failure: %#v", out)
	}

	local, _ := f.provider.Local(store.ScopeFor(session, "")).LoadUser(ctx)
	if local.Points != 30 {
		t.Fatalf("local fallback not written: %#v", local)
	}
}

func TestChallengeLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newChallengeService()
	st := f.provider.For(nil, "device-1")

	out, err := svc.Start(ctx, st, "hydration-tracker")
	if err != nil {
		t.Fatal(err)
	}
	if out.Instance == nil || !hasNotice(out.Notices, "Challenge Started!") {
		t.Fatalf("start = %#v", out)
	}
	id := out.Instance.ID

	again, err := svc.Start(ctx, st, "hydration-tracker")
	if err != nil {
		t.Fatal(err)
	}
	if again.Instance != nil || !hasNotice(again.Notices, "Challenge Active") {
		t.Fatalf("duplicate start = %#v", again)
	}

	none, err := svc.Start(ctx, st, "no-such-challenge")
	if err != nil || none.Instance != nil || len(none.Notices) != 0 {
		t.Fatalf("unknown template = %#v, %v", none, err)
	}

	for i := 0; i < 7; i++ {
		if _, err := svc.Increment(ctx, st, id); err != nil {
			t.Fatal(err)
		}
	}
	last, err := svc.Increment(ctx, st, id)
	if err != nil {
		t.Fatal(err)
	}
	if !last.Instance.IsCompleted || last.PointsAwarded != 30 || !hasNotice(last.Notices, "Challenge Completed! 🎉") {
		t.Fatalf("completion = %#v", last)
	}

	// Completed instances are frozen and award nothing more.
	extra, err := svc.Increment(ctx, st, id)
	if err != nil {
		t.Fatal(err)
	}
	if extra.PointsAwarded != 0 {
		t.Fatalf("points awarded twice")
	}

	user, _ := st.LoadUser(ctx)
	if user.Points != 30 {
		t.Fatalf("user points = %d, want 30", user.Points)
	}

	ov, err := svc.Overview(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	if len(ov.Today) != 1 || len(ov.Completed) != 1 || ov.TotalPoints != 30 {
		t.Fatalf("overview = %#v", ov)
	}
	if len(ov.Available) != len(catalog.Challenges())-1 {
		t.Fatalf("available = %d", len(ov.Available))
	}
}

func TestChallengeUpdateUnknownInstance(t *testing.T) {
	f := newFixture(t)
	out, err := newChallengeService().UpdateProgress(context.Background(), f.provider.For(nil, ""), "nope", model.SimpleProgress{Completed: true})
	if err != nil || out.Instance != nil {
		t.Fatalf("expected no-op, got %#v %v", out, err)
	}
}

func TestChallengeTimerStopPersistsSeconds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newChallengeService()
	st := f.provider.For(nil, "")

	clock := fixedNow
	svc.Timers.SetClock(func() time.Time { return clock })

	started, _ := svc.Start(ctx, st, "breathing-exercise")
	id := started.Instance.ID
	if _, err := svc.StartTimer(ctx, st, id); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StartTimer(ctx, st, id); !errors.Is(err, challenge.ErrTimerRunning) {
		t.Fatalf("expected ErrTimerRunning, got %v", err)
	}

	svc.Timers.SetClock(func() time.Time { return clock.Add(120 * time.Second) })
	out, err := svc.StopTimer(ctx, st, id)
	if err != nil {
		t.Fatal(err)
	}
	tp := out.Instance.Progress.(model.TimerProgress)
	if tp.Seconds != 120 || tp.Target != 300 || out.Instance.IsCompleted {
		t.Fatalf("after stop: %#v", out.Instance)
	}

	list, _ := st.LoadChallenges(ctx)
	if list[0].Progress.(model.TimerProgress).Seconds != 120 {
		t.Fatalf("seconds not persisted")
	}
}

func TestChallengeTimerCompletesAtTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newChallengeService()
	st := f.provider.For(nil, "")

	clock := fixedNow
	svc.Timers.SetClock(func() time.Time { return clock })

	started, _ := svc.Start(ctx, st, "breathing-exercise")
	id := started.Instance.ID
	if _, err := svc.StartTimer(ctx, st, id); err != nil {
		t.Fatal(err)
	}
	svc.Timers.SetClock(func() time.Time { return clock.Add(300 * time.Second) })

	// Points are credited after the instance is saved, so wait for both.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		user, _ := st.LoadUser(ctx)
		if user.Points == 20 {
			list, _ := st.LoadChallenges(ctx)
			if !list[0].IsCompleted || list[0].Progress.(model.TimerProgress).Seconds != 300 {
				t.Fatalf("flushed %#v", list[0])
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timer never completed the challenge")
}

func TestChallengeTimerCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newChallengeService()
	st := f.provider.For(nil, "")

	started, _ := svc.Start(ctx, st, "digital-detox")
	id := started.Instance.ID
	if _, err := svc.StartTimer(ctx, st, id); err != nil {
		t.Fatal(err)
	}
	ok, err := svc.CancelTimer(ctx, st, id)
	if err != nil || !ok {
		t.Fatalf("cancel = %v %v", ok, err)
	}
	if _, running := svc.TimerStatus(id); running {
		t.Fatalf("timer still running")
	}

	// Another learner can't touch the instance.
	ok, _ = svc.CancelTimer(ctx, f.provider.For(nil, "someone-else"), id)
	if ok {
		t.Fatalf("cancelled a timer from another scope")
	}
}

func TestTimerOnNonTimerChallenge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newChallengeService()
	st := f.provider.For(nil, "")
	started, _ := svc.Start(ctx, st, "swap-snack")
	if _, err := svc.StartTimer(ctx, st, started.Instance.ID); !errors.Is(err, challenge.ErrNotTimer) {
		t.Fatalf("expected ErrNotTimer, got %v", err)
	}
}

func TestResetProgressArchives(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	archiver := &memoryArchiver{snapshots: map[string]*ResetSnapshot{}}
	svc := NewProgressService(f.provider, archiver)
	svc.Now = func() time.Time { return fixedNow }
	st := f.provider.For(nil, "device-9")

	if _, err := newQuizService().CompleteQuiz(ctx, st, catalog.ModuleNutrition, model.QuizResult{Score: 3, TotalQuestions: 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := newChallengeService().Start(ctx, st, "swap-snack"); err != nil {
		t.Fatal(err)
	}

	out, err := svc.ResetProgress(ctx, st, "device-9")
	if err != nil {
		t.Fatal(err)
	}
	if !out.User.IsEmpty() {
		t.Fatalf("returned user not reset")
	}
	snap, ok := archiver.snapshots[out.ArchiveKey]
	if !ok || !strings.HasPrefix(out.ArchiveKey, "resets/device-9/") {
		t.Fatalf("archive key = %q", out.ArchiveKey)
	}
	if snap.User.Points != 30 || len(snap.Challenges) != 1 {
		t.Fatalf("snapshot = %#v", snap)
	}

	view, err := svc.GetProgress(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	if view.ProgressPercentage != 0 || !view.User.IsEmpty() || view.Mode != store.ModeLocal {
		t.Fatalf("view = %#v", view)
	}

	// Challenge history survives a reset.
	list, _ := st.LoadChallenges(ctx)
	if len(list) != 1 {
		t.Fatalf("challenges = %d, want 1", len(list))
	}
}

func TestResetProgressArchiveFailureStillResets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewProgressService(f.provider, failingArchiver{})
	st := f.provider.For(nil, "")
	_, _ = newQuizService().CompleteQuiz(ctx, st, catalog.ModuleNutrition, model.QuizResult{Score: 3, TotalQuestions: 3})

	out, err := svc.ResetProgress(ctx, st, store.DemoScope)
	if err != nil {
		t.Fatal(err)
	}
	if out.ArchiveKey != "" {
		t.Fatalf("archive key set after failure")
	}
	user, _ := st.LoadUser(ctx)
	if !user.IsEmpty() {
		t.Fatalf("reset skipped")
	}
}

func TestGetProgressPercentage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.provider.For(nil, "")
	q := newQuizService()
	_, _ = q.CompleteQuiz(ctx, st, catalog.ModuleNutrition, model.QuizResult{Score: 2, TotalQuestions: 3})
	_, _ = q.CompleteQuiz(ctx, st, catalog.ModuleHealthyHabits, model.QuizResult{Score: 2, TotalQuestions: 2})

	view, err := NewProgressService(f.provider, nil).GetProgress(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	if view.ProgressPercentage != 40 || view.TotalModules != 5 {
		t.Fatalf("view = %#v", view)
	}
}

func TestImportLocalProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewProgressService(f.provider, nil)

	demo := f.provider.For(nil, "phone")
	_, _ = newQuizService().CompleteQuiz(ctx, demo, catalog.ModuleNutrition, model.QuizResult{Score: 2, TotalQuestions: 3})
	_, _ = newChallengeService().Start(ctx, demo, "morning-water")

	if _, err := svc.ImportLocalProgress(ctx, nil, "phone"); !errors.Is(err, util.ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}

	session := f.session(t, "import@example.com")
	out, err := svc.ImportLocalProgress(ctx, session, "phone")
	if err != nil {
		t.Fatal(err)
	}
	if out.User.Points != 20 || len(out.User.Badges) != 2 || out.ImportedChallenges != 1 {
		t.Fatalf("import = %#v", out)
	}

	if _, err := svc.ImportLocalProgress(ctx, session, "phone"); !errors.Is(err, util.ErrRemoteNotEmpty) {
		t.Fatalf("second import: expected ErrRemoteNotEmpty, got %v", err)
	}
}

func TestUpdateProgressJSON(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newChallengeService()
	st := f.provider.For(nil, "")

	started, _ := svc.Start(ctx, st, "veggie-boost")
	id := started.Instance.ID

	out, err := svc.UpdateProgressJSON(ctx, st, id, []byte(`{"count":2,"target":99}`))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Instance.IsCompleted || out.PointsAwarded != 25 {
		t.Fatalf("outcome = %#v", out)
	}

	if _, err := svc.UpdateProgressJSON(ctx, st, id, []byte(`{"count":"many"}`)); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("malformed payload: %v", err)
	}
}

func TestCompleteQuizWithUnreachableStorage(t *testing.T) {
	ctx := context.Background()
	st := store.NewLocalStore(downKV{}, "device-1")

	out, err := newQuizService().CompleteQuiz(ctx, st, catalog.ModuleNutrition, gamification.NewQuizResult(2, 3))
	if err != nil || out == nil {
		t.Fatalf("quiz must still be graded: %v %v", out, err)
	}
	if !out.Result.Passed || out.Result.PointsEarned != 20 {
		t.Fatalf("result = %#v", out.Result)
	}
	found := false
	for _, b := range out.NewBadges {
		if b.ID == catalog.BadgeNutritionExpert {
			found = true
		}
	}
	if !found {
		t.Fatalf("badges = %#v", out.NewBadges)
	}
	if out.User == nil || out.User.Points != 20 {
		t.Fatalf("user = %#v", out.User)
	}
	if !hasDestructive(out.Notices) || !hasNotice(out.Notices, "Module Completed! 🎉") {
		t.Fatalf("notices = %#v", out.Notices)
	}
}

func TestStartChallengeWithUnreachableStorage(t *testing.T) {
	st := store.NewLocalStore(downKV{}, "device-1")
	out, err := newChallengeService().Start(context.Background(), st, "morning-water")
	if err != nil {
		t.Fatal(err)
	}
	if out.Instance == nil || out.Instance.ChallengeID != "morning-water" {
		t.Fatalf("instance = %#v", out.Instance)
	}
	if !hasDestructive(out.Notices) {
		t.Fatalf("notices = %#v", out.Notices)
	}
}

func TestGetProgressWithUnreachableStorage(t *testing.T) {
	st := store.NewLocalStore(downKV{}, "")
	view, err := NewProgressService(nil, nil).GetProgress(context.Background(), st)
	if err != nil {
		t.Fatal(err)
	}
	if view.User == nil || !view.User.IsEmpty() || view.ProgressPercentage != 0 {
		t.Fatalf("view = %#v", view)
	}
	if !hasDestructive(view.Notices) {
		t.Fatalf("notices = %#v", view.Notices)
	}
}

// noHistoryStore fails only when challenge history is read.
type noHistoryStore struct {
	store.ProgressStore
}

func (noHistoryStore) LoadChallenges(context.Context) ([]*model.UserChallenge, error) {
	return nil, errKVDown
}

func TestResetProgressLogsMissingHistory(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	f := newFixture(t)
	ctx := context.Background()
	st := noHistoryStore{f.provider.For(nil, "device-1")}
	_, _ = newQuizService().CompleteQuiz(ctx, st, catalog.ModuleNutrition, model.QuizResult{Score: 3, TotalQuestions: 3})

	archiver := &memoryArchiver{snapshots: map[string]*ResetSnapshot{}}
	out, err := NewProgressService(f.provider, archiver).ResetProgress(ctx, st, "device-1")
	if err != nil {
		t.Fatal(err)
	}
	if !out.User.IsEmpty() || out.ArchiveKey == "" {
		t.Fatalf("reset = %#v", out)
	}
	if snap := archiver.snapshots[out.ArchiveKey]; snap == nil || snap.User.Points != 30 || len(snap.Challenges) != 0 {
		t.Fatalf("snapshot = %#v", snap)
	}
	if logs.FilterMessage("reset snapshot without challenge history").Len() != 1 {
		t.Fatalf("warn not logged: %v", logs.All())
	}
}
