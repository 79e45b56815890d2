package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/challenge"
	"health_edu_backend/internal/config"
	"health_edu_backend/internal/middleware"
	"health_edu_backend/internal/service"
	"health_edu_backend/internal/store"
	"health_edu_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

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

// newTestRouter wires the handlers the same way the application router does.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)
	kv := store.NewMemoryKV()
	repos := store.NewRepositories(db)
	provider := store.NewProvider(kv, repos)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", ExpireTime: time.Hour}}

	timers := challenge.NewTimerRegistry(time.Millisecond)
	t.Cleanup(timers.Close)

	authService := service.NewAuthService(repos.Profile, kv, cfg)
	authCtrl := NewAuthController(authService)
	catalogCtrl := NewCatalogController()
	quizCtrl := NewQuizController(service.NewQuizService(), provider)
	progressCtrl := NewProgressController(service.NewProgressService(provider, nil), provider)
	challengeCtrl := NewChallengeController(service.NewChallengeService(challenge.NewRuntime(time.UTC), timers), provider)
	healthCtrl := NewHealthController(db, kv)

	r := gin.New()
	r.GET("/health", healthCtrl.HealthCheck)

	api := r.Group("/api", middleware.TryAuth(authService))
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.POST("/auth/logout", middleware.RequireAuth(), authCtrl.Logout)
	api.GET("/auth/me", middleware.RequireAuth(), authCtrl.Me)
	api.PUT("/auth/me", middleware.RequireAuth(), authCtrl.UpdateMe)

	api.GET("/modules", catalogCtrl.ListModules)
	api.GET("/modules/:id", catalogCtrl.GetModule)
	api.POST("/modules/:id/quiz", quizCtrl.SubmitQuiz)
	api.GET("/badges", catalogCtrl.ListBadges)

	api.GET("/progress", progressCtrl.GetProgress)
	api.POST("/progress/reset", progressCtrl.ResetProgress)
	api.POST("/progress/import", middleware.RequireAuth(), progressCtrl.ImportProgress)

	api.GET("/challenges", catalogCtrl.ListChallenges)
	api.GET("/challenges/mine", challengeCtrl.GetMyChallenges)
	api.POST("/challenges/:id/start", challengeCtrl.StartChallenge)
	api.PUT("/user-challenges/:id/progress", challengeCtrl.UpdateProgress)
	api.POST("/user-challenges/:id/increment", challengeCtrl.IncrementProgress)
	api.GET("/user-challenges/:id/timer", challengeCtrl.GetTimer)
	api.POST("/user-challenges/:id/timer/start", challengeCtrl.StartTimer)
	api.POST("/user-challenges/:id/timer/stop", challengeCtrl.StopTimer)
	api.POST("/user-challenges/:id/timer/cancel", challengeCtrl.CancelTimer)
	return r
}

type request struct {
	method, path string
	body         interface{}
	device       string
	token        string
}

func do(t *testing.T, r *gin.Engine, req request) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if req.body != nil {
		if err := json.NewEncoder(&buf).Encode(req.body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	httpReq := httptest.NewRequest(req.method, req.path, &buf)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.device != "" {
		httpReq.Header.Set("X-Device-ID", req.device)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httpReq)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", req.method, req.path, w.Body.String(), err)
	}
	return w.Code, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode data %s: %v", raw, err)
	}
}

func signIn(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	code, _ := do(t, r, request{method: http.MethodPost, path: "/api/auth/register", body: gin.H{"email": email, "password": "correct-horse"}})
	if code != http.StatusCreated {
		t.Fatalf("register status = %d", code)
	}
	code, env := do(t, r, request{method: http.MethodPost, path: "/api/auth/login", body: gin.H{"email": email, "password": "correct-horse"}})
	if code != http.StatusOK {
		t.Fatalf("login status = %d", code)
	}
	var res struct {
		Token string `json:"token"`
	}
	decode(t, env.Data, &res)
	return res.Token
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)
	code, env := do(t, r, request{method: http.MethodGet, path: "/health"})
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(string(env.Data), `"local_store":"up"`) {
		t.Fatalf("data = %s", env.Data)
	}
}

func TestModuleDetailHidesAnswers(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, request{method: http.MethodGet, path: "/api/modules"})
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var list []ModuleSummary
	decode(t, env.Data, &list)
	if len(list) != catalog.ModuleCount() {
		t.Fatalf("modules = %d, want %d", len(list), catalog.ModuleCount())
	}

	_, env = do(t, r, request{method: http.MethodGet, path: "/api/modules/" + catalog.ModuleNutrition})
	if strings.Contains(string(env.Data), "correctAnswer") {
		t.Fatalf("module detail leaks answers: %s", env.Data)
	}
	var detail ModuleDetail
	decode(t, env.Data, &detail)
	if len(detail.Questions) == 0 || detail.Content == "" {
		t.Fatalf("detail = %+v", detail)
	}

	code, env = do(t, r, request{method: http.MethodGet, path: "/api/modules/astrology"})
	if code != http.StatusOK || len(env.Data) != 0 {
		t.Fatalf("unknown module: status=%d data=%s", code, env.Data)
	}
}

func TestSubmitQuizInDemoMode(t *testing.T) {
	r := newTestRouter(t)
	answers := gin.H{"answers": gin.H{"q1": 2, "q2": 2, "q3": 2}}

	code, env := do(t, r, request{method: http.MethodPost, path: "/api/modules/" + catalog.ModuleNutrition + "/quiz", body: answers, device: "tablet-1"})
	if code != http.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Message)
	}
	var res struct {
		Result struct {
			Score          int `json:"score"`
			TotalQuestions int `json:"totalQuestions"`
		} `json:"result"`
		NewBadges []struct {
			ID string `json:"id"`
		} `json:"newBadges"`
		Review []QuestionReview `json:"review"`
	}
	decode(t, env.Data, &res)
	if res.Result.Score != 3 || res.Result.TotalQuestions != 3 {
		t.Fatalf("result = %+v", res.Result)
	}
	if len(res.Review) != 3 || !res.Review[0].Correct {
		t.Fatalf("review = %+v", res.Review)
	}
	if len(res.NewBadges) == 0 {
		t.Fatal("expected badges for a first perfect quiz")
	}

	_, env = do(t, r, request{method: http.MethodGet, path: "/api/progress", device: "tablet-1"})
	var view struct {
		User struct {
			Points int `json:"points"`
		} `json:"user"`
		ProgressPercentage int    `json:"progressPercentage"`
		Mode               string `json:"mode"`
	}
	decode(t, env.Data, &view)
	if view.User.Points != 30 || view.ProgressPercentage != 20 {
		t.Fatalf("progress = %+v", view)
	}

	// another device starts from scratch
	_, env = do(t, r, request{method: http.MethodGet, path: "/api/progress", device: "phone-2"})
	decode(t, env.Data, &view)
	if view.User.Points != 0 {
		t.Fatalf("other device points = %d", view.User.Points)
	}
}

func TestSubmitQuizUnknownModule(t *testing.T) {
	r := newTestRouter(t)
	code, env := do(t, r, request{method: http.MethodPost, path: "/api/modules/astrology/quiz", body: gin.H{"answers": gin.H{}}})
	if code != http.StatusOK || len(env.Data) != 0 {
		t.Fatalf("status=%d data=%s", code, env.Data)
	}
}

func TestResetProgress(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, request{method: http.MethodPost, path: "/api/modules/" + catalog.ModuleNutrition + "/quiz", body: gin.H{"answers": gin.H{"q1": 2}}, device: "d"})

	code, _ := do(t, r, request{method: http.MethodPost, path: "/api/progress/reset", device: "d"})
	if code != http.StatusOK {
		t.Fatalf("reset status = %d", code)
	}
	_, env := do(t, r, request{method: http.MethodGet, path: "/api/progress", device: "d"})
	var view struct {
		User struct {
			Points int `json:"points"`
		} `json:"user"`
	}
	decode(t, env.Data, &view)
	if view.User.Points != 0 {
		t.Fatalf("points after reset = %d", view.User.Points)
	}
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)
	token := signIn(t, r, "ada@example.com")

	code, env := do(t, r, request{method: http.MethodGet, path: "/api/auth/me", token: token})
	if code != http.StatusOK || !strings.Contains(string(env.Data), "ada@example.com") {
		t.Fatalf("me: status=%d data=%s", code, env.Data)
	}

	code, _ = do(t, r, request{method: http.MethodPost, path: "/api/auth/register", body: gin.H{"email": "ADA@example.com", "password": "correct-horse"}})
	if code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d", code)
	}

	code, _ = do(t, r, request{method: http.MethodPost, path: "/api/auth/login", body: gin.H{"email": "ada@example.com", "password": "wrong-horse"}})
	if code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", code)
	}

	code, _ = do(t, r, request{method: http.MethodPost, path: "/api/auth/logout", token: token})
	if code != http.StatusOK {
		t.Fatalf("logout status = %d", code)
	}
	code, _ = do(t, r, request{method: http.MethodGet, path: "/api/auth/me", token: token})
	if code != http.StatusUnauthorized {
		t.Fatalf("revoked token status = %d", code)
	}
}

func TestImportRequiresSession(t *testing.T) {
	r := newTestRouter(t)
	code, _ := do(t, r, request{method: http.MethodPost, path: "/api/progress/import", device: "d"})
	if code != http.StatusUnauthorized {
		t.Fatalf("status = %d", code)
	}
}

func TestImportLocalProgress(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, request{method: http.MethodPost, path: "/api/modules/" + catalog.ModuleNutrition + "/quiz", body: gin.H{"answers": gin.H{"q1": 2, "q2": 2, "q3": 2}}, device: "laptop"})
	token := signIn(t, r, "grace@example.com")

	code, env := do(t, r, request{method: http.MethodPost, path: "/api/progress/import", device: "laptop", token: token})
	if code != http.StatusOK {
		t.Fatalf("import status = %d (%s)", code, env.Message)
	}
	var out struct {
		User struct {
			Points int `json:"points"`
		} `json:"user"`
	}
	decode(t, env.Data, &out)
	if out.User.Points != 30 {
		t.Fatalf("imported points = %d", out.User.Points)
	}

	code, _ = do(t, r, request{method: http.MethodPost, path: "/api/progress/import", device: "laptop", token: token})
	if code != http.StatusConflict {
		t.Fatalf("second import status = %d", code)
	}
}

type outcome struct {
	Instance *struct {
		ID          string `json:"id"`
		IsCompleted bool   `json:"isCompleted"`
	} `json:"instance"`
	PointsAwarded int `json:"pointsAwarded"`
	Notices       []struct {
		Title string `json:"title"`
	} `json:"notices"`
}

func startChallenge(t *testing.T, r *gin.Engine, templateID, device string) string {
	t.Helper()
	code, env := do(t, r, request{method: http.MethodPost, path: "/api/challenges/" + templateID + "/start", device: device})
	if code != http.StatusOK {
		t.Fatalf("start status = %d", code)
	}
	var out outcome
	decode(t, env.Data, &out)
	if out.Instance == nil {
		t.Fatalf("start returned no instance: %s", env.Data)
	}
	return out.Instance.ID
}

func TestCounterChallengeOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	id := startChallenge(t, r, "stairs-challenge", "d")

	code, env := do(t, r, request{method: http.MethodPost, path: "/api/challenges/stairs-challenge/start", device: "d"})
	var dup outcome
	decode(t, env.Data, &dup)
	if code != http.StatusOK || dup.Instance != nil || len(dup.Notices) == 0 || dup.Notices[0].Title != "Challenge Active" {
		t.Fatalf("duplicate start: status=%d data=%s", code, env.Data)
	}

	var last outcome
	for i := 0; i < 3; i++ {
		code, env = do(t, r, request{method: http.MethodPost, path: "/api/user-challenges/" + id + "/increment", device: "d"})
		if code != http.StatusOK {
			t.Fatalf("increment status = %d", code)
		}
		decode(t, env.Data, &last)
	}
	if !last.Instance.IsCompleted || last.PointsAwarded != 20 {
		t.Fatalf("after three increments: %s", env.Data)
	}

	_, env = do(t, r, request{method: http.MethodGet, path: "/api/challenges/mine", device: "d"})
	var overview struct {
		TotalPoints int `json:"totalPoints"`
	}
	decode(t, env.Data, &overview)
	if overview.TotalPoints != 20 {
		t.Fatalf("total points = %d", overview.TotalPoints)
	}
}

func TestUpdateProgressValidation(t *testing.T) {
	r := newTestRouter(t)
	id := startChallenge(t, r, "balanced-plate", "d")

	code, _ := do(t, r, request{method: http.MethodPut, path: "/api/user-challenges/" + id + "/progress", body: gin.H{"progress": gin.H{"completed": "all"}}, device: "d"})
	if code != http.StatusBadRequest {
		t.Fatalf("malformed payload status = %d", code)
	}

	code, _ = do(t, r, request{method: http.MethodPut, path: "/api/user-challenges/" + id + "/progress", body: gin.H{}, device: "d"})
	if code != http.StatusBadRequest {
		t.Fatalf("missing payload status = %d", code)
	}

	code, _ = do(t, r, request{method: http.MethodPost, path: "/api/user-challenges/" + id + "/increment", device: "d"})
	if code != http.StatusBadRequest {
		t.Fatalf("increment on checklist status = %d", code)
	}

	code, env := do(t, r, request{method: http.MethodPut, path: "/api/user-challenges/unknown/progress", body: gin.H{"progress": gin.H{"count": 1}}, device: "d"})
	var out outcome
	decode(t, env.Data, &out)
	if code != http.StatusOK || out.Instance != nil {
		t.Fatalf("unknown instance: status=%d data=%s", code, env.Data)
	}
}

func TestTimerEndpoints(t *testing.T) {
	r := newTestRouter(t)
	id := startChallenge(t, r, "breathing-exercise", "d")

	code, _ := do(t, r, request{method: http.MethodPost, path: "/api/user-challenges/" + id + "/timer/start", device: "d"})
	if code != http.StatusOK {
		t.Fatalf("timer start status = %d", code)
	}
	code, _ = do(t, r, request{method: http.MethodPost, path: "/api/user-challenges/" + id + "/timer/start", device: "d"})
	if code != http.StatusConflict {
		t.Fatalf("second timer start status = %d", code)
	}

	_, env := do(t, r, request{method: http.MethodGet, path: "/api/user-challenges/" + id + "/timer"})
	var status TimerStatus
	decode(t, env.Data, &status)
	if !status.Running {
		t.Fatalf("status = %+v", status)
	}

	code, env = do(t, r, request{method: http.MethodPost, path: "/api/user-challenges/" + id + "/timer/cancel", device: "d"})
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"cancelled":true`) {
		t.Fatalf("cancel: status=%d data=%s", code, env.Data)
	}

	code, _ = do(t, r, request{method: http.MethodPost, path: "/api/user-challenges/" + id + "/timer/stop", device: "d"})
	if code != http.StatusNotFound {
		t.Fatalf("stop without timer status = %d", code)
	}

	stairs := startChallenge(t, r, "stairs-challenge", "d")
	code, _ = do(t, r, request{method: http.MethodPost, path: "/api/user-challenges/" + stairs + "/timer/start", device: "d"})
	if code != http.StatusBadRequest {
		t.Fatalf("timer on counter status = %d", code)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t)

	bad := []gin.H{
		{"email": "not-an-email", "password": "correct-horse"},
		{"email": "grace@example.com", "password": "short"},
		{"password": "correct-horse"},
	}
	for _, body := range bad {
		code, env := do(t, r, request{method: http.MethodPost, path: "/api/auth/register", body: body})
		if code != http.StatusBadRequest {
			t.Fatalf("register %v: status=%d msg=%s", body, code, env.Message)
		}
	}

	code, env := do(t, r, request{method: http.MethodPost, path: "/api/auth/register", body: gin.H{"email": " Grace@Example.com ", "password": "correct-horse"}})
	if code != http.StatusCreated || !strings.Contains(string(env.Data), `"grace@example.com"`) {
		t.Fatalf("padded email: status=%d data=%s", code, env.Data)
	}
}
