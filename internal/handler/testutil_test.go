package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"Lee_Groups/internal/handler"
	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/model"
	"Lee_Groups/internal/repository/mysql"
	"Lee_Groups/internal/router"
	"Lee_Groups/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

var testAdmins = []string{"admin@test.com"}

type testEnv struct {
	r  *gin.Engine
	db *gorm.DB
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Member{},
		&model.Conversation{},
		&model.GroupEvent{},
	)
	if err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	userRepo := &mysql.UserRepository{DB: db}
	groupRepo := &mysql.GroupRepository{DB: db}
	memberRepo := &mysql.MemberRepository{DB: db}
	convRepo := &mysql.ConversationRepository{DB: db}

	secret := []byte(testSecret)
	// 测试不接 redis/kafka/SMTP：会话只靠 JWT，事件留在 outbox 表
	userSvc := service.NewUserService(userRepo, nil, secret, testAdmins, nil)
	groupSvc := service.NewGroupService(groupRepo, memberRepo, userRepo, nil)
	convSvc := service.NewConversationService(convRepo, nil)

	r := router.InitRouter(router.Handlers{
		Auth:         middleware.NewAuth(secret, nil, userRepo),
		User:         handler.NewUserHandler(userSvc, groupSvc),
		Group:        handler.NewGroupHandler(groupSvc, convSvc, userSvc),
		Conversation: handler.NewConversationHandler(convSvc, groupSvc),
	})

	return &testEnv{r: r, db: db}
}

func performForm(t *testing.T, env *testEnv, method, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}

	w := httptest.NewRecorder()
	env.r.ServeHTTP(w, req)
	return w
}

func performGet(t *testing.T, env *testEnv, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	return performForm(t, env, http.MethodGet, path, nil, cookie)
}

// sessionCookie 从响应里取会话 cookie 值
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := http.Response{Header: w.Header()}
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	return ""
}

func registerUser(t *testing.T, env *testEnv, first, last, email, password string) (*model.User, string) {
	t.Helper()

	w := performForm(t, env, http.MethodPost, "/register", url.Values{
		"first":    {first},
		"last":     {last},
		"email":    {email},
		"password": {password},
		"confirm":  {password},
	}, "")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register %s: expected 303, got %d", email, w.Code)
	}

	cookie := sessionCookie(t, w)
	if cookie == "" {
		t.Fatalf("register %s: no session cookie set", email)
	}

	var user model.User
	if err := env.db.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("register %s: user not persisted: %v", email, err)
	}
	return &user, cookie
}

func createGroup(t *testing.T, env *testEnv, cookie, title string) *model.Group {
	t.Helper()

	w := performForm(t, env, http.MethodPost, "/add-groups", url.Values{"title": {title}}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("add-groups %q: expected 303, got %d", title, w.Code)
	}

	publicID := strings.TrimPrefix(w.Header().Get("Location"), "/group?group=")
	var group model.Group
	if err := env.db.Where("public_id = ?", publicID).First(&group).Error; err != nil {
		t.Fatalf("add-groups %q: group not persisted: %v", title, err)
	}
	return &group
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, code int, location string) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("expected status %d, got %d", code, w.Code)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
