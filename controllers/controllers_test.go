package controllers

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elyashium/sylvan-web/auth"
	"github.com/elyashium/sylvan-web/middlewares"
	"github.com/elyashium/sylvan-web/models"
	"github.com/elyashium/sylvan-web/store"
	"github.com/elyashium/sylvan-web/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type testEnv struct {
	router *gin.Engine
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	data := store.NewFixture()
	identity := auth.NewService(auth.NewMemoryUsers(), auth.Config{Secret: []byte("test"), SessionTTL: time.Hour}, logger)

	r := gin.New()
	Register(r, NewHandler(data, identity, identity, logger), NewFeed(data, nil, logger), middlewares.AuthMiddleware(identity, logger))

	env := &testEnv{router: r}
	w := env.do(t, http.MethodPost, "/auth/signup", `{"email":"tester@example.com","password":"hunter22"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status %d: %s", w.Code, w.Body)
	}
	var resp struct{ Token string }
	decode(t, w, &resp)
	env.token = resp.Token
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body, err)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""
	if w := env.do(t, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("status %d", w.Code)
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""
	if w := env.do(t, http.MethodGet, "/readings", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d", w.Code)
	}
	env.token = "not-a-token"
	if w := env.do(t, http.MethodGet, "/readings", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d", w.Code)
	}
}

type cardResp struct {
	Reading struct {
		ID string `json:"_id"`
	} `json:"reading"`
	Severity models.Severity `json:"severity"`
	Label    string          `json:"label"`
}

func TestListReadings(t *testing.T) {
	env := newTestEnv(t)

	var all struct {
		Readings []cardResp
		Count    int
	}
	decode(t, env.do(t, http.MethodGet, "/readings", ""), &all)
	if all.Count != 6 {
		t.Fatalf("count = %d, want 6", all.Count)
	}

	var warn struct{ Readings []cardResp }
	decode(t, env.do(t, http.MethodGet, "/readings?status=warning", ""), &warn)
	if len(warn.Readings) != 3 {
		t.Fatalf("warning readings = %d, want 3", len(warn.Readings))
	}
	for _, c := range warn.Readings {
		if c.Severity != models.SeverityWarning || c.Label != "Attention Needed" {
			t.Errorf("unexpected card %+v", c)
		}
	}

	var search struct{ Readings []cardResp }
	decode(t, env.do(t, http.MethodGet, "/readings?search=28.7139", ""), &search)
	if len(search.Readings) != 1 || search.Readings[0].Reading.ID != "682c19fd2249cda57539e564" {
		t.Errorf("search results %+v", search.Readings)
	}

	if w := env.do(t, http.MethodGet, "/readings?status=bogus", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad status filter: %d", w.Code)
	}
}

func TestCardAndDetailAgree(t *testing.T) {
	env := newTestEnv(t)

	var list struct{ Readings []cardResp }
	decode(t, env.do(t, http.MethodGet, "/readings", ""), &list)
	for _, c := range list.Readings {
		var detail cardResp
		w := env.do(t, http.MethodGet, "/readings/"+c.Reading.ID, "")
		if w.Code != http.StatusOK {
			t.Fatalf("detail %s: status %d", c.Reading.ID, w.Code)
		}
		decode(t, w, &detail)
		if detail.Severity != c.Severity {
			t.Errorf("%s: card says %s, detail says %s", c.Reading.ID, c.Severity, detail.Severity)
		}
	}
}

func TestReadingNotFound(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/readings/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["error"] != "Sensor not found" || body["back"] != "/dashboard" {
		t.Errorf("body %v", body)
	}
}

func TestReadingDetail(t *testing.T) {
	env := newTestEnv(t)
	var d struct {
		Severity   models.Severity
		Violations []models.Violation
		RangeNotes map[string]string
		Location   *models.Coordinate
	}
	decode(t, env.do(t, http.MethodGet, "/readings/682c19fd2249cda57539e564", ""), &d)

	if d.Severity != models.SeverityWarning {
		t.Errorf("severity %s", d.Severity)
	}
	if len(d.Violations) != 2 {
		t.Errorf("violations %+v, want temperature and soil moisture", d.Violations)
	}
	if d.RangeNotes["temperature"] != "Above normal range" || d.RangeNotes["soilMoisture"] != "Below optimal level" {
		t.Errorf("range notes %v", d.RangeNotes)
	}
	if d.Location == nil || d.Location.Lat != 28.7139 {
		t.Errorf("location %+v", d.Location)
	}
}

func TestReadingTweet(t *testing.T) {
	env := newTestEnv(t)
	var tw models.PlantTweet
	decode(t, env.do(t, http.MethodGet, "/readings/682c205a231b049790f55e96/tweet?plant=Basil", ""), &tw)
	if tw.Emotion != models.EmotionAnxious || tw.PlantName != "Basil" {
		t.Errorf("tweet %+v", tw)
	}
}

func TestExportReadingsCSV(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/readings/export.csv", "")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("status %d, content type %q", w.Code, w.Header().Get("Content-Type"))
	}
	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 7 || rows[0][0] != "id" {
		t.Fatalf("got %d rows, header %v", len(rows), rows[0])
	}
	if last := rows[1][len(rows[1])-1]; last != "normal" {
		t.Errorf("first reading severity column = %q", last)
	}
}

func TestSensorMap(t *testing.T) {
	env := newTestEnv(t)
	var v struct {
		Center  models.Coordinate
		Zoom    int
		Bounds  *utils.Bounds
		Markers []struct {
			ID    string
			Color string
			Link  string
		}
	}
	decode(t, env.do(t, http.MethodGet, "/map/sensors", ""), &v)

	if len(v.Markers) != 6 || v.Zoom != utils.SensorMapZoom || v.Bounds == nil {
		t.Fatalf("map view %+v", v)
	}
	if v.Center.Lat < 28.56 || v.Center.Lat > 28.57 {
		t.Errorf("centre %+v, want the mean of the readings", v.Center)
	}
	if !strings.HasPrefix(v.Markers[0].Link, "/sensor/") || v.Markers[0].Color == "" {
		t.Errorf("marker %+v", v.Markers[0])
	}
}

func TestPlants(t *testing.T) {
	env := newTestEnv(t)

	var list struct{ Count int }
	decode(t, env.do(t, http.MethodGet, "/plants?status=healthy", ""), &list)
	if list.Count != 3 {
		t.Errorf("healthy plants = %d, want 3", list.Count)
	}
	if w := env.do(t, http.MethodGet, "/plants?status=dead", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad filter status %d", w.Code)
	}

	var detail struct {
		Plant    models.PlantDetails
		Severity models.Severity
	}
	decode(t, env.do(t, http.MethodGet, "/plants/1", ""), &detail)
	if detail.Plant.Name != "Monstera Deliciosa" || detail.Severity == "" {
		t.Errorf("plant detail %+v", detail)
	}
	if w := env.do(t, http.MethodGet, "/plants/6", ""); w.Code != http.StatusNotFound {
		t.Errorf("plant without details: status %d", w.Code)
	}

	var mapView struct {
		Center  models.Coordinate
		Markers []struct{ ID string }
	}
	decode(t, env.do(t, http.MethodGet, "/map/plants?status=warning", ""), &mapView)
	if mapView.Center != utils.PlantMapCenter || len(mapView.Markers) != 2 {
		t.Errorf("plant map %+v", mapView)
	}
}

func TestPlantEdits(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/plants", `{"name":"Fern","lat":37.77,"lng":-122.41,"status":"healthy","type":"Indoor"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add status %d: %s", w.Code, w.Body)
	}
	var added models.PlantLocation
	decode(t, w, &added)
	if added.ID != "7" {
		t.Errorf("added id %q", added.ID)
	}
	if w := env.do(t, http.MethodPost, "/plants", `{"name":"Fern","status":"wilted"}`); w.Code != http.StatusBadRequest {
		t.Errorf("invalid status add: %d", w.Code)
	}

	w = env.do(t, http.MethodPatch, "/plants/3/status", `{"status":"healthy"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status %d", w.Code)
	}
	if w := env.do(t, http.MethodPatch, "/plants/99/status", `{"status":"healthy"}`); w.Code != http.StatusNotFound {
		t.Errorf("unknown plant update: %d", w.Code)
	}
}

func TestTweetsAndAnalytics(t *testing.T) {
	env := newTestEnv(t)

	var tweets struct{ Count int }
	decode(t, env.do(t, http.MethodGet, "/tweets?emotion=anxious", ""), &tweets)
	if tweets.Count != 2 {
		t.Errorf("anxious tweets = %d, want 2", tweets.Count)
	}

	var a utils.Analytics
	decode(t, env.do(t, http.MethodGet, "/analytics", ""), &a)
	if a.Selected == nil || a.Selected.PlantCount != 4 || len(a.Locations) != 4 {
		t.Errorf("analytics selected %+v, %d locations", a.Selected, len(a.Locations))
	}
	if len(a.Series) != 6 {
		t.Errorf("series length %d", len(a.Series))
	}

	decode(t, env.do(t, http.MethodGet, "/analytics?location=Office", ""), &a)
	if a.Selected == nil || a.Selected.Name != "Office" {
		t.Errorf("office selection %+v", a.Selected)
	}
	if w := env.do(t, http.MethodGet, "/analytics?location=Moon", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown location status %d", w.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.token

	env.token = ""
	if w := env.do(t, http.MethodPost, "/auth/signup", `{"email":"tester@example.com","password":"hunter22"}`); w.Code != http.StatusConflict {
		t.Errorf("duplicate signup status %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/auth/signup", `{"email":"short@example.com","password":"123"}`); w.Code != http.StatusBadRequest {
		t.Errorf("weak password status %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/auth/login", `{"email":"tester@example.com","password":"wrong!"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/auth/federated", `{"provider":"google","credential":"x"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unconfigured provider status %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/auth/password-reset", `{"email":"nobody@example.com"}`); w.Code != http.StatusAccepted {
		t.Errorf("reset status %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/auth/password-reset/confirm", `{"token":"nope","password":"hunter33"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad reset token status %d", w.Code)
	}

	env.token = token
	var sess struct{ User models.User }
	decode(t, env.do(t, http.MethodGet, "/auth/session", ""), &sess)
	if sess.User.Email != "tester@example.com" {
		t.Errorf("session user %+v", sess.User)
	}

	if w := env.do(t, http.MethodPost, "/auth/logout", ""); w.Code != http.StatusOK {
		t.Fatalf("logout status %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/auth/session", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("session after logout status %d", w.Code)
	}
}

func TestUserTypePreference(t *testing.T) {
	env := newTestEnv(t)

	var got struct{ UserType *models.UserType }
	decode(t, env.do(t, http.MethodGet, "/preferences/user-type", ""), &got)
	if got.UserType != nil {
		t.Fatalf("initial user type %v", *got.UserType)
	}

	if w := env.do(t, http.MethodPut, "/preferences/user-type", `{"userType":"industrial"}`); w.Code != http.StatusBadRequest {
		t.Errorf("invalid user type status %d", w.Code)
	}
	if w := env.do(t, http.MethodPut, "/preferences/user-type", `{"userType":"household"}`); w.Code != http.StatusOK {
		t.Fatalf("set user type status %d: %s", w.Code, w.Body)
	}
	decode(t, env.do(t, http.MethodGet, "/preferences/user-type", ""), &got)
	if got.UserType == nil || *got.UserType != models.UserTypeHousehold {
		t.Errorf("user type %v", got.UserType)
	}
}

func TestWebSocketSnapshot(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + env.token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var snap Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Type != "snapshot" || len(snap.Readings) != 6 {
		t.Fatalf("snapshot type %q with %d readings", snap.Type, len(snap.Readings))
	}
	if snap.Counts[models.SeverityNormal] != 3 || snap.Counts[models.SeverityWarning] != 3 {
		t.Errorf("counts %v", snap.Counts)
	}
}
