package inspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/dime/di"
	"github.com/kbukum/dime/provider"
	"github.com/kbukum/dime/testutil"
	"github.com/kbukum/dime/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rr.Body.String(), err)
	}
	return body
}

func mounted(t *testing.T) *di.Dime {
	return testutil.NewDime(t, testutil.MustPackage(t, "Core",
		provider.UseValue(token.String("port"), 8080),
		provider.UseFactory(token.String("now"), func() any { return 1 }),
	))
}

func TestHealthMounted(t *testing.T) {
	rr := do(t, NewRouter(mounted(t)), "/dime/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := decode(t, rr)
	if body["status"] != "healthy" || body["state"] != "mounted" {
		t.Errorf("unexpected body %v", body)
	}
	if body["providers"] != float64(2) {
		t.Errorf("expected 2 providers, got %v", body["providers"])
	}
}

func TestHealthUnmounted(t *testing.T) {
	d := testutil.T(t).New()
	rr := do(t, NewRouter(d), "/dime/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if decode(t, rr)["status"] != "unhealthy" {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
}

func TestTokens(t *testing.T) {
	rr := do(t, NewRouter(mounted(t)), "/dime/tokens")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Data []di.Binding `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data) != 2 || body.Data[0].Token != "port" || !body.Data[1].Producer {
		t.Errorf("unexpected bindings %+v", body.Data)
	}
}

func TestTokenFound(t *testing.T) {
	rr := do(t, NewRouter(mounted(t)), "/dime/tokens/Port")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	data := decode(t, rr)["data"].(map[string]any)
	if data["token"] != "port" || data["type"] != "int" {
		t.Errorf("unexpected binding %v", data)
	}
}

func TestTokenMissing(t *testing.T) {
	rr := do(t, NewRouter(mounted(t)), "/dime/tokens/ghost")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	errBody := decode(t, rr)["error"].(map[string]any)
	if errBody["code"] != "INJECTION_ERROR" {
		t.Errorf("unexpected code %v", errBody["code"])
	}
	if !strings.Contains(errBody["message"].(string), "`ghost`") {
		t.Errorf("unexpected message %v", errBody["message"])
	}
}

func TestVersion(t *testing.T) {
	rr := do(t, NewRouter(mounted(t)), "/dime/version")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if v, _ := decode(t, rr)["version"].(string); v == "" {
		t.Error("expected a version")
	}
}

func TestRegisterOnCustomGroup(t *testing.T) {
	engine := gin.New()
	Register(engine.Group("/debug"), mounted(t))
	if rr := do(t, engine, "/debug/tokens"); rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	logs := &testutil.LogBuffer{}
	d := testutil.T(t).WithOptions(di.WithLogger(logs.Logger("debug"))).New()

	do(t, NewRouter(d), "/dime/tokens/ghost")
	out := logs.String()
	if !strings.Contains(out, "Request rejected") || !strings.Contains(out, `"operation":"inspect"`) {
		t.Errorf("expected a warn log for the 404, got %q", out)
	}
}
