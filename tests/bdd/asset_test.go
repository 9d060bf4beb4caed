package bdd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"video_asset_service/pkg/logger"
	testtool "video_asset_service/pkg/test_tool"

	"github.com/cucumber/godog"
	"github.com/gofiber/fiber/v2"
)

func TestFeatures(t *testing.T) {
	logger.SetNewNop()

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Paths:  []string{"./featureFiles"}, // 指向 feature 檔相對路徑
			Format: "pretty",
			Output: os.Stdout,
		},
	}

	if suite.Run() != 0 {
		t.Fail()
	}
}

// 場景共用狀態
var (
	apiKey       string
	upstream     *httptest.Server
	upstreamHits int64
	app          *fiber.App
	lastResp     *http.Response
	lastBody     []byte
)

// InitializeScenario 註冊 Gherkin 與 Step Definition 的對應
func InitializeScenario(s *godog.ScenarioContext) {
	s.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		resetScenario()
		return ctx, nil
	})
	s.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if upstream != nil {
			upstream.Close()
			upstream = nil
		}
		return ctx, err
	})

	s.Step(`^the api key "([^"]*)" is required$`, theAPIKeyIsRequired)
	s.Step(`^I (GET|POST|DELETE) "([^"]*)"$`, iSendRequest)
	s.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	s.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	s.Step(`^the upstream should not be called$`, theUpstreamShouldNotBeCalled)
	s.Step(`^the upstream should be called (\d+) times$`, theUpstreamShouldBeCalledTimes)
}

func resetScenario() {
	apiKey = ""
	app = nil
	lastResp = nil
	lastBody = nil
	atomic.StoreInt64(&upstreamHits, 0)

	upstream = testtool.NewStubUpstream(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&upstreamHits, 1)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/assets":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":{"id":"asset-1","status":"preparing"}}`))
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/assets/"):
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`{"data":[]}`))
		}
	})
}

func theAPIKeyIsRequired(key string) error {
	apiKey = key
	return nil
}

func iSendRequest(method, path string) error {
	if app == nil {
		app = testtool.NewProxyApp(upstream.URL, apiKey)
	}

	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, 10000)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	lastResp = resp
	lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	return nil
}

func theResponseStatusShouldBe(expected int) error {
	if lastResp == nil {
		return fmt.Errorf("no response recorded")
	}
	if lastResp.StatusCode != expected {
		return fmt.Errorf("expected status %d, but got %d (body: %s)", expected, lastResp.StatusCode, lastBody)
	}
	return nil
}

func theResponseFieldShouldBe(field, expected string) error {
	var body map[string]interface{}
	if err := json.Unmarshal(lastBody, &body); err != nil {
		return fmt.Errorf("response is not JSON: %w (body: %s)", err, lastBody)
	}
	got, ok := body[field].(string)
	if !ok {
		return fmt.Errorf("field %q missing or not a string in %s", field, lastBody)
	}
	if got != expected {
		return fmt.Errorf("expected field %q to be %q, but got %q", field, expected, got)
	}
	return nil
}

func theUpstreamShouldNotBeCalled() error {
	if hits := atomic.LoadInt64(&upstreamHits); hits != 0 {
		return fmt.Errorf("expected no upstream calls, but got %d", hits)
	}
	return nil
}

func theUpstreamShouldBeCalledTimes(expected int) error {
	if hits := atomic.LoadInt64(&upstreamHits); hits != int64(expected) {
		return fmt.Errorf("expected %d upstream calls, but got %d", expected, hits)
	}
	return nil
}
