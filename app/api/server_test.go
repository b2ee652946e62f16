package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pukaar/app/config"
	"pukaar/app/service/advice"
	"pukaar/app/service/classifier"
	"pukaar/app/service/flow"
	"pukaar/app/service/orchestrator"
	"pukaar/app/service/redflag"
	"pukaar/app/service/screening"
	"pukaar/app/service/session"
	"pukaar/app/service/triage"

	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) (*Server, *session.Service) {
	t.Helper()

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	do.ProvideValue(di, &config.Config{
		Server: config.Server{Addr: ":0"},
	})

	sessions := session.NewInMemory()
	do.ProvideValue(di, sessions)

	do.Provide(di, flow.New)
	do.Provide(di, classifier.New)
	do.Provide(di, triage.New)
	do.Provide(di, redflag.New)
	do.Provide(di, screening.New)
	do.Provide(di, advice.New)
	do.Provide(di, orchestrator.New)

	server, err := New(di)
	require.NoError(t, err)

	return server, sessions
}

func postJSON(t *testing.T, server *Server, path string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.App().Test(req)
	require.NoError(t, err)

	return resp
}

func getPath(t *testing.T, server *Server, path string) *http.Response {
	t.Helper()

	resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestHealth(t *testing.T) {
	req := require.New(t)
	server, _ := testServer(t)

	resp := getPath(t, server, "/health")
	req.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	req.Equal("ok", body["status"])
}

func TestChat_RequiresMessage(t *testing.T) {
	server, _ := testServer(t)

	resp := postJSON(t, server, "/api/chat", map[string]any{"session_id": "x"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRedFlag_KeywordHit(t *testing.T) {
	req := require.New(t)
	server, _ := testServer(t)

	resp := postJSON(t, server, "/api/red-flag", map[string]any{
		"message": "my baby had a seizure just now",
	})
	req.Equal(http.StatusOK, resp.StatusCode)

	var result redflag.Result
	decodeBody(t, resp, &result)
	req.True(result.Detected)
	req.Equal("convulsions_seizures", result.FlagType)
}

func TestRedFlag_RequiresMessage(t *testing.T) {
	server, _ := testServer(t)

	resp := postJSON(t, server, "/api/red-flag", map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConsultAdvice(t *testing.T) {
	req := require.New(t)
	server, _ := testServer(t)

	resp := postJSON(t, server, "/api/consult-advice", map[string]any{
		"message": "my baby will not sleep at bedtime",
	})
	req.Equal(http.StatusOK, resp.StatusCode)

	var result advice.ConsultResponse
	decodeBody(t, resp, &result)
	req.Equal("sleep", result.Topic)
	req.NotEmpty(result.Response.GentleAdvice)
}

func TestScreeningConditions(t *testing.T) {
	req := require.New(t)
	server, _ := testServer(t)

	resp := getPath(t, server, "/api/screening")
	req.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Conditions []screening.Condition `json:"conditions"`
	}
	decodeBody(t, resp, &body)
	req.Len(body.Conditions, 5)
	req.Equal("pneumonia_ari", body.Conditions[0].Key)
}

func TestScreeningInfo(t *testing.T) {
	req := require.New(t)
	server, _ := testServer(t)

	resp := getPath(t, server, "/api/screening/pneumonia_ari")
	req.Equal(http.StatusOK, resp.StatusCode)

	var info screening.Condition
	decodeBody(t, resp, &info)
	req.Equal("pneumonia_ari", info.Key)
	req.Len(info.Questions, 7)

	resp = getPath(t, server, "/api/screening/flu")
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestScreeningRun_LocalScorer(t *testing.T) {
	req := require.New(t)
	server, _ := testServer(t)

	resp := postJSON(t, server, "/api/screening/pneumonia_ari/run", map[string]any{
		"responses": []string{"no", "no", "no", "no", "around 40", "no", "no"},
		"age_days":  120,
	})
	req.Equal(http.StatusOK, resp.StatusCode)

	var result screening.Result
	decodeBody(t, resp, &result)
	req.Equal("pneumonia_ari", result.Condition)
	req.Equal(screening.RiskMinimal, result.RiskLevel)
	req.Equal("local", result.Algorithm)
}

func TestScreeningRun_Validation(t *testing.T) {
	req := require.New(t)
	server, _ := testServer(t)

	resp := postJSON(t, server, "/api/screening/pneumonia_ari/run", map[string]any{})
	req.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, server, "/api/screening/flu/run", map[string]any{
		"responses": []string{"no"},
		"age_days":  30,
	})
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestFollowUpOptions(t *testing.T) {
	req := require.New(t)
	server, _ := testServer(t)

	resp := getPath(t, server, "/api/followup/options")
	req.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Options []string `json:"options"`
	}
	decodeBody(t, resp, &body)
	req.Equal([]string{
		"Book an online consultation",
		"Find nearby pediatrician",
	}, body.Options)
}

func TestSessionEndpoints(t *testing.T) {
	req := require.New(t)
	server, sessions := testServer(t)

	resp := getPath(t, server, "/api/session/unknown")
	req.Equal(http.StatusNotFound, resp.StatusCode)

	sess, err := sessions.Create(context.Background())
	req.NoError(err)

	resp = getPath(t, server, "/api/session/"+sess.ID)
	req.Equal(http.StatusOK, resp.StatusCode)

	var loaded session.Session
	decodeBody(t, resp, &loaded)
	req.Equal(sess.ID, loaded.ID)
	req.Equal(session.FlowInitial, loaded.FlowType)

	resp = getPath(t, server, "/api/session/"+sess.ID+"/next-action")
	req.Equal(http.StatusOK, resp.StatusCode)

	var action flow.Action
	decodeBody(t, resp, &action)
	req.Equal("start_triage", action.Action)

	deleteReq := httptest.NewRequest(http.MethodDelete, "/api/session/"+sess.ID, nil)
	resp, err = server.App().Test(deleteReq)
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)

	resp, err = server.App().Test(httptest.NewRequest(http.MethodDelete, "/api/session/"+sess.ID, nil))
	req.NoError(err)
	req.Equal(http.StatusNotFound, resp.StatusCode)
}
