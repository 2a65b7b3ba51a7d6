package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/notification-service/internal/api/dto"
	"github.com/aliskhannn/notification-service/internal/api/handlers/notification"
	"github.com/aliskhannn/notification-service/internal/channel"
	"github.com/aliskhannn/notification-service/internal/channel/channeltest"
	"github.com/aliskhannn/notification-service/internal/delivery"
	"github.com/aliskhannn/notification-service/internal/model"
	notifrepo "github.com/aliskhannn/notification-service/internal/repository/notification"
	notifsvc "github.com/aliskhannn/notification-service/internal/service/notification"
	"github.com/aliskhannn/notification-service/internal/worker"
)

// setupApp wires the whole service around ch with millisecond retry delays.
func setupApp(t *testing.T, ch channel.Channel) *ginext.Engine {
	t.Helper()

	e, _ := setupAppWithPool(t, ch, 4, 0)
	return e
}

func setupAppWithPool(t *testing.T, ch channel.Channel, workers, queueSize int) (*ginext.Engine, *notifrepo.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := notifrepo.NewRepository()
	sched := delivery.NewScheduler(repo, retry.Strategy{Attempts: 3, Delay: time.Millisecond, Backoff: 2})
	d := worker.NewDispatcher(workers, queueSize)
	engine := delivery.NewEngine(repo, ch, sched, delivery.WithSubmitter(d))

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		d.Run(ctx, engine)
		close(stopped)
	}()

	t.Cleanup(func() {
		sched.Stop()
		cancel()
		<-stopped
	})

	svc := notifsvc.NewService(repo, d)
	return New(notification.NewHandler(svc, validator.New())), repo
}

func create(t *testing.T, e *ginext.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	return w
}

func list(t *testing.T, e *ginext.Engine, userID string) []model.Notification {
	t.Helper()

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+userID+"/notifications", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out []model.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

func waitForStatus(t *testing.T, e *ginext.Engine, userID string, want model.Status) model.Notification {
	t.Helper()

	var got model.Notification
	require.Eventually(t, func() bool {
		ns := list(t, e, userID)
		if len(ns) != 1 {
			return false
		}
		got = ns[0]
		return got.Status == want
	}, 2*time.Second, 2*time.Millisecond)

	return got
}

func TestRouter_CreateAndDeliver(t *testing.T) {
	e := setupApp(t, channeltest.Always(channeltest.Sent))

	w := create(t, e, `{"userId":"u1","type":"EMAIL","content":"Hello"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp dto.CreateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Notification accepted for delivery", resp.Message)
	require.NotEmpty(t, resp.NotificationID)

	n := waitForStatus(t, e, "u1", model.StatusDelivered)
	assert.Equal(t, resp.NotificationID, n.ID)
	assert.Equal(t, model.TypeEmail, n.Type)
	assert.Equal(t, "Hello", n.Content)
	assert.Equal(t, 0, n.RetryCount)
}

func TestRouter_PendingUntilAttemptFinishes(t *testing.T) {
	release := make(chan struct{})
	e := setupApp(t, channel.Func(func(context.Context, model.Notification) (bool, error) {
		<-release
		return true, nil
	}))
	defer close(release)

	w := create(t, e, `{"userId":"u1","type":"sms","content":"x"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	ns := list(t, e, "u1")
	require.Len(t, ns, 1)
	assert.Equal(t, model.StatusPending, ns[0].Status)
	assert.Equal(t, 0, ns[0].RetryCount)
}

func TestRouter_FailsAfterRetries(t *testing.T) {
	ch := channeltest.Always(channeltest.NotSent)
	e := setupApp(t, ch)

	require.Equal(t, http.StatusAccepted, create(t, e, `{"userId":"u2","type":"in-app","content":"x"}`).Code)

	n := waitForStatus(t, e, "u2", model.StatusFailed)
	assert.Equal(t, 3, n.RetryCount)
	assert.Equal(t, 4, ch.Attempts())
}

func TestRouter_RetryThenDelivered(t *testing.T) {
	ch := channeltest.New(channeltest.NotSent, channeltest.NotSent, channeltest.Sent)
	e := setupApp(t, ch)

	require.Equal(t, http.StatusAccepted, create(t, e, `{"userId":"u3","type":"sms","content":"x"}`).Code)

	n := waitForStatus(t, e, "u3", model.StatusDelivered)
	assert.Equal(t, 2, n.RetryCount)
}

func TestRouter_QueueFullRejectsWithoutBlocking(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	e, repo := setupAppWithPool(t, channel.Func(func(context.Context, model.Notification) (bool, error) {
		started <- struct{}{}
		<-release
		return true, nil
	}), 1, 1)
	defer close(release)

	// the only worker picks up the first notification and blocks
	require.Equal(t, http.StatusAccepted, create(t, e, `{"userId":"u","type":"sms","content":"1"}`).Code)
	<-started

	// the second one takes the only queue slot
	require.Equal(t, http.StatusAccepted, create(t, e, `{"userId":"u","type":"sms","content":"2"}`).Code)

	begin := time.Now()
	w := create(t, e, `{"userId":"u","type":"sms","content":"3"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Less(t, time.Since(begin), 50*time.Millisecond)

	history := repo.List("u")
	require.Len(t, history, 3)
	assert.Equal(t, model.StatusPending, history[0].Status)
	assert.Equal(t, model.StatusPending, history[1].Status)
	assert.Equal(t, model.StatusFailed, history[2].Status)
}

func TestRouter_HistoryOrder(t *testing.T) {
	e := setupApp(t, channeltest.Always(channeltest.Sent))

	var ids []string
	for _, content := range []string{"one", "two", "three"} {
		w := create(t, e, `{"userId":"u4","type":"sms","content":"`+content+`"}`)
		require.Equal(t, http.StatusAccepted, w.Code)

		var resp dto.CreateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		ids = append(ids, resp.NotificationID)
	}

	ns := list(t, e, "u4")
	require.Len(t, ns, 3)
	for i, n := range ns {
		assert.Equal(t, ids[i], n.ID)
	}
}

func TestRouter_UnknownUser(t *testing.T) {
	e := setupApp(t, channeltest.Always(channeltest.Sent))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/nobody/notifications", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_RejectsInvalidRequests(t *testing.T) {
	e := setupApp(t, channeltest.Always(channeltest.Sent))

	w := create(t, e, `{"userId":"u5","type":"fax","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = create(t, e, `{"userId":"u5","type":"sms"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, list(t, e, "u5"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	e := setupApp(t, channeltest.Always(channeltest.Sent))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/notifications", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Health(t *testing.T) {
	e := setupApp(t, channeltest.Always(channeltest.Sent))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
