package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roamvista/roamvista/cmd/marketing/controller"
	"github.com/roamvista/roamvista/cmd/marketing/model"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
	"github.com/roamvista/roamvista/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJoinEarlyAccess(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
	}
	tests := map[string]struct {
		body map[string]interface{}
		exp  expected
	}{
		"valid": {
			body: map[string]interface{}{
				"email":  "wanderer@example.com",
				"name":   "Wanda",
				"source": "homepage",
			},
			exp: expected{status: http.StatusCreated},
		},
		"invalid email": {
			body: map[string]interface{}{"email": "not-an-email"},
			exp:  expected{status: http.StatusBadRequest},
		},
		"missing email": {
			body: map[string]interface{}{"name": "Wanda"},
			exp:  expected{status: http.StatusBadRequest},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithJoinEarlyAccess(func(context.Context, controller.JoinEarlyAccessInput) error {
					return nil
				}),
			)
			api, _ := newAPI(t, ctrl)

			start := time.Now()
			resp := request(t, api, http.MethodPost, "/v1/early-access", test.body, nil)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)
			require.GreaterOrEqual(t, time.Since(start), minJoinDuration)

			if test.exp.status != http.StatusCreated {
				return
			}
			// An empty body keeps repeat joins indistinguishable from first
			// joins.
			var buf bytes.Buffer
			_, err := buf.ReadFrom(resp.Body)
			require.Nil(t, err)
			require.Zero(t, buf.Len())
		})
	}
}

func TestSignups(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
	}
	tests := map[string]struct {
		role *session.Role
		exp  expected
	}{
		"anonymous": {
			role: nil,
			exp:  expected{status: http.StatusUnauthorized},
		},
		"regular": {
			role: rolep(session.RoleRegular),
			exp:  expected{status: http.StatusForbidden},
		},
		"editor": {
			role: rolep(session.RoleEditor),
			exp:  expected{status: http.StatusForbidden},
		},
		"administrator": {
			role: rolep(session.RoleAdmin),
			exp:  expected{status: http.StatusOK},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithSignups(func(context.Context) ([]model.Signup, error) {
					return []model.Signup{{Email: "wanderer@example.com"}}, nil
				}),
			)
			api, manager := newAPI(t, ctrl)

			var cookie *http.Cookie
			if test.role != nil {
				cookie = establishSession(t, manager, session.User{
					ID:   uuid.New(),
					Role: *test.role,
				})
			}

			resp := request(t, api, http.MethodGet, "/v1/early-access", nil, cookie)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)

			if test.exp.status != http.StatusOK {
				return
			}
			var signups []model.Signup
			require.Nil(t, json.NewDecoder(resp.Body).Decode(&signups))
			require.Len(t, signups, 1)
		})
	}
}

func rolep(role session.Role) *session.Role { return &role }

func newAPI(t *testing.T, ctrl IController) (*API, *session.Mock) {
	t.Helper()

	manager := session.NewMock(time.Hour)

	api := NewAPI(
		zap.NewNop(),
		ctrl,
		ihttp.NewSessionMiddleware(zap.NewNop(), manager),
		validator.New(),
	)

	return api, manager
}

func establishSession(t *testing.T, manager *session.Mock, user session.User) *http.Cookie {
	t.Helper()

	id := fmt.Sprintf("session-%s", uuid.NewString())
	sess := session.New(id, user, time.Hour)
	require.Nil(t, manager.CreateSession(context.Background(), *sess))

	return &http.Cookie{Name: "_rv-session", Value: id}
}

func request(
	t *testing.T,
	api *API,
	method string,
	target string,
	body map[string]interface{},
	cookie *http.Cookie,
) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.Nil(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	api.Mux.ServeHTTP(rr, req)

	return rr.Result()
}
