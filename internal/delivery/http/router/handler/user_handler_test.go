package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpmiddleware "usersvc/internal/delivery/http/middleware"
	"usersvc/internal/delivery/http/router"
	"usersvc/internal/delivery/http/router/handler"
	"usersvc/internal/delivery/http/validator"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	mockUsecase "usersvc/internal/mocks/usecase"
	"usersvc/internal/usecase"
)

// newTestServer wires a real Echo instance with the production validator,
// error handler and routes, backed by a mocked usecase.
func newTestServer(t *testing.T) (*echo.Echo, *mockUsecase.MockUserUsecase) {
	t.Helper()

	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Pre(echomiddleware.RemoveTrailingSlash())

	r := router.NewRouter(router.RouterParams{
		UserHandler:     handler.NewUserHandler(uc, logger),
		GreetingHandler: handler.NewGreetingHandler(),
	})
	r.RegisterRoutes(e)

	return e, uc
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestUserHandler_ListUsers(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("ListUsers", mock.Anything).Return([]*entity.User{
		{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: "hash1"},
		{ID: 2, Username: "bob", Email: "b@x.com", PasswordHash: "hash2"},
	}, nil)

	rec := doRequest(e, http.MethodGet, "/api/users/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":1,"username":"alice","email":"a@x.com"},{"id":2,"username":"bob","email":"b@x.com"}]`,
		rec.Body.String())
	// The password hash never appears on the wire.
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestUserHandler_ListUsers_Empty(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("ListUsers", mock.Anything).Return(nil, domainerrors.ErrNoUsers)

	rec := doRequest(e, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"no users"}`, rec.Body.String())
}

func TestUserHandler_GetUser(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("GetUser", mock.Anything, int64(7)).Return(
		&entity.User{ID: 7, Username: "alice", Email: "a@x.com", PasswordHash: "hash"}, nil)

	rec := doRequest(e, http.MethodGet, "/api/users/7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"username":"alice","email":"a@x.com"}`, rec.Body.String())
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("GetUser", mock.Anything, int64(42)).Return(nil, domainerrors.ErrUserNotFound)

	rec := doRequest(e, http.MethodGet, "/api/users/42", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"user not found"}`, rec.Body.String())
}

func TestUserHandler_GetUser_InvalidID(t *testing.T) {
	e, uc := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/users/abc", "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid user id"}`, rec.Body.String())
	uc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestUserHandler_CreateUser(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("CreateUser", mock.Anything, &usecase.CreateUserInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	}).Return(&entity.User{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: "hash"}, nil)

	rec := doRequest(e, http.MethodPost, "/api/users/",
		`{"username":"alice","email":"a@x.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"username":"alice","email":"a@x.com"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_CreateUser_MissingPassword(t *testing.T) {
	e, uc := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/users",
		`{"username":"alice","email":"a@x.com"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid request payload"}`, rec.Body.String())
	uc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestUserHandler_CreateUser_MalformedBody(t *testing.T) {
	e, uc := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/users", `{"username":`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	uc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestUserHandler_UpdateUser_PartialBody(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("UpdateUser", mock.Anything, int64(3), mock.MatchedBy(func(input *usecase.UpdateUserInput) bool {
		// Absent fields stay nil so the service applies only what was sent.
		return input.Username == nil &&
			input.Password == nil &&
			input.Email != nil && *input.Email == "a2@x.com"
	})).Return(&entity.User{ID: 3, Username: "alice", Email: "a2@x.com", PasswordHash: "hash"}, nil)

	rec := doRequest(e, http.MethodPut, "/api/users/3", `{"email":"a2@x.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"username":"alice","email":"a2@x.com"}`, rec.Body.String())
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("UpdateUser", mock.Anything, int64(42), mock.AnythingOfType("*usecase.UpdateUserInput")).
		Return(nil, domainerrors.ErrUserNotFound)

	rec := doRequest(e, http.MethodPut, "/api/users/42", `{"email":"a2@x.com"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"user not found"}`, rec.Body.String())
}

func TestUserHandler_DeleteUser(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("DeleteUser", mock.Anything, int64(5)).Return(
		&entity.User{ID: 5, Username: "alice", Email: "a@x.com"}, nil)

	rec := doRequest(e, http.MethodDelete, "/api/users/5/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"detail":"user with id=5 deleted"}`, rec.Body.String())
}

func TestUserHandler_DeleteUser_NotFound(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("DeleteUser", mock.Anything, int64(42)).Return(nil, domainerrors.ErrUserNotFound)

	rec := doRequest(e, http.MethodDelete, "/api/users/42", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"user not found"}`, rec.Body.String())
}

func TestUserHandler_StoreFailureIsOpaque(t *testing.T) {
	e, uc := newTestServer(t)

	uc.On("ListUsers", mock.Anything).Return(nil, errors.New("pq: connection refused"))

	rec := doRequest(e, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, rec.Body.String())
	// The driver error never leaks to the client.
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestGreetingHandler_Root(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rec.Body.String())
}

func TestGreetingHandler_Hello(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/hello/Bob", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello Bob"}`, rec.Body.String())
}
