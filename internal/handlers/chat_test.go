package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"consult-chat/internal/apperrors"
	"consult-chat/internal/lifecycle"
	"consult-chat/internal/middleware"
	"consult-chat/internal/mocks"
	"consult-chat/internal/models"
)

func setupChatRouter(handler *ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := middleware.BearerToken()
	r.POST("/sessions/:session_id/messages", auth, handler.Send)
	r.GET("/sessions/:session_id/messages", auth, handler.Fetch)
	r.PUT("/messages/:message_id", auth, handler.Edit)
	r.DELETE("/messages/:message_id", auth, handler.Delete)
	return r
}

func TestSendMessageSuccess(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	sessionID := uuid.New()
	chat.On("Send", mock.Anything, sessionID, "hello", "token-abc").
		Return(models.Message{ID: uuid.New(), SessionID: sessionID, Content: "hello"}, nil).Once()

	body := bytes.NewBufferString(`{"content":"hello"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/sessions/"+sessionID.String()+"/messages", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	chat.AssertExpectations(t)
}

func TestSendMessageInvalidSessionID(t *testing.T) {
	router := setupChatRouter(NewChatHandler(new(mocks.ChatServiceMock)))

	body := bytes.NewBufferString(`{"content":"hello"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/sessions/abc/messages", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageSessionNotFound(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	sessionID := uuid.New()
	chat.On("Send", mock.Anything, sessionID, "hello", "token-abc").
		Return(models.Message{}, apperrors.NotFound("session not found")).Once()

	body := bytes.NewBufferString(`{"content":"hello"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/sessions/"+sessionID.String()+"/messages", body))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFetchMessagesSuccess(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	session := models.Session{ID: uuid.New(), RequesterName: "Alice", ProviderName: "Dr. Bob"}
	msgs := []models.Message{{ID: uuid.New(), Content: "hi"}}
	chat.On("Fetch", mock.Anything, session.ID, "token-abc").Return(session, msgs, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/sessions/"+session.ID.String()+"/messages", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Session  models.Session   `json:"session"`
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Alice", resp.Session.RequesterName)
	assert.Len(t, resp.Messages, 1)
}

func TestFetchEmptySessionReturnsEmptyList(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	session := models.Session{ID: uuid.New()}
	chat.On("Fetch", mock.Anything, session.ID, "token-abc").
		Return(session, ([]models.Message)(nil), nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/sessions/"+session.ID.String()+"/messages", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"messages":[]`)
}

func TestFetchByNonParticipantForbidden(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	sessionID := uuid.New()
	chat.On("Fetch", mock.Anything, sessionID, "token-abc").
		Return(models.Session{}, ([]models.Message)(nil), apperrors.Authorization("caller is not a session participant")).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/sessions/"+sessionID.String()+"/messages", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEditMessageSuccess(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	messageID := uuid.New()
	chat.On("Edit", mock.Anything, messageID, "hi", "token-abc").
		Return(models.Message{ID: messageID, Content: "hi", Edited: true}, nil).Once()

	body := bytes.NewBufferString(`{"content":"hi"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/messages/"+messageID.String(), body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"edited":true`)
}

func TestEditDeletedMessageConflict(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	messageID := uuid.New()
	chat.On("Edit", mock.Anything, messageID, "hi", "token-abc").
		Return(models.Message{}, apperrors.InvalidState("message is deleted and cannot be edited")).Once()

	body := bytes.NewBufferString(`{"content":"hi"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/messages/"+messageID.String(), body))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_state")
}

func TestDeleteMessageSuccess(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	messageID := uuid.New()
	chat.On("Delete", mock.Anything, messageID, "token-abc").
		Return(models.Message{ID: messageID, Content: lifecycle.DeletionMarker, Deleted: true}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/messages/"+messageID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":true`)
}

func TestDeleteByNonSenderForbidden(t *testing.T) {
	chat := new(mocks.ChatServiceMock)
	router := setupChatRouter(NewChatHandler(chat))

	messageID := uuid.New()
	chat.On("Delete", mock.Anything, messageID, "token-abc").
		Return(models.Message{}, apperrors.Authorization("only the sender may delete")).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/messages/"+messageID.String(), nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "only the sender may delete")
}
