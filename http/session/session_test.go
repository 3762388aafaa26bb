package session_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cairn/http/session"
)

func newTestSession(t *testing.T) (session.Session, http.ResponseWriter, *http.Request) {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()

	s, err := session.NewStubService().GetSession(r)
	require.Nil(t, err)

	return s, w, r
}

func TestSessionFlashes(t *testing.T) {
	// Arrange
	s, w, r := newTestSession(t)
	f := session.Flash{Class: session.FlashSuccess, Msg: "well done!"}

	// Act + Assert
	require.Empty(t, s.Flashes(w, r))

	require.Nil(t, s.SetFlash(w, r, f))
	require.Equal(t, []session.Flash{f}, s.Flashes(w, r))

	// NOTE(dlk): flashes pop once read
	require.Empty(t, s.Flashes(w, r))
}

func TestSessionClearFlashes(t *testing.T) {
	// Arrange
	s, w, r := newTestSession(t)
	require.Nil(t, s.SetFlash(w, r, session.Flash{Class: session.FlashInfo, Msg: "heads up"}))

	// Act
	s.ClearFlashes(w, r)

	// Assert
	require.Empty(t, s.Flashes(w, r))
}

func TestSessionGetSet(t *testing.T) {
	// Arrange
	s, w, r := newTestSession(t)

	// Act + Assert
	require.Nil(t, s.Get("key"))

	require.Nil(t, s.Set(w, r, "key", "value"))
	require.Equal(t, "value", s.Get("key"))
}

func TestSessionOldInput(t *testing.T) {
	// Arrange
	s, w, r := newTestSession(t)
	vals := url.Values{"email": []string{"trail@head.co"}, "tags": []string{"a", "b"}}

	// Act + Assert
	require.Nil(t, s.OldInput(w, r))

	require.Nil(t, s.SetOldInput(w, r, vals))
	require.Equal(t, vals, s.OldInput(w, r))

	// NOTE(dlk): stashed input pops once read
	require.Nil(t, s.OldInput(w, r))
}

func TestSessionErrorMessages(t *testing.T) {
	// Arrange
	s, w, r := newTestSession(t)
	msgs := []string{"Email is required.", "Name is too short."}

	// Act + Assert
	require.Nil(t, s.ErrorMessages(w, r))

	require.Nil(t, s.SetErrorMessages(w, r, msgs))
	require.Equal(t, msgs, s.ErrorMessages(w, r))

	// NOTE(dlk): stashed messages pop once read
	require.Nil(t, s.ErrorMessages(w, r))
}

func TestSessionRoundTrip(t *testing.T) {
	// Arrange: a submission fails validation and stashes its state
	s, w, r := newTestSession(t)
	vals := url.Values{"email": []string{""}}
	msgs := []string{"Email is required."}

	require.Nil(t, s.SetOldInput(w, r, vals))
	require.Nil(t, s.SetErrorMessages(w, r, msgs))

	// Act: the follow-up request drains the stash
	gotVals := s.OldInput(w, r)
	gotMsgs := s.ErrorMessages(w, r)

	// Assert
	require.Equal(t, vals, gotVals)
	require.Equal(t, msgs, gotMsgs)
	require.Nil(t, s.OldInput(w, r))
	require.Nil(t, s.ErrorMessages(w, r))
}
