package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"not found", NotFound(MsgUserNotFound), http.StatusNotFound},
		{"conflict", Conflict(MsgEmailExists), http.StatusConflict},
		{"invalid email", InvalidEmail(MsgInvalidEmail), http.StatusBadRequest},
		{"form validation", FormValidation("code"), http.StatusBadRequest},
		{"unauthorized", Unauthorized(MsgBadCredentials), http.StatusUnauthorized},
		{"unauthenticated", Unauthenticated(), http.StatusUnauthorized},
		{"storage", Storage(errors.New("boom")), http.StatusInternalServerError},
		{"serialization", Serialization(errors.New("boom")), http.StatusInternalServerError},
		{"crypto", Crypto(errors.New("boom")), http.StatusInternalServerError},
		{"conversion", Conversion("bad scan"), http.StatusInternalServerError},
		{"lock corrupted", LockCorrupted(), http.StatusInternalServerError},
		{"unknown", As(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestUserMessage_DomainKindsExposeExactMessage(t *testing.T) {
	assert.Equal(t, MsgInvalidEmail, InvalidEmail(MsgInvalidEmail).UserMessage(false))
	assert.Equal(t, MsgEmailExists, Conflict(MsgEmailExists).UserMessage(false))
	assert.Equal(t, MsgBadCredentials, Unauthorized(MsgBadCredentials).UserMessage(false))
	assert.Equal(t, MsgUserNotFound, NotFound(MsgUserNotFound).UserMessage(false))
}

func TestUserMessage_FormValidationConcatenatesCodes(t *testing.T) {
	err := FormValidation("first.\n", "second.\n")
	assert.Equal(t, "first.\nsecond.\n", err.UserMessage(false))
}

func TestUserMessage_InfraKindsCollapseUnlessDebug(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause)

	assert.Equal(t, "undefined", err.UserMessage(false))
	assert.Contains(t, err.UserMessage(true), "connection refused")

	assert.Equal(t, "undefined", Unauthenticated().UserMessage(false))
	assert.Equal(t, "undefined", LockCorrupted().UserMessage(false))
}

func TestErrorPreservesCause(t *testing.T) {
	cause := errors.New("driver fault")
	err := Storage(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "driver fault")
}

func TestErrorWrapping(t *testing.T) {
	inner := NotFound(MsgUserNotFound)
	wrapped := fmt.Errorf("handling login: %w", inner)

	require.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))

	e := As(wrapped)
	assert.Equal(t, KindNotFound, e.Kind)
}

func TestAs_UnclassifiedBecomesUnknown(t *testing.T) {
	e := As(errors.New("something odd"))

	require.NotNil(t, e)
	assert.Equal(t, KindUnknown, e.Kind)
	assert.Equal(t, "undefined", e.UserMessage(false))
}

func TestAs_Nil(t *testing.T) {
	assert.Nil(t, As(nil))
}
