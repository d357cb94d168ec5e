package aichat_errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrNotFound, http.StatusNotFound},
		{ErrNoChats, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
		{fmt.Errorf("listing chats: %w", ErrNoChats), http.StatusNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "err=%v", tt.err)
	}
}
