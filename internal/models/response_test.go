package models

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewResponse(t *testing.T) {
	before := time.Now().UnixNano() / int64(time.Millisecond)
	response := NewResponse(http.StatusBadGateway, nil, "provider unavailable")
	after := time.Now().UnixNano() / int64(time.Millisecond)

	assert.Equal(t, http.StatusBadGateway, response.Code)
	assert.Equal(t, "provider unavailable", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewOKResponse(t *testing.T) {
	data := LinesData{Lines: []LineRef{{Number: "01", Name: "순환01"}}}

	response := NewOKResponse(data)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, data, response.Data)
}
