package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tastebite-server/internal/mocks"
)

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":0", time.Second, time.Second)
	assert.Equal(t, ":0", s.Address())
}

func TestHTTPServer_Start_ListenError(t *testing.T) {
	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(nil, assert.AnError).Once()

	s := NewHTTPServer(http.NotFoundHandler(), ":0", time.Second, time.Second)
	require.ErrorIs(t, s.Start(sec), assert.AnError)
}

func TestHTTPServer_StartServeStop(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(ln, nil).Once()

	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	srv := NewHTTPServer(h, ":0", time.Second, time.Second)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(sec) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	require.NoError(t, srv.Stop(context.Background()))
	require.NoError(t, <-errCh)
}
