// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//go:build !race

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun_watch(t *testing.T) {
	temp, err := os.MkdirTemp("", "*") // t.TempDir() causes deadlock on macos.
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(temp) }()
	path := filepath.Join(temp, "watch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\n"), 0o600))

	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"watch", "--no-default", "--file", path, "port"}, out, out)
	}()
	time.Sleep(time.Second) // wait for the watcher to start

	require.NoError(t, os.WriteFile(path, []byte("port: 9090\n"), 0o600))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "9090")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	require.True(t, strings.HasPrefix(out.String(), "8080\n"), out.String())
}

type syncBuffer struct {
	mutex  sync.Mutex
	buffer bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.buffer.Write(p) //nolint:wrapcheck
}

func (b *syncBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.buffer.String()
}
