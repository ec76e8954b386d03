package connection

import (
	"io"
	"sync"

	"github.com/indigo-web/utils/pool"
)

type idle[C io.Closer] struct {
	pool pool.ObjectPool[C]
	size int
}

// Manager is basically a bit smarter connection pool. It keeps up to limit idle
// connections per host and hands them out for reuse. It's safe for concurrent use.
type Manager[C io.Closer] struct {
	mu    sync.Mutex
	hosts map[string]*idle[C]
	limit int
}

func NewManager[C io.Closer](limit int) *Manager[C] {
	return &Manager[C]{
		hosts: make(map[string]*idle[C]),
		limit: limit,
	}
}

// Acquire returns an idle connection to the host, if there's any.
func (m *Manager[C]) Acquire(host string) (conn C, found bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.hosts[host]
	if !ok || conns.size == 0 {
		return conn, false
	}

	conns.size--
	return conns.pool.Acquire(), true
}

// Release puts the connection back. If the host already has enough idle connections,
// the connection is closed instead.
func (m *Manager[C]) Release(host string, conn C) error {
	m.mu.Lock()
	conns, ok := m.hosts[host]
	if !ok {
		conns = &idle[C]{pool: pool.NewObjectPool[C](m.limit)}
		m.hosts[host] = conns
	}

	if conns.size >= m.limit {
		m.mu.Unlock()
		return conn.Close()
	}

	conns.pool.Release(conn)
	conns.size++
	m.mu.Unlock()

	return nil
}

// Idle returns the number of idle connections to the host.
func (m *Manager[C]) Idle(host string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conns, ok := m.hosts[host]; ok {
		return conns.size
	}

	return 0
}

// Close closes all the idle connections. The first error encountered is returned.
func (m *Manager[C]) Close() (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for host, conns := range m.hosts {
		for ; conns.size > 0; conns.size-- {
			if cerr := conns.pool.Acquire().Close(); cerr != nil && err == nil {
				err = cerr
			}
		}

		delete(m.hosts, host)
	}

	return err
}
