package exam

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry owns every live runner and drives their countdowns from a single
// one-second ticker goroutine. When a runner's countdown hits zero the
// registry invokes the expiry callback, which performs the auto-submission.
type Registry struct {
	mu       sync.RWMutex
	runners  map[uuid.UUID]*Runner
	onExpire func(sessionID uuid.UUID)
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[uuid.UUID]*Runner),
		stopCh:  make(chan struct{}),
	}
}

// SetExpireFunc registers the auto-submit callback. Must be called before
// Start.
func (g *Registry) SetExpireFunc(fn func(sessionID uuid.UUID)) {
	g.onExpire = fn
}

func (g *Registry) Add(r *Runner) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.runners[r.SessionID()] = r
}

func (g *Registry) Get(sessionID uuid.UUID) (*Runner, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.runners[sessionID]
	return r, ok
}

func (g *Registry) Remove(sessionID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.runners, sessionID)
}

func (g *Registry) Start() {
	go g.loop()
	log.Println("exam registry started")
}

func (g *Registry) Stop() {
	g.stopOnce.Do(func() { close(g.stopCh) })
}

func (g *Registry) loop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopCh:
			return
		case <-ticker.C:
			for _, sessionID := range g.tickAll() {
				if g.onExpire != nil {
					g.onExpire(sessionID)
				}
			}
		}
	}
}

// tickAll advances every countdown by one second and returns the sessions
// that just expired.
func (g *Registry) tickAll() []uuid.UUID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var expired []uuid.UUID
	for id, r := range g.runners {
		if r.Tick() {
			expired = append(expired, id)
		}
	}
	return expired
}
