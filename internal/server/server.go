// Package server serves widget panels over SSH, one panel per session
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	gossh "golang.org/x/crypto/ssh"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/logger"
	"github.com/bnema/knobkit/internal/ui"
	"github.com/bnema/knobkit/internal/widget"
)

// PanelFactory builds a fresh panel for each session. Sessions never share
// widgets.
type PanelFactory func() (*widget.Panel, error)

// Server handles incoming panel sessions over SSH
type Server struct {
	cfg        config.ServeConfig
	panelCfg   config.PanelConfig
	newPanel   PanelFactory
	maxClients int
	sshServer  *ssh.Server

	// Authentication
	authorized map[string]bool // SHA256 fingerprints

	// Active sessions
	mu      sync.Mutex
	clients map[string]string // sessionID -> remote address

	// Lifecycle
	stopOnce sync.Once
	wg       sync.WaitGroup

	// Event handlers
	OnClientConnected    func(addr, fingerprint string)
	OnClientDisconnected func(addr string)
	OnValueChanged       func(addr, name string, value float64)
}

// New creates a server. Start must be called before it accepts sessions.
func New(cfg config.ServeConfig, panelCfg config.PanelConfig, newPanel PanelFactory) *Server {
	return &Server{
		cfg:        cfg,
		panelCfg:   panelCfg,
		newPanel:   newPanel,
		maxClients: 0, // Unlimited
		clients:    make(map[string]string),
	}
}

// SetMaxClients limits concurrent sessions. Zero means no limit.
func (s *Server) SetMaxClients(max int) {
	s.maxClients = max
}

// ClientCount returns the number of active sessions
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// LoadAuthorizedKeys reads an authorized_keys file and returns the SHA256
// fingerprints of the keys it lists. Lines that do not parse are skipped.
func LoadAuthorizedKeys(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read authorized keys: %w", err)
	}

	keys := make(map[string]bool)
	for len(data) > 0 {
		pub, _, _, rest, err := gossh.ParseAuthorizedKey(data)
		if err != nil {
			// No further valid key in the remainder
			break
		}
		keys[gossh.FingerprintSHA256(pub)] = true
		data = rest
	}
	return keys, nil
}

// Start begins listening for SSH connections
func (s *Server) Start(ctx context.Context) error {
	if !s.cfg.AllowAll {
		keys, err := LoadAuthorizedKeys(s.cfg.AuthorizedKeysPath)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return fmt.Errorf("no usable keys in %s", s.cfg.AuthorizedKeysPath)
		}
		s.authorized = keys
	}

	server, err := wish.NewServer(
		wish.WithAddress(s.cfg.Address),
		wish.WithHostKeyPath(s.cfg.HostKeyPath),
		wish.WithPublicKeyAuth(s.publicKeyAuth),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			s.sessionHandler(),
			s.loggingMiddleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}
	s.sshServer = server

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		logger.Info("SSH server listening", "address", s.cfg.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Errorf("SSH server error: %v", err)
		}
	}()

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop shuts down the SSH server and waits for it to exit
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.sshServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.sshServer.Shutdown(ctx); err != nil {
				logger.Warn("SSH server shutdown", "error", err)
			}
		}
		s.wg.Wait()
	})
}

// authorize reports whether key may open a session
func (s *Server) authorize(key gossh.PublicKey) bool {
	if s.cfg.AllowAll {
		return true
	}
	return s.authorized[gossh.FingerprintSHA256(key)]
}

// publicKeyAuth handles SSH public key authentication
func (s *Server) publicKeyAuth(ctx ssh.Context, key ssh.PublicKey) bool {
	fingerprint := gossh.FingerprintSHA256(key)
	ok := s.authorize(key)
	logger.Info("SSH authentication attempt",
		"addr", ctx.RemoteAddr().String(), "user", ctx.User(), "key", fingerprint, "accepted", ok)
	return ok
}

// loggingMiddleware provides custom logging using our internal logger
func (s *Server) loggingMiddleware() wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			start := time.Now()
			logger.Debugf("SSH session started: user=%s addr=%s", sess.User(), sess.RemoteAddr())

			h(sess)

			logger.Debugf("SSH session ended: addr=%s duration=%s", sess.RemoteAddr(), time.Since(start))
		}
	}
}

// sessionHandler enforces the client limit and tracks active sessions
func (s *Server) sessionHandler() wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			addr := sess.RemoteAddr().String()

			s.mu.Lock()
			if s.maxClients > 0 && len(s.clients) >= s.maxClients {
				s.mu.Unlock()
				logger.Infof("Rejecting client - max clients reached addr=%s", addr)
				wish.Fatalln(sess, "Server already has maximum number of active clients")
				return
			}
			id := sess.Context().SessionID()
			s.clients[id] = addr
			s.mu.Unlock()

			var fingerprint string
			if sess.PublicKey() != nil {
				fingerprint = gossh.FingerprintSHA256(sess.PublicKey())
			}
			if s.OnClientConnected != nil {
				s.OnClientConnected(addr, fingerprint)
			}

			defer func() {
				s.mu.Lock()
				delete(s.clients, id)
				s.mu.Unlock()

				if s.OnClientDisconnected != nil {
					s.OnClientDisconnected(addr)
				}
			}()

			h(sess)
		}
	}
}

// teaHandler builds the panel program for one session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	panel, err := s.newPanel()
	if err != nil {
		logger.Error("Failed to build panel", "error", err)
		wish.Fatalln(sess, "failed to build panel:", err)
		return nil, nil
	}

	addr := sess.RemoteAddr().String()
	model := ui.NewModel(panel, s.panelCfg, ui.WithOnChange(func(name string, value float64) {
		if s.OnValueChanged != nil {
			s.OnValueChanged(addr, name, value)
		}
	}))
	model.SetBase(ui.NewBaseUI(sess.Context(), ui.DefaultShutdownConfig()))

	return model, ui.ProgramOptions(true)
}
