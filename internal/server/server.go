// Package server is the Horizons auth API: signup, login, user lookup and
// a health probe over JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/horizons-app/horizons/internal/models"
	"github.com/horizons-app/horizons/internal/store"
)

// Users is the user storage the handlers need. *store.Store implements it.
type Users interface {
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// pinger is implemented by storage that can report whether it is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	// LoginRate and LoginBurst bound login attempts per client IP.
	LoginRate  rate.Limit
	LoginBurst int
	Logger     *zap.Logger
}

// DefaultOptions allows a burst of five login attempts, then one every
// two seconds.
func DefaultOptions() Options {
	return Options{LoginRate: rate.Every(2 * time.Second), LoginBurst: 5}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type handler struct {
	users  Users
	log    *zap.Logger
	limits *ipLimiter
}

// NewRouter builds the API routes.
func NewRouter(users Users, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &handler{
		users:  users,
		log:    opts.Logger,
		limits: newIPLimiter(opts.LoginRate, opts.LoginBurst),
	}

	r := gin.New()
	r.Use(gin.Recovery(), accessLog(opts.Logger), cors())

	r.GET("/healthz", h.health)
	r.POST("/signup", h.signup)
	r.POST("/login", h.limitLogin, h.login)
	r.GET("/users/:id", h.getUser)
	return r
}

func (h *handler) health(c *gin.Context) {
	if p, ok := h.users.(pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			h.log.Warn("database ping", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	user, err := h.createUser(c.Request.Context(), req)
	switch {
	case errors.Is(err, store.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Usuario o correo ya existe"})
		return
	case errors.Is(err, store.ErrInvalidUsername):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Nombre de usuario inválido: no puede contener barras ni ser . o .."})
		return
	case errors.Is(err, store.ErrPasswordTooLong):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "La contraseña no puede superar 72 bytes."})
		return
	case err != nil:
		h.log.Error("create user", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error interno al crear el usuario."})
		return
	}
	h.log.Info("user created", zap.Int64("id", user.ID), zap.String("username", user.Username))
	c.JSON(http.StatusOK, user)
}

// createUser checks the fields bcrypt and the profile directory depend on
// before reaching storage, whatever Users implementation is behind it.
func (h *handler) createUser(ctx context.Context, req signupRequest) (*models.User, error) {
	if !models.ValidProfileName(req.Username) {
		return nil, store.ErrInvalidUsername
	}
	if len(req.Password) > store.MaxPasswordBytes {
		return nil, store.ErrPasswordTooLong
	}
	return h.users.CreateUser(ctx, req.Username, req.Email, req.Password)
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, store.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Credenciales inválidas"})
		return
	case err != nil:
		h.log.Error("authenticate", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error interno."})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handler) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "id must be an integer"})
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	case err != nil:
		h.log.Error("get user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error interno."})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handler) limitLogin(c *gin.Context) {
	if !h.limits.allow(c.ClientIP()) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Demasiados intentos, espera un momento."})
		return
	}
	c.Next()
}

// limiterIdleTTL is how long a client bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

// ipLimiter hands out one token bucket per client address. Buckets left idle
// for ttl are swept on a later call to allow.
type ipLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*clientBucket
	lastSweep time.Time
}

type clientBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limit:     limit,
		burst:     burst,
		ttl:       limiterIdleTTL,
		now:       time.Now,
		buckets:   make(map[string]*clientBucket),
		lastSweep: time.Now(),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	if l.burst <= 0 {
		return true
	}
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}
	b, ok := l.buckets[ip]
	if !ok {
		b = &clientBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	l.mu.Unlock()
	return b.lim.AllowN(now, 1)
}

// sweep drops idle buckets. Callers hold l.mu.
func (l *ipLimiter) sweep(now time.Time) {
	for ip, b := range l.buckets {
		if now.Sub(b.seen) >= l.ttl {
			delete(l.buckets, ip)
		}
	}
	l.lastSweep = now
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}

// cors allows any origin, as the mobile and web front ends are served from
// elsewhere.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Run serves the router on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info("auth api listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}
