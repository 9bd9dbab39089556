package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/logger"
)

// ErrCallbackNoCode is returned when the provider redirected without a code
var ErrCallbackNoCode = errors.New("no auth code provided in callback")

// CodeExchanger completes the sign-in for a received code
type CodeExchanger func(ctx context.Context, code string) (*domain.User, error)

// CallbackResult is the outcome of one OAuth redirect
type CallbackResult struct {
	User *domain.User
	Err  error
}

// NewCallbackRouter serves the loopback OAuth redirect. Every outcome is sent
// on results exactly once per request; failures land on the error page.
func NewCallbackRouter(exchange CodeExchanger, results chan<- CallbackResult) http.Handler {
	r := chi.NewRouter()

	r.Get(CallbackPath, func(w http.ResponseWriter, req *http.Request) {
		log := logger.FromContext(req.Context())
		code := req.URL.Query().Get("code")
		if code == "" {
			log.Error(LogMsgCallbackNoCode)
			deliver(results, CallbackResult{Err: ErrCallbackNoCode})
			http.Redirect(w, req, CallbackErrorPath, http.StatusFound)
			return
		}

		user, err := exchange(req.Context(), code)
		if err != nil {
			log.Error(LogMsgCallbackFailed, "error", err)
			deliver(results, CallbackResult{Err: err})
			http.Redirect(w, req, CallbackErrorPath, http.StatusFound)
			return
		}

		log.Info(LogMsgCallbackSuccess, "user_id", user.ID)
		deliver(results, CallbackResult{User: user})
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintln(w, "サインインしました。ターミナルに戻ってください。")
	})

	r.Get(CallbackErrorPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprintln(w, "認証に失敗しました。もう一度サインインしてください。")
	})

	return r
}

func deliver(results chan<- CallbackResult, res CallbackResult) {
	select {
	case results <- res:
	default:
	}
}

// WaitForCallback listens on the loopback port until one redirect arrives or
// ctx ends.
func WaitForCallback(ctx context.Context, port int, exchange CodeExchanger) (*domain.User, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen for OAuth callback: %w", err)
	}

	results := make(chan CallbackResult, 1)
	srv := &http.Server{
		Handler:           NewCallbackRouter(exchange, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		_ = srv.Serve(ln)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	select {
	case res := <-results:
		if res.Err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrAuthRequired, res.Err)
		}
		return res.User, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
