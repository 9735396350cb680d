package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/sync/errgroup"

	"yatai/internal/config"
	"yatai/internal/generated"
	"yatai/internal/route"
	"yatai/internal/static"
	"yatai/internal/upload"
)

// Server はTCPリスナーとワーカープールを管理する構造体
type Server struct {
	config  *config.Config
	routes  *route.Registry
	files   *static.FileServer
	uploads *upload.Store
	pool    *workerPool
	stats   *Stats
	apiSpec *openapi3.T
	started time.Time

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	admin    *http.Server
	conns    sync.WaitGroup
}

// New は新しいServerインスタンスを作成する
// routes は起動後に追加登録してもよい
func New(cfg *config.Config, routes *route.Registry) (*Server, error) {
	uploads, err := upload.NewStore(cfg.Server.WebRoot)
	if err != nil {
		return nil, fmt.Errorf("アップロード先の初期化に失敗: %w", err)
	}

	// 管理APIのOpenAPIドキュメントは起動時に検証する
	spec, err := generated.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("OpenAPIドキュメントの読み込みに失敗: %w", err)
	}
	if err := spec.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("OpenAPIドキュメントが不正です: %w", err)
	}

	s := &Server{
		config:  cfg,
		routes:  routes,
		files:   static.New(cfg.Server.WebRoot),
		uploads: uploads,
		pool:    newWorkerPool(cfg.Server.Workers),
		stats:   newStats(),
		apiSpec: spec,
	}

	if cfg.AdminEnabled() {
		s.admin = &http.Server{
			Addr:         cfg.AdminAddress(),
			Handler:      s.adminRouter(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	return s, nil
}

// Listen はサーバーのポートをバインドする
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("ポートのバインドに失敗: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.started = time.Now()
	s.mu.Unlock()

	log.Printf("サーバーを起動しています: %s (Webルート: %s, ワーカー数: %d)",
		ln.Addr(), s.files.Root(), s.pool.Size())
	return nil
}

// Addr はバインド済みのアドレスを返す。Listen前は nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Accept失敗時の再試行間隔
const (
	acceptMinDelay = 5 * time.Millisecond
	acceptMaxDelay = 1 * time.Second
)

// nextAcceptDelay はAccept失敗が続いた時の次の待ち時間を返す
func nextAcceptDelay(prev time.Duration) time.Duration {
	if prev == 0 {
		return acceptMinDelay
	}
	if next := prev * 2; next < acceptMaxDelay {
		return next
	}
	return acceptMaxDelay
}

// Serve は接続を受け付け、ワーカープールに渡し続ける
// リスナーが閉じられるか ctx がキャンセルされると nil を返す
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return errors.New("Listenが呼ばれていません")
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			s.closeListener()
		case <-stop:
		}
	}()

	poolCtx, cancelPool := context.WithCancel(ctx)
	go s.pool.Dispatch(poolCtx)
	defer func() {
		// 待ち行列に残った接続を処理し終えてからディスパッチを止める
		go func() {
			s.conns.Wait()
			cancelPool()
		}()
	}()

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				log.Println("リスナーが閉じられたため、接続の受け付けを停止します")
				return nil
			}
			delay = nextAcceptDelay(delay)
			log.Printf("接続の受け付けに失敗: %v (%v後に再試行します)", err, delay)
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
			}
			continue
		}
		delay = 0

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		s.conns.Add(1)
		s.mu.Unlock()

		s.pool.Submit(func() {
			defer s.conns.Done()
			s.handleConnection(conn)
		}, func() {
			// 空きを待つ間にシャットダウンが始まった
			defer s.conns.Done()
			conn.Close()
		})
	}
}

// Start はサーバーを起動し、シグナルかコンテキストのキャンセルまで待つ
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Serve(gctx)
	})
	if s.admin != nil {
		g.Go(func() error {
			log.Printf("管理APIを起動しています: %s", s.admin.Addr)
			if err := s.admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("管理APIの起動に失敗: %w", err)
			}
			return nil
		})
	}

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-gctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	}

	// グレースフルシャットダウン
	shutdownErr := s.Shutdown()
	if err := g.Wait(); err != nil {
		return err
	}
	return shutdownErr
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// 処理中の接続は ShutdownTimeout まで待つ
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.closeListener()

	var errs []error
	if s.admin != nil {
		if err := s.admin.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("管理APIのシャットダウンに失敗: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("処理中の接続の完了待ちがタイムアウトしました: %w", ctx.Err()))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}

// closeListener はリスナーを閉じ、以降の接続を受け付けないようにする
func (s *Server) closeListener() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil || s.closed {
		return
	}
	s.closed = true
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("リスナーのクローズに失敗: %v", err)
	}
}
