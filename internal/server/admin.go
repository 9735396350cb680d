package server

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"

	"yatai/internal/generated"
)

// AdminHandler は生成されたServerInterfaceを実装する
type AdminHandler struct {
	server *Server
	spec   *openapi3.T
}

var _ generated.ServerInterface = (*AdminHandler)(nil)

// adminRouter は管理APIのルーターを作成する
func (s *Server) adminRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	h := &AdminHandler{server: s, spec: s.apiSpec}
	generated.RegisterHandlersWithOptions(r, h, generated.GinServerOptions{
		ErrorHandler: adminError,
	})

	return r
}

// adminError はパラメータのバインドに失敗した時の応答
func adminError(c *gin.Context, err error, status int) {
	c.JSON(status, generated.ErrorResponse{
		Error:     "invalid_parameter",
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, generated.HealthResponse{
		Status:    generated.Healthy,
		Timestamp: time.Now(),
	})
}

// GetStatus はシステム状態取得エンドポイントの実装
func (h *AdminHandler) GetStatus(c *gin.Context) {
	s := h.server

	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	address := s.config.ServerAddress()
	if addr := s.Addr(); addr != nil {
		address = addr.String()
	}

	status := generated.Running
	uptime := ""
	if started.IsZero() {
		status = generated.Stopped
	} else {
		uptime = time.Since(started).Round(time.Second).String()
	}

	c.JSON(http.StatusOK, generated.StatusResponse{
		Status: status,
		Server: generated.ServerInfo{
			Address: address,
			WebRoot: s.files.Root(),
		},
		Workers: generated.WorkerInfo{
			Size:    s.pool.Size(),
			Busy:    s.pool.Busy(),
			Waiting: s.pool.Waiting(),
		},
		Requests:  s.stats.Snapshot(),
		Routes:    s.routes.Len(),
		StartedAt: started,
		Uptime:    uptime,
		Timestamp: time.Now(),
	})
}

// GetRoutes は登録済みルート一覧エンドポイントの実装
func (h *AdminHandler) GetRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, generated.RoutesResponse{
		Routes: h.server.routes.Paths(),
	})
}

// GetUploads は保存済みPOSTデータ一覧エンドポイントの実装
func (h *AdminHandler) GetUploads(c *gin.Context, params generated.GetUploadsParams) {
	if params.Limit != nil && *params.Limit < 1 {
		c.JSON(http.StatusBadRequest, generated.ErrorResponse{
			Error:     "invalid_parameter",
			Message:   "limit は1以上を指定してください",
			Timestamp: time.Now(),
		})
		return
	}

	files, err := h.server.uploads.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, generated.ErrorResponse{
			Error:     "list_failed",
			Message:   "保存済みファイルの一覧を取得できませんでした",
			Timestamp: time.Now(),
		})
		return
	}

	total := len(files)
	if params.Limit != nil && *params.Limit < total {
		files = files[:*params.Limit]
	}

	uploads := make([]generated.UploadInfo, 0, len(files))
	for _, f := range files {
		uploads = append(uploads, generated.UploadInfo{
			Name:      f.Name,
			Size:      f.Size,
			SizeHuman: humanize.Bytes(uint64(f.Size)),
			Modified:  f.ModTime,
			Age:       humanize.Time(f.ModTime),
		})
	}

	c.JSON(http.StatusOK, generated.UploadsResponse{
		Uploads: uploads,
		Total:   total,
	})
}

// GetOpenAPISpec は起動時に読み込んだOpenAPIドキュメントを返す
func (h *AdminHandler) GetOpenAPISpec(c *gin.Context) {
	c.JSON(http.StatusOK, h.spec)
}
