package server

import (
	"bufio"
	"errors"
	"io"
	"log"
	"net"
	"time"

	"yatai/internal/request"
	"yatai/internal/response"
	"yatai/internal/route"
)

// allowedMethods は405応答のAllowヘッダーに載せるメソッド
const allowedMethods = "GET, POST"

// handleConnection は1つの接続を最初から最後まで処理する
// リクエストを1つ読み、応答を1回書いて切断する
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	s.stats.active.Add(1)
	defer s.stats.active.Add(-1)

	if s.config.Server.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.config.Server.ReadTimeout))
	}

	reader := bufio.NewReader(conn)
	req, res := s.handleRequest(reader)
	if res == nil {
		// データを受け取る前に切断された
		return
	}

	if s.config.Server.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.config.Server.WriteTimeout))
	}
	if _, err := res.WriteTo(conn); err != nil {
		log.Printf("レスポンスの書き込みに失敗: %s: %v", conn.RemoteAddr(), err)
		return
	}
	s.stats.record(res.Status)

	if req != nil {
		log.Printf("%s %s %s -> %d", conn.RemoteAddr(), req.Method, req.Target, res.Status)
	} else {
		log.Printf("%s 不正なリクエスト -> %d", conn.RemoteAddr(), res.Status)
	}
}

// handleRequest はリクエストを読み取り、対応するレスポンスを返す
// 何も読み取れなかった場合は nil を返す
func (s *Server) handleRequest(reader *bufio.Reader) (*request.Request, *response.Response) {
	line, err := request.ReadLine(reader)
	if err != nil {
		if errors.Is(err, request.ErrLineTooLong) {
			log.Printf("リクエストラインが上限 %d バイトを超えました", request.MaxLineBytes)
			return nil, response.BadRequest()
		}
		if !errors.Is(err, io.EOF) {
			log.Printf("リクエストラインの読み込みに失敗: %v", err)
		}
		return nil, nil
	}

	req, err := request.ParseRequestLine(line)
	if err != nil {
		return nil, response.BadRequest()
	}

	// POST以外でもヘッダーは読み捨てる
	headers, err := request.ReadHeaders(reader)
	if err != nil {
		log.Printf("ヘッダーの読み込みに失敗: %v", err)
		return req, response.BadRequest()
	}
	req.Headers = headers

	switch req.Method {
	case "GET":
		return req, s.handleGet(req)
	case "POST":
		return req, s.handlePost(req, reader)
	default:
		return req, response.MethodNotAllowed(allowedMethods)
	}
}

// handleGet は登録済みルート、静的ファイルの順に探して応答する
func (s *Server) handleGet(req *request.Request) *response.Response {
	if handler, ok := s.lookupRoute(req); ok {
		return invokeRoute(handler, req)
	}
	return s.files.Serve(req.FilePath())
}

// lookupRoute はパスに一致するルートを探す
// "/" は先に "/index.html" へ書き換えるため、"/" に登録したルートは使われない
func (s *Server) lookupRoute(req *request.Request) (route.Handler, bool) {
	return s.routes.Lookup(req.LookupPath())
}

// invokeRoute はルートハンドラを呼び出し、戻り値を本文とする200レスポンスを作る
// ハンドラがpanicした場合は500を返す
func invokeRoute(handler route.Handler, req *request.Request) (res *response.Response) {
	res = response.New(200).SetHeader("Content-Type", "text/html")

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ルートハンドラでpanicが発生しました: %s: %v", req.Path, r)
			res = response.InternalError()
		}
	}()

	body := handler(req, res)
	res.Body = []byte(body)
	return res
}

// handlePost はContent-Length分のボディを読み取り、Webルートに保存する
func (s *Server) handlePost(req *request.Request, reader *bufio.Reader) *response.Response {
	body, err := request.ReadBody(reader, req.Headers, s.config.Server.MaxBodyBytes)
	if err != nil {
		log.Printf("POSTボディの読み込みに失敗: %v", err)
		return response.BadRequest()
	}
	req.Body = body

	name, err := s.uploads.Save(body)
	if err != nil {
		log.Printf("POSTデータの保存に失敗: %v", err)
		return response.InternalError()
	}

	return response.Text("File saved: " + name)
}
