// Package server は、TCPレベルのHTTPサーバーを管理します。
//
// このパッケージは、接続の受け付け、ワーカーへの割り当て、
// リクエストのルーティングと静的ファイルの配信を担当します。
//
// 責務:
//   - TCPリスナーの起動と管理
//   - 固定サイズのワーカープールによる接続処理
//   - 登録済みルートへのディスパッチ
//   - Webルートからの静的ファイル配信
//   - POSTデータの保存
//   - 管理用API（ヘルスチェック・状態確認）の提供
//
// 仕様:
//   - net/httpは使わず、リクエストラインとヘッダーを直接解析する
//   - 1接続につき1リクエストのみ処理し、応答後に切断する
//   - ルートは完全一致で、静的ファイルより優先される
//   - 管理APIはGinで別ポートに公開する
//   - グレースフルシャットダウンに対応
package server
