// Package acquirer 將三種擷取方式（相機連續解碼、上傳圖片單次解碼、手動輸入）
// 收斂成同一個 Sink 回呼。三種方式彼此獨立、可同時存在；
// 僅相機在執行期間互斥（同時只允許一個相機 session）。
package acquirer

// Sink 接收任一擷取方式產出的原始票券碼
type Sink func(rawCode string)
