package model

// 画像などの添付ファイル。data はJSONではbase64になる
type Attachment struct {
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Data     []byte `json:"data"`
	Size     int64  `json:"size,omitempty"`
}
