package response

import "rental-backoffice/internal/domain"

// Resp is the envelope every endpoint answers with, always over HTTP 200.
// Kind carries the domain error kind so clients can branch without parsing Msg.
type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Kind string `json:"kind,omitempty"`
	Data any    `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data any) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

var kindCodes = map[domain.ErrorKind]int{
	domain.KindUnauthorized:    CodeUnauthorized,
	domain.KindNotFound:        CodeNotFound,
	domain.KindValidation:      CodeBadRequest,
	domain.KindDomainViolation: CodeConflict,
	domain.KindUpstream:        CodeServerError,
}

// FromError maps a service error onto the envelope. Upstream details stay in
// the logs; clients only see the generic message.
func FromError(err error) Resp {
	kind := domain.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = CodeServerError
	}
	msg := err.Error()
	if kind == domain.KindUpstream {
		msg = CodeMsgMap[CodeServerError]
	}
	r := Error(code, msg)
	r.Kind = string(kind)
	return r
}
