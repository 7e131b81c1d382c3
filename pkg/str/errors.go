package str

import (
	"errors"
	"fmt"
)

// 错误类型枚举
const (
	// ErrTypeNone 无错误
	ErrTypeNone = iota
	// ErrTypeIndexOutOfRange 下标越界
	ErrTypeIndexOutOfRange
	// ErrTypeNumberFormat 数字格式错误
	ErrTypeNumberFormat
)

// 预定义的错误，用于 errors.Is 比较
var (
	// ErrIndexOutOfRange 匹配所有下标越界错误
	ErrIndexOutOfRange = &Error{Type: ErrTypeIndexOutOfRange, Message: "string index out of range"}
	// ErrNumberFormat 匹配所有数字格式错误
	ErrNumberFormat = &Error{Type: ErrTypeNumberFormat, Message: "invalid number format"}
)

// Error 表示字符串操作错误
type Error struct {
	Type    int    // 错误类型
	Message string // 错误信息
	Index   int    // 越界的下标或长度（仅 ErrTypeIndexOutOfRange）
	Input   string // 原始文本（仅 ErrTypeNumberFormat）
}

// Error 实现error接口
func (e *Error) Error() string {
	switch e.Type {
	case ErrTypeIndexOutOfRange:
		return fmt.Sprintf("%s: %d", e.Message, e.Index)
	case ErrTypeNumberFormat:
		return fmt.Sprintf("%s: for input string: %q", e.Message, e.Input)
	default:
		return e.Message
	}
}

// Is 按错误类型匹配，使 errors.Is(err, ErrNumberFormat) 成立
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type
}

func indexError(index int) *Error {
	return &Error{
		Type:    ErrTypeIndexOutOfRange,
		Message: ErrIndexOutOfRange.Message,
		Index:   index,
	}
}

func numberFormatError(input string) *Error {
	return &Error{
		Type:    ErrTypeNumberFormat,
		Message: ErrNumberFormat.Message,
		Input:   input,
	}
}

// IsIndexOutOfRange 判断是否为下标越界错误
func IsIndexOutOfRange(err error) bool {
	var strErr *Error
	return errors.As(err, &strErr) && strErr.Type == ErrTypeIndexOutOfRange
}

// IsNumberFormat 判断是否为数字格式错误
func IsNumberFormat(err error) bool {
	var strErr *Error
	return errors.As(err, &strErr) && strErr.Type == ErrTypeNumberFormat
}
